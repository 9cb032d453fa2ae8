// Package pairing implements round generation for all supported pairing
// systems behind one Strategy interface, together with color assignment,
// bye resolution and acceleration.
package pairing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/castlegate/pairing-engine/models"
	"github.com/google/uuid"
)

var (
	// ErrInsufficientPlayers is returned when fewer than two pairable
	// players remain in the section for the round.
	ErrInsufficientPlayers = errors.New("not enough eligible players to generate pairings")

	// ErrRoundOutOfRange is returned when the requested round exceeds the
	// schedule the system can produce for the field.
	ErrRoundOutOfRange = errors.New("round is outside the schedule for this pairing system")

	// ErrRoundIncomplete is returned by elimination play when the previous
	// round still has pending results.
	ErrRoundIncomplete = errors.New("previous round is not complete")
)

// GenerateRoundParams carries everything a strategy needs: the section
// roster, the committed pairings of earlier rounds, and the validated
// configuration. Strategies never read ambient state.
type GenerateRoundParams struct {
	TournamentID int
	Section      string
	Round        int
	Players      []*models.Player
	Prior        []*models.Pairing
	Config       models.SectionConfig
}

// Strategy produces the complete board set for one round of one section.
type Strategy interface {
	GenerateRound(ctx context.Context, params GenerateRoundParams) ([]*models.Pairing, error)

	Name() string
}

// ForSystem returns the strategy for a pairing system. Systems are a closed
// set; new ones are added here, never by branching in shared code.
func ForSystem(system models.PairingSystem) (Strategy, error) {
	switch system {
	case models.SystemFideDutch:
		return &SwissStrategy{}, nil
	case models.SystemUSChess:
		return &SwissStrategy{USChess: true}, nil
	case models.SystemRoundRobin:
		return &RoundRobinStrategy{}, nil
	case models.SystemQuad:
		return &QuadStrategy{}, nil
	case models.SystemSingleElimination:
		return &SingleEliminationStrategy{}, nil
	}
	return nil, fmt.Errorf("unsupported pairing system %q", system)
}

// pairablePlayers filters the roster down to players who may be paired at
// all. Withdrawn and inactive players never appear in pairings.
func pairablePlayers(players []*models.Player) []*models.Player {
	out := make([]*models.Player, 0, len(players))
	for _, p := range players {
		if p.Status.Pairable() {
			out = append(out, p)
		}
	}
	return out
}

// sortSeeds orders players by rating descending with a deterministic
// name/id fallback, the seed order every system starts from.
func sortSeeds(players []*models.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].RatingValue() != players[j].RatingValue() {
			return players[i].RatingValue() > players[j].RatingValue()
		}
		if players[i].Name != players[j].Name {
			return players[i].Name < players[j].Name
		}
		return players[i].ID < players[j].ID
	})
}

func scoreOf(scores map[int]*models.PlayerScore, id int) *models.PlayerScore {
	if s, ok := scores[id]; ok {
		return s
	}
	return &models.PlayerScore{PlayerID: id}
}

// newGamePairing builds a board with its derived metadata filled in from
// the pre-round state.
func newGamePairing(params GenerateRoundParams, white, black *models.Player, scores map[int]*models.PlayerScore) *models.Pairing {
	ws := scoreOf(scores, white.ID)
	bs := scoreOf(scores, black.ID)

	whiteID := white.ID
	blackID := black.ID
	p := &models.Pairing{
		ID:           uuid.New(),
		TournamentID: params.TournamentID,
		Section:      params.Section,
		Round:        params.Round,
		WhiteID:      &whiteID,
		BlackID:      &blackID,
		RatingDiff:   abs(white.RatingValue() - black.RatingValue()),
		PrevMeetings: ws.MetCount(black.ID),
		WhiteBalance: ws.ColorBalance,
		BlackBalance: bs.ColorBalance,
		CreatedAt:    time.Now(),
	}
	p.Quality = pairingQuality(p, ws, bs)
	return p
}

// newByePairing builds a single-player pairing with its result pre-set; the
// ledger scores it with the section's bye value.
func newByePairing(params GenerateRoundParams, player *models.Player) *models.Pairing {
	playerID := player.ID
	result := models.ResultBye
	return &models.Pairing{
		ID:           uuid.New(),
		TournamentID: params.TournamentID,
		Section:      params.Section,
		Round:        params.Round,
		WhiteID:      &playerID,
		Result:       &result,
		Quality:      100,
		CreatedAt:    time.Now(),
	}
}

// pairingQuality scores how close a board is to the ideal: equal scores, no
// repeat, colors moving toward balance. Used for reporting only.
func pairingQuality(p *models.Pairing, ws, bs *models.PlayerScore) float64 {
	q := 100.0
	q -= 5 * math.Abs(ws.Points.Float()-bs.Points.Float())
	q -= 40 * float64(p.PrevMeetings)
	q -= 2 * float64(abs(ws.ColorBalance+1)+abs(bs.ColorBalance-1))
	return q
}

// assignBoards renumbers boards 1..K with byes last. Callers must pass the
// full round's pairing set in display order.
func assignBoards(pairings []*models.Pairing) {
	sort.SliceStable(pairings, func(i, j int) bool {
		_, iBye := pairings[i].ByePlayerID()
		_, jBye := pairings[j].ByePlayerID()
		if iBye != jBye {
			return !iBye
		}
		return false
	})
	for i, p := range pairings {
		p.Board = i + 1
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
