package pairing

import (
	"context"

	"github.com/castlegate/pairing-engine/models"
	"github.com/castlegate/pairing-engine/scoring"
)

// QuadStrategy groups players into rating-contiguous quads of four; each
// quad plays a fixed three-round round robin among its members. A remainder
// group of two or three players at the bottom plays its own circle-method
// schedule, with byes once that schedule runs out.
type QuadStrategy struct{}

// Seats are rating order within the quad, 1 = highest. Rounds one and two
// use the standard quad color table; round three colors are assigned by the
// color rule from the balances the first two rounds produced.
var quadRounds = [3][2][2]int{
	{{0, 3}, {1, 2}}, // R1: 1v4, 2v3
	{{2, 0}, {3, 1}}, // R2: 3v1, 4v2
	{{0, 1}, {2, 3}}, // R3: 1v2, 3v4
}

func (g *QuadStrategy) Name() string {
	return "Quad"
}

func (g *QuadStrategy) GenerateRound(ctx context.Context, params GenerateRoundParams) ([]*models.Pairing, error) {
	pool := pairablePlayers(params.Players)
	if len(pool) < 2 {
		return nil, ErrInsufficientPlayers
	}
	if params.Round > 3 {
		return nil, ErrRoundOutOfRange
	}
	sortSeeds(pool)

	scores := scoring.ThroughRound(params.Prior, params.Round-1, params.Config.Bye)
	colors := NewColorAssigner(params.Config, scores)

	var out []*models.Pairing
	for start := 0; start < len(pool); start += 4 {
		end := start + 4
		if end > len(pool) {
			end = len(pool)
		}
		group := pool[start:end]
		if len(group) == 4 {
			out = append(out, g.quadRound(params, group, scores, colors)...)
			continue
		}
		out = append(out, g.remainderRound(params, group, scores)...)
	}
	assignBoards(out)
	return out, nil
}

func (g *QuadStrategy) quadRound(params GenerateRoundParams, group []*models.Player, scores map[int]*models.PlayerScore, colors *ColorAssigner) []*models.Pairing {
	boards := quadRounds[params.Round-1]
	out := make([]*models.Pairing, 0, 2)
	for _, seats := range boards {
		a, b := group[seats[0]], group[seats[1]]
		if params.Round == 3 {
			a, b = colors.Assign(a, b)
		}
		out = append(out, newGamePairing(params, a, b, scores))
	}
	return out
}

// remainderRound schedules the short bottom group with the circle method;
// players past the end of that schedule sit out with a bye.
func (g *QuadStrategy) remainderRound(params GenerateRoundParams, group []*models.Player, scores map[int]*models.PlayerScore) []*models.Pairing {
	seats := len(group)
	if seats%2 == 1 {
		seats++
	}
	if seats < 2 || params.Round > seats-1 {
		out := make([]*models.Pairing, 0, len(group))
		for _, p := range group {
			out = append(out, newByePairing(params, p))
		}
		return out
	}

	out := make([]*models.Pairing, 0, seats/2)
	for _, board := range circleRound(seats, params.Round) {
		a, b := board[0], board[1]
		if a >= len(group) {
			out = append(out, newByePairing(params, group[b]))
			continue
		}
		if b >= len(group) {
			out = append(out, newByePairing(params, group[a]))
			continue
		}
		out = append(out, newGamePairing(params, group[a], group[b], scores))
	}
	return out
}
