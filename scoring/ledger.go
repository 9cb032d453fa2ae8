// Package scoring derives cumulative scores, tiebreaks and ranked standings
// from recorded pairings. Everything here is a pure function of its inputs:
// recomputing from the same pairing set always yields the same output.
package scoring

import (
	"sort"

	"github.com/castlegate/pairing-engine/models"
)

// Compute folds the recorded pairings of one section, in round order, into a
// per-player cumulative score map. Pending games award nothing. Bye pairings
// award the configured bye value and are excluded from color history.
func Compute(pairings []*models.Pairing, bye models.ByeConfig) map[int]*models.PlayerScore {
	ordered := make([]*models.Pairing, len(pairings))
	copy(ordered, pairings)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Round != ordered[j].Round {
			return ordered[i].Round < ordered[j].Round
		}
		return ordered[i].Board < ordered[j].Board
	})

	scores := make(map[int]*models.PlayerScore)
	get := func(id int) *models.PlayerScore {
		s, ok := scores[id]
		if !ok {
			s = &models.PlayerScore{PlayerID: id}
			scores[id] = s
		}
		return s
	}

	for _, p := range ordered {
		if byeID, ok := p.ByePlayerID(); ok {
			s := get(byeID)
			s.Points += bye.Value()
			s.Games = append(s.Games, models.GameRecord{
				Round:  p.Round,
				Points: bye.Value(),
				Bye:    true,
			})
			continue
		}
		if !p.Completed() || p.WhiteID == nil || p.BlackID == nil {
			continue
		}

		wp, bp := p.Result.GamePoints()
		wf, bf := p.Result.Forfeited()
		record(get(*p.WhiteID), p.Round, *p.BlackID, models.ColorWhite, wp, wf)
		record(get(*p.BlackID), p.Round, *p.WhiteID, models.ColorBlack, bp, bf)
	}

	return scores
}

// ThroughRound computes scores from pairings up to and including the round.
func ThroughRound(pairings []*models.Pairing, round int, bye models.ByeConfig) map[int]*models.PlayerScore {
	filtered := make([]*models.Pairing, 0, len(pairings))
	for _, p := range pairings {
		if p.Round <= round {
			filtered = append(filtered, p)
		}
	}
	return Compute(filtered, bye)
}

func record(s *models.PlayerScore, round, opponentID int, color models.Color, points models.Points, forfeit bool) {
	s.Points += points
	s.GamesPlayed++
	switch points {
	case models.FullPoint:
		s.Wins++
	case models.HalfPoint:
		s.Draws++
	default:
		s.Losses++
	}
	if forfeit {
		s.ForfeitGames++
	}
	if color == models.ColorWhite {
		s.ColorBalance++
	} else {
		s.ColorBalance--
	}
	s.Games = append(s.Games, models.GameRecord{
		Round:      round,
		OpponentID: opponentID,
		Color:      color,
		Points:     points,
		Forfeit:    forfeit,
	})
}
