package models

// GameRecord is one game from a player's point of view, in round order.
type GameRecord struct {
	Round      int    `json:"round"`
	OpponentID int    `json:"opponent_id,omitempty"` // 0 for byes
	Color      Color  `json:"color,omitempty"`       // empty for byes
	Points     Points `json:"points"`
	Forfeit    bool   `json:"forfeit,omitempty"` // this player defaulted
	Bye        bool   `json:"bye,omitempty"`
}

// PlayerScore is the cumulative record derived from pairings. It is never
// stored; the ledger recomputes it from the pairing set on demand.
type PlayerScore struct {
	PlayerID     int          `json:"player_id"`
	Points       Points       `json:"points"`
	GamesPlayed  int          `json:"games_played"`
	Wins         int          `json:"wins"`
	Draws        int          `json:"draws"`
	Losses       int          `json:"losses"`
	ForfeitGames int          `json:"forfeit_games,omitempty"` // games this player defaulted
	ColorBalance int          `json:"color_balance"` // white=+1, black=-1, byes excluded
	Games        []GameRecord `json:"games,omitempty"`
}

// ColorHistory returns the ordered color sequence, byes excluded.
func (s *PlayerScore) ColorHistory() []Color {
	history := make([]Color, 0, len(s.Games))
	for _, g := range s.Games {
		if g.Bye {
			continue
		}
		history = append(history, g.Color)
	}
	return history
}

// Opponents returns the ids of all opponents faced, byes excluded.
func (s *PlayerScore) Opponents() []int {
	opps := make([]int, 0, len(s.Games))
	for _, g := range s.Games {
		if g.Bye {
			continue
		}
		opps = append(opps, g.OpponentID)
	}
	return opps
}

// MetCount returns how many times the player has faced the given opponent.
func (s *PlayerScore) MetCount(opponentID int) int {
	count := 0
	for _, g := range s.Games {
		if !g.Bye && g.OpponentID == opponentID {
			count++
		}
	}
	return count
}

func (s *PlayerScore) ByeCount() int {
	count := 0
	for _, g := range s.Games {
		if g.Bye {
			count++
		}
	}
	return count
}

// LastWhiteRound returns the most recent round the player had white,
// or 0 if they have not had white yet.
func (s *PlayerScore) LastWhiteRound() int {
	last := 0
	for _, g := range s.Games {
		if !g.Bye && g.Color == ColorWhite && g.Round > last {
			last = g.Round
		}
	}
	return last
}

// PointsThroughRound sums points earned up to and including the round.
func (s *PlayerScore) PointsThroughRound(round int) Points {
	var total Points
	for _, g := range s.Games {
		if g.Round <= round {
			total += g.Points
		}
	}
	return total
}
