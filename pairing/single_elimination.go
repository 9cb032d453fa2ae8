package pairing

import (
	"context"
	"sort"

	"github.com/castlegate/pairing-engine/models"
	"github.com/castlegate/pairing-engine/scoring"
)

// SingleEliminationStrategy seeds round one by rating (1 vs N, 2 vs N-1,
// ...) and pairs only the winners afterwards. Eliminated players stop being
// paired but stay on the roster for standings. When the field is not a
// power of two, the top seeds receive first-round byes.
type SingleEliminationStrategy struct{}

func (g *SingleEliminationStrategy) Name() string {
	return "SingleElimination"
}

func (g *SingleEliminationStrategy) GenerateRound(ctx context.Context, params GenerateRoundParams) ([]*models.Pairing, error) {
	pool := pairablePlayers(params.Players)
	if len(pool) < 2 {
		return nil, ErrInsufficientPlayers
	}
	sortSeeds(pool)

	scores := scoring.ThroughRound(params.Prior, params.Round-1, params.Config.Bye)
	colors := NewColorAssigner(params.Config, scores)

	var field []*models.Player
	if params.Round == 1 {
		field = pool
	} else {
		winners, err := g.advancers(pool, params.Prior, params.Round-1)
		if err != nil {
			return nil, err
		}
		if len(winners) < 2 {
			// Champion already decided.
			return nil, ErrRoundOutOfRange
		}
		field = winners
	}

	out := make([]*models.Pairing, 0, (len(field)+1)/2)

	bracket := nextPowerOfTwo(len(field))
	byes := bracket - len(field)
	for i := 0; i < byes; i++ {
		out = append(out, newByePairing(params, field[i]))
	}

	active := field[byes:]
	for i, j := 0, len(active)-1; i < j; i, j = i+1, j-1 {
		white, black := colors.Assign(active[i], active[j])
		out = append(out, newGamePairing(params, white, black, scores))
	}
	assignBoards(out)
	return out, nil
}

// advancers extracts the players moving on from the given round. Every
// pairing of that round must have a result; a drawn game advances the
// higher seed.
func (g *SingleEliminationStrategy) advancers(pool []*models.Player, prior []*models.Pairing, round int) ([]*models.Player, error) {
	byID := make(map[int]*models.Player, len(pool))
	for _, p := range pool {
		byID[p.ID] = p
	}

	var winners []*models.Player
	found := false
	for _, p := range prior {
		if p.Round != round {
			continue
		}
		found = true
		if !p.Completed() {
			return nil, ErrRoundIncomplete
		}
		winnerID, ok := p.WinnerID()
		if !ok {
			// Drawn game: the higher-rated player advances.
			white, black := byID[*p.WhiteID], byID[*p.BlackID]
			if white == nil || black == nil {
				continue
			}
			winnerID = white.ID
			if black.RatingValue() > white.RatingValue() {
				winnerID = black.ID
			}
		}
		if w, ok := byID[winnerID]; ok {
			winners = append(winners, w)
		}
	}
	if !found {
		return nil, ErrRoundIncomplete
	}

	sort.SliceStable(winners, func(i, j int) bool {
		if winners[i].RatingValue() != winners[j].RatingValue() {
			return winners[i].RatingValue() > winners[j].RatingValue()
		}
		return winners[i].ID < winners[j].ID
	})
	return winners, nil
}

func nextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
