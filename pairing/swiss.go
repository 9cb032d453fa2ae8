package pairing

import (
	"context"
	"sort"

	"github.com/castlegate/pairing-engine/models"
	"github.com/castlegate/pairing-engine/scoring"
)

// SwissStrategy implements score-group pairing for FIDE Dutch and US Chess
// rules. The two profiles share the algorithm; USChess alternates colors
// down the boards in round one.
//
// Relaxation order when a clean pairing does not exist, applied only after
// the earlier step is exhausted across all remaining unpaired players:
//  1. transpositions within the score group (S2 candidates tried in fold
//     order, then downward, then upward),
//  2. floating the lowest-ranked unpaired players into the next group,
//  3. in the last group, any repeat-free matching regardless of the fold,
//  4. any repeat-free matching of the whole pool, ignoring score groups,
//  5. repeat opponents allowed, fewest prior meetings first.
// Color imbalance is never a pairing constraint; the color rule corrects it
// best-effort afterwards. Every step strictly shrinks the unpaired set, so
// generation always terminates with a complete round.
type SwissStrategy struct {
	USChess bool
}

func (s *SwissStrategy) Name() string {
	if s.USChess {
		return "USChessSwiss"
	}
	return "FideDutch"
}

func (s *SwissStrategy) GenerateRound(ctx context.Context, params GenerateRoundParams) ([]*models.Pairing, error) {
	cfg := params.Config
	pool := pairablePlayers(params.Players)
	if len(pool) < 2 {
		return nil, ErrInsufficientPlayers
	}

	scores := scoring.ThroughRound(params.Prior, params.Round-1, cfg.Bye)
	byes := ResolveByes(pool, scores, params.Round, cfg.Bye)

	vscores := rankingScores(byes.Paired, scores, cfg, params.Round)
	ranked := make([]*models.Player, len(byes.Paired))
	copy(ranked, byes.Paired)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if vscores[a.ID] != vscores[b.ID] {
			return vscores[a.ID] > vscores[b.ID]
		}
		if a.RatingValue() != b.RatingValue() {
			return a.RatingValue() > b.RatingValue()
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	met := func(a, b *models.Player) bool {
		return scoreOf(scores, a.ID).MetCount(b.ID) > 0
	}
	meetCount := func(a, b *models.Player) int {
		return scoreOf(scores, a.ID).MetCount(b.ID)
	}

	groups := scoreGroups(ranked, vscores)

	var matched [][2]*models.Player
	var carry []*models.Player
	for gi, group := range groups {
		groupPool := append(carry, group...)
		carry = nil
		if gi == len(groups)-1 {
			matched = append(matched, pairFinalGroup(groupPool, met, meetCount)...)
		} else {
			pairs, leftover := pairScoreGroup(groupPool, met)
			matched = append(matched, pairs...)
			carry = leftover
		}
	}

	// The group-by-group pass can lock the final group into a repeat that a
	// different split higher up would have avoided. A repeat is only
	// acceptable when no repeat-free matching of the whole pool exists.
	if containsRepeat(matched, met) {
		if m := generalMatch(ranked, met); m != nil {
			matched = m
		}
	}

	colors := NewColorAssigner(cfg, scores)
	out := make([]*models.Pairing, 0, len(matched)+len(byes.Recipients))
	for i, pair := range matched {
		var white, black *models.Player
		if s.USChess && params.Round == 1 {
			// Alternate the top player's color down the boards.
			white, black = pair[0], pair[1]
			if i%2 == 1 {
				white, black = pair[1], pair[0]
			}
		} else {
			white, black = colors.Assign(pair[0], pair[1])
		}
		out = append(out, newGamePairing(params, white, black, scores))
	}
	for _, bye := range byes.Recipients {
		out = append(out, newByePairing(params, bye))
	}
	assignBoards(out)
	return out, nil
}

// scoreGroups splits the ranked pool into runs of identical ranking score.
func scoreGroups(ranked []*models.Player, vscores map[int]int) [][]*models.Player {
	var groups [][]*models.Player
	for _, p := range ranked {
		n := len(groups)
		if n == 0 || vscores[groups[n-1][0].ID] != vscores[p.ID] {
			groups = append(groups, []*models.Player{p})
			continue
		}
		groups[n-1] = append(groups[n-1], p)
	}
	return groups
}

// pairScoreGroup pairs one score group via the S1/S2 fold, avoiding prior
// opponents. Players that cannot be paired cleanly float down to the next
// group. The pool shrinks on every iteration, so this always terminates.
func pairScoreGroup(pool []*models.Player, met func(a, b *models.Player) bool) (pairs [][2]*models.Player, leftover []*models.Player) {
	for len(pool) >= 2 {
		if len(pool)%2 == 1 {
			// Try floating a single player, lowest ranked first, so the
			// rest of the group can pair cleanly.
			for i := len(pool) - 1; i >= 0; i-- {
				rest := withoutIndex(pool, i)
				if m := foldMatch(rest, met); m != nil {
					leftover = append(leftover, pool[i])
					return m, leftover
				}
			}
			leftover = append(leftover, pool[len(pool)-1])
			pool = pool[:len(pool)-1]
			continue
		}
		if m := foldMatch(pool, met); m != nil {
			return m, leftover
		}
		// No clean matching: drop the lowest-ranked player down and retry.
		leftover = append(leftover, pool[len(pool)-1])
		pool = pool[:len(pool)-1]
	}
	leftover = append(leftover, pool...)
	return nil, leftover
}

// pairFinalGroup must pair the whole (even) pool. It tries the fold, then
// any repeat-free matching, then allows repeats with fewest meetings first.
func pairFinalGroup(pool []*models.Player, met func(a, b *models.Player) bool, meetCount func(a, b *models.Player) int) [][2]*models.Player {
	if len(pool) == 0 {
		return nil
	}
	if m := foldMatch(pool, met); m != nil {
		return m
	}
	if m := generalMatch(pool, met); m != nil {
		return m
	}
	return relaxedMatch(pool, meetCount)
}

// foldMatch pairs S1[i] against S2 candidates, preferring the natural fold
// opponent and cascading through transpositions with backtracking. Returns
// nil when no repeat-free S1xS2 matching exists.
func foldMatch(pool []*models.Player, met func(a, b *models.Player) bool) [][2]*models.Player {
	half := len(pool) / 2
	if half == 0 {
		return nil
	}
	s1, s2 := pool[:half], pool[half:]
	used := make([]bool, half)
	pairs := make([][2]*models.Player, 0, half)

	var try func(i int) bool
	try = func(i int) bool {
		if i == half {
			return true
		}
		for step := 0; step < half; step++ {
			// Fold opponent first, then later candidates, then earlier.
			j := i + step
			if j >= half {
				j = half - 1 - step
			}
			if j < 0 || used[j] || met(s1[i], s2[j]) {
				continue
			}
			used[j] = true
			pairs = append(pairs, [2]*models.Player{s1[i], s2[j]})
			if try(i + 1) {
				return true
			}
			pairs = pairs[:len(pairs)-1]
			used[j] = false
		}
		return false
	}
	if try(0) {
		return pairs
	}
	return nil
}

// generalMatch searches for any perfect repeat-free matching, not just one
// respecting the S1/S2 split.
func generalMatch(pool []*models.Player, met func(a, b *models.Player) bool) [][2]*models.Player {
	if len(pool) == 0 {
		return nil
	}
	first := pool[0]
	for j := 1; j < len(pool); j++ {
		if met(first, pool[j]) {
			continue
		}
		rest := make([]*models.Player, 0, len(pool)-2)
		for k := 1; k < len(pool); k++ {
			if k != j {
				rest = append(rest, pool[k])
			}
		}
		if len(rest) == 0 {
			return [][2]*models.Player{{first, pool[j]}}
		}
		if m := generalMatch(rest, met); m != nil {
			return append([][2]*models.Player{{first, pool[j]}}, m...)
		}
	}
	return nil
}

// relaxedMatch always completes: the top unpaired player takes the opponent
// with the fewest prior meetings, highest ranked on ties.
func relaxedMatch(pool []*models.Player, meetCount func(a, b *models.Player) int) [][2]*models.Player {
	remaining := make([]*models.Player, len(pool))
	copy(remaining, pool)
	var pairs [][2]*models.Player
	for len(remaining) >= 2 {
		top := remaining[0]
		best := 1
		for j := 2; j < len(remaining); j++ {
			if meetCount(top, remaining[j]) < meetCount(top, remaining[best]) {
				best = j
			}
		}
		pairs = append(pairs, [2]*models.Player{top, remaining[best]})
		remaining = append(remaining[:best], remaining[best+1:]...)
		remaining = remaining[1:]
	}
	return pairs
}

func containsRepeat(pairs [][2]*models.Player, met func(a, b *models.Player) bool) bool {
	for _, pair := range pairs {
		if met(pair[0], pair[1]) {
			return true
		}
	}
	return false
}

func withoutIndex(pool []*models.Player, i int) []*models.Player {
	out := make([]*models.Player, 0, len(pool)-1)
	out = append(out, pool[:i]...)
	return append(out, pool[i+1:]...)
}
