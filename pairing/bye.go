package pairing

import (
	"sort"

	"github.com/castlegate/pairing-engine/models"
)

// ByeAssignment splits the pairable pool for a round into players to pair
// and players who sit out with a bye.
type ByeAssignment struct {
	Paired     []*models.Player
	Recipients []*models.Player
}

// ResolveByes honors requested byes first (bye status or a requested bye in
// this round), then assigns exactly one odd-count bye if the remaining pool
// is odd. Withdrawn and inactive players must already be filtered out.
func ResolveByes(pool []*models.Player, scores map[int]*models.PlayerScore, round int, cfg models.ByeConfig) ByeAssignment {
	var out ByeAssignment
	for _, p := range pool {
		if p.Status == models.PlayerStatusBye || p.RequestedBye(round) {
			out.Recipients = append(out.Recipients, p)
		} else {
			out.Paired = append(out.Paired, p)
		}
	}

	if len(out.Paired)%2 == 1 {
		pick := chooseOddBye(out.Paired, scores, cfg)
		paired := out.Paired[:0]
		for _, p := range out.Paired {
			if p != pick {
				paired = append(paired, p)
			}
		}
		out.Paired = paired
		out.Recipients = append(out.Recipients, pick)
	}
	return out
}

// chooseOddBye picks the odd-count bye recipient deterministically: lowest
// current score, then fewest prior byes, then lowest rating. With
// AvoidUnratedDropping set, unrated players who already had a bye are
// considered only after everyone else.
func chooseOddBye(candidates []*models.Player, scores map[int]*models.PlayerScore, cfg models.ByeConfig) *models.Player {
	ordered := make([]*models.Player, len(candidates))
	copy(ordered, candidates)

	repeatUnrated := func(p *models.Player) bool {
		return cfg.AvoidUnratedDropping && p.Unrated() && scoreOf(scores, p.ID).ByeCount() > 0
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if repeatUnrated(a) != repeatUnrated(b) {
			return !repeatUnrated(a)
		}
		as, bs := scoreOf(scores, a.ID), scoreOf(scores, b.ID)
		if as.Points != bs.Points {
			return as.Points < bs.Points
		}
		if as.ByeCount() != bs.ByeCount() {
			return as.ByeCount() < bs.ByeCount()
		}
		if a.RatingValue() != b.RatingValue() {
			return a.RatingValue() < b.RatingValue()
		}
		return a.ID < b.ID
	})
	return ordered[0]
}
