package pairing

import "github.com/castlegate/pairing-engine/models"

// Ranking scores are held in twelfth-point units: real points are
// half-points (x6) and acceleration bonuses come in halves and sixths, so
// twelfths keep every value integral.
const twelfthsPerHalfPoint = 6

// rankingScores returns the ranking-only score used for Swiss score-group
// partitioning. Acceleration perturbs it during the configured early rounds
// to separate strong players faster; the bonus never reaches the ledger.
func rankingScores(players []*models.Player, scores map[int]*models.PlayerScore, cfg models.SectionConfig, round int) map[int]int {
	out := make(map[int]int, len(players))
	for _, p := range players {
		out[p.ID] = int(scoreOf(scores, p.ID).Points) * twelfthsPerHalfPoint
	}

	acc := cfg.Acceleration
	if !acc.Enabled || round > acc.Rounds || len(players) < acc.Threshold {
		return out
	}

	seeds := make([]*models.Player, len(players))
	copy(seeds, players)
	sortSeeds(seeds)

	switch acc.Type {
	case models.AccelerationStandard:
		// Top half of the initial rating order gets a full virtual point.
		for i := 0; i < len(seeds)/2; i++ {
			out[seeds[i].ID] += int(models.FullPoint) * twelfthsPerHalfPoint
		}
	case models.AccelerationAddedScore:
		for i := 0; i < len(seeds)/2; i++ {
			out[seeds[i].ID] += int(acc.Fraction) * twelfthsPerHalfPoint
		}
	case models.AccelerationSixths:
		// Field split into sixths; each sixth from the top gets one less
		// 1/6-point increment, the bottom sixth none.
		chunk := (len(seeds) + 5) / 6
		for i, p := range seeds {
			group := i / chunk
			if group > 5 {
				group = 5
			}
			out[p.ID] += (5 - group) * 2 // 1/6 point = 2 twelfths
		}
	}
	return out
}
