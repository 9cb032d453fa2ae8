package scoring

import (
	"sort"

	"github.com/castlegate/pairing-engine/models"
)

// BuildStandings produces the ranked table for one section. The order is a
// stable total order: score, then each configured tiebreak, then rating,
// then name, then id — never random, so recomputation is idempotent.
func BuildStandings(players []*models.Player, pairings []*models.Pairing, cfg models.SectionConfig) []*models.Standing {
	scores := Compute(pairings, cfg.Bye)
	calc := NewCalculator(players, scores, cfg)
	tiebreaks := calc.ForPlayers()

	rows := make([]*models.Standing, 0, len(players))
	for _, p := range players {
		score, ok := scores[p.ID]
		if !ok {
			score = &models.PlayerScore{PlayerID: p.ID}
		}
		rows = append(rows, &models.Standing{
			Player:    p,
			Score:     score,
			Tiebreaks: tiebreaks[p.ID],
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Score.Points != b.Score.Points {
			return a.Score.Points > b.Score.Points
		}
		for k := range a.Tiebreaks {
			if k >= len(b.Tiebreaks) {
				break
			}
			if a.Tiebreaks[k].Value != b.Tiebreaks[k].Value {
				return a.Tiebreaks[k].Value > b.Tiebreaks[k].Value
			}
		}
		if a.Player.RatingValue() != b.Player.RatingValue() {
			return a.Player.RatingValue() > b.Player.RatingValue()
		}
		if a.Player.Name != b.Player.Name {
			return a.Player.Name < b.Player.Name
		}
		return a.Player.ID < b.Player.ID
	})

	for i, row := range rows {
		row.Rank = i + 1
	}
	return rows
}
