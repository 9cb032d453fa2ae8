package scoring

import (
	"sort"

	"github.com/castlegate/pairing-engine/models"
)

// Calculator computes tiebreak values for one section from the ledger output
// and the pairing history embedded in it. Byes never contribute to opponent
// sums: a bye is not an opponent.
type Calculator struct {
	players map[int]*models.Player
	scores  map[int]*models.PlayerScore
	cfg     models.SectionConfig
}

func NewCalculator(players []*models.Player, scores map[int]*models.PlayerScore, cfg models.SectionConfig) *Calculator {
	byID := make(map[int]*models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return &Calculator{players: byID, scores: scores, cfg: cfg}
}

func (c *Calculator) score(playerID int) *models.PlayerScore {
	if s, ok := c.scores[playerID]; ok {
		return s
	}
	return &models.PlayerScore{PlayerID: playerID}
}

// Buchholz sums the final scores of all opponents faced, optionally cutting
// the configured number of lowest and highest values.
func (c *Calculator) Buchholz(playerID int) float64 {
	var values []float64
	for _, oppID := range c.score(playerID).Opponents() {
		values = append(values, c.score(oppID).Points.Float())
	}
	sort.Float64s(values)

	cut := c.cfg.BuchholzCut
	if cut.Lowest+cut.Highest >= len(values) {
		if cut.Lowest > 0 || cut.Highest > 0 {
			return 0
		}
	} else {
		values = values[cut.Lowest : len(values)-cut.Highest]
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// SonnebornBerger sums the scores of defeated opponents in full and of drawn
// opponents in half.
func (c *Calculator) SonnebornBerger(playerID int) float64 {
	var sum float64
	for _, g := range c.score(playerID).Games {
		if g.Bye {
			continue
		}
		opp := c.score(g.OpponentID).Points.Float()
		switch g.Points {
		case models.FullPoint:
			sum += opp
		case models.HalfPoint:
			sum += opp / 2
		}
	}
	return sum
}

// DirectEncounter returns the points earned against the given set of tied
// opponents. It only separates players whose primary score is identical.
func (c *Calculator) DirectEncounter(playerID int, tied map[int]bool) float64 {
	var sum models.Points
	for _, g := range c.score(playerID).Games {
		if g.Bye || !tied[g.OpponentID] {
			continue
		}
		sum += g.Points
	}
	return sum.Float()
}

// Performance estimates a performance rating as average rated-opponent
// rating plus 400 * (wins - losses) / games, over rated opponents only.
func (c *Calculator) Performance(playerID int) float64 {
	var ratingSum, games, diff int
	for _, g := range c.score(playerID).Games {
		if g.Bye {
			continue
		}
		opp, ok := c.players[g.OpponentID]
		if !ok || opp.Unrated() {
			continue
		}
		ratingSum += opp.RatingValue()
		games++
		switch g.Points {
		case models.FullPoint:
			diff++
		case models.NoPoints:
			diff--
		}
	}
	if games == 0 {
		return 0
	}
	return float64(ratingSum)/float64(games) + 400*float64(diff)/float64(games)
}

// ForPlayers evaluates the configured tiebreak list for every roster player,
// with direct encounter restricted to identical-score groups.
func (c *Calculator) ForPlayers() map[int][]models.TiebreakValue {
	tieGroups := make(map[models.Points]map[int]bool)
	for id := range c.players {
		pts := c.score(id).Points
		if tieGroups[pts] == nil {
			tieGroups[pts] = make(map[int]bool)
		}
		tieGroups[pts][id] = true
	}

	out := make(map[int][]models.TiebreakValue, len(c.players))
	for id := range c.players {
		values := make([]models.TiebreakValue, 0, len(c.cfg.Tiebreaks))
		for _, tb := range c.cfg.Tiebreaks {
			var v float64
			switch tb {
			case models.TiebreakBuchholz:
				v = c.Buchholz(id)
			case models.TiebreakSonnebornBerger:
				v = c.SonnebornBerger(id)
			case models.TiebreakDirectEncounter:
				tied := tieGroups[c.score(id).Points]
				v = c.DirectEncounter(id, tied)
			case models.TiebreakPerformance:
				v = c.Performance(id)
			}
			values = append(values, models.TiebreakValue{Name: tb, Value: v})
		}
		out[id] = values
	}
	return out
}
