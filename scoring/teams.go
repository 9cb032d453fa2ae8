package scoring

import (
	"sort"

	"github.com/castlegate/pairing-engine/models"
)

// BuildTeamStandings rolls individual results up into ranked team scores.
// Under all_players every member's points count; under top_players only the
// best N member scores of each round count. RoundScores carries the
// cumulative team total after each round for progressive display.
func BuildTeamStandings(teams []*models.Team, players []*models.Player, pairings []*models.Pairing, cfg models.SectionConfig) []*models.TeamStanding {
	scores := Compute(pairings, cfg.Bye)

	lastRound := 0
	for _, p := range pairings {
		if p.Round > lastRound {
			lastRound = p.Round
		}
	}

	membersByTeam := make(map[int][]*models.Player)
	for _, p := range players {
		if p.TeamID != nil {
			membersByTeam[*p.TeamID] = append(membersByTeam[*p.TeamID], p)
		}
	}

	calc := NewCalculator(players, scores, cfg)

	rows := make([]*models.TeamStanding, 0, len(teams))
	for _, team := range teams {
		members := membersByTeam[team.ID]
		row := &models.TeamStanding{Team: team, RoundScores: make([]models.Points, 0, lastRound)}

		var cumulative models.Points
		for round := 1; round <= lastRound; round++ {
			cumulative += teamRoundScore(members, scores, round, cfg)
			row.RoundScores = append(row.RoundScores, cumulative)
		}
		row.Score = cumulative

		var buchholz, sb float64
		for _, m := range members {
			if s, ok := scores[m.ID]; ok {
				row.GamesPlayed += s.GamesPlayed
			}
			buchholz += calc.Buchholz(m.ID)
			sb += calc.SonnebornBerger(m.ID)
		}
		// Team tiebreaks treat the team as a composite entity: member
		// opponent sums are combined.
		row.Tiebreaks = []models.TiebreakValue{
			{Name: models.TiebreakBuchholz, Value: buchholz},
			{Name: models.TiebreakSonnebornBerger, Value: sb},
		}

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		for k := range a.Tiebreaks {
			if a.Tiebreaks[k].Value != b.Tiebreaks[k].Value {
				return a.Tiebreaks[k].Value > b.Tiebreaks[k].Value
			}
		}
		if a.Team.Name != b.Team.Name {
			return a.Team.Name < b.Team.Name
		}
		return a.Team.ID < b.Team.ID
	})
	for i, row := range rows {
		row.Rank = i + 1
	}
	return rows
}

func teamRoundScore(members []*models.Player, scores map[int]*models.PlayerScore, round int, cfg models.SectionConfig) models.Points {
	roundPoints := make([]models.Points, 0, len(members))
	for _, m := range members {
		s, ok := scores[m.ID]
		if !ok {
			continue
		}
		var pts models.Points
		for _, g := range s.Games {
			if g.Round == round {
				pts += g.Points
			}
		}
		roundPoints = append(roundPoints, pts)
	}

	if cfg.TeamScoring == models.TeamScoringTopPlayers {
		sort.Slice(roundPoints, func(i, j int) bool { return roundPoints[i] > roundPoints[j] })
		if len(roundPoints) > cfg.TopPlayers {
			roundPoints = roundPoints[:cfg.TopPlayers]
		}
	}

	var total models.Points
	for _, pts := range roundPoints {
		total += pts
	}
	return total
}
