package scoring

import (
	"testing"

	"github.com/castlegate/pairing-engine/models"
	"github.com/stretchr/testify/require"
)

func teamRoster() ([]*models.Team, []*models.Player) {
	teams := []*models.Team{
		{ID: 10, TournamentID: 1, Name: "Knights", Section: "Open"},
		{ID: 20, TournamentID: 1, Name: "Rooks", Section: "Open"},
	}
	players := roster(map[int]int{1: 1800, 2: 1700, 3: 1600, 4: 1500})
	for _, p := range players {
		team := 10
		if p.ID >= 3 {
			team = 20
		}
		id := team
		p.TeamID = &id
	}
	return teams, players
}

func TestBuildTeamStandingsAllPlayers(t *testing.T) {
	teams, players := teamRoster()
	cfg := models.DefaultSectionConfig()

	standings := BuildTeamStandings(teams, players, threeRounds(), cfg)
	require.Len(t, standings, 2)

	knights := standings[0]
	require.Equal(t, 10, knights.Team.ID)
	require.Equal(t, 1, knights.Rank)
	// Members 1 and 2 together: R1 2.0, R2 1.0, R3 1.5.
	require.Equal(t, models.Points(9), knights.Score)
	require.Equal(t, []models.Points{4, 6, 9}, knights.RoundScores)

	rooks := standings[1]
	require.Equal(t, models.Points(3), rooks.Score)
	require.Equal(t, 2, rooks.Rank)
}

func TestBuildTeamStandingsTopPlayers(t *testing.T) {
	teams, players := teamRoster()
	cfg := models.DefaultSectionConfig()
	cfg.TeamScoring = models.TeamScoringTopPlayers
	cfg.TopPlayers = 1

	standings := BuildTeamStandings(teams, players, threeRounds(), cfg)

	// Only the best single score per round counts: Knights 1+1+1, Rooks 0+1+0.5.
	require.Equal(t, models.Points(6), standings[0].Score)
	require.Equal(t, 10, standings[0].Team.ID)
	require.Equal(t, models.Points(3), standings[1].Score)
}

func TestBuildTeamStandingsCompositeTiebreaks(t *testing.T) {
	teams, players := teamRoster()
	cfg := models.DefaultSectionConfig()

	standings := BuildTeamStandings(teams, players, threeRounds(), cfg)
	knights := standings[0]
	require.Len(t, knights.Tiebreaks, 2)
	require.Equal(t, models.TiebreakBuchholz, knights.Tiebreaks[0].Name)
	// Member Buchholz sums: player 1 -> 3.5, player 2 -> 1.5+2.5+0 = 4.0.
	require.InDelta(t, 7.5, knights.Tiebreaks[0].Value, 1e-9)
}
