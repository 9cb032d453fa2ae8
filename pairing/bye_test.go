package pairing

import (
	"testing"

	"github.com/castlegate/pairing-engine/models"
	"github.com/stretchr/testify/require"
)

func TestResolveByesRequestedAndStatus(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1500), player(4, 1200),
	}
	players[1].ByeRounds = []int{3}
	players[2].Status = models.PlayerStatusBye

	out := ResolveByes(players, nil, 3, models.ByeConfig{})
	require.Len(t, out.Paired, 2)
	require.Len(t, out.Recipients, 2)

	ids := []int{out.Recipients[0].ID, out.Recipients[1].ID}
	require.ElementsMatch(t, []int{2, 3}, ids)
}

func TestResolveByesOddCountPicksLowest(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1500),
	}
	scores := map[int]*models.PlayerScore{
		1: {PlayerID: 1, Points: 2},
		2: {PlayerID: 2, Points: 2},
		3: {PlayerID: 3, Points: 4},
	}

	// Lowest score loses the tie on rating: player 2.
	out := ResolveByes(players, scores, 2, models.ByeConfig{})
	require.Len(t, out.Recipients, 1)
	require.Equal(t, 2, out.Recipients[0].ID)
}

func TestResolveByesPrefersFewestPriorByes(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1500),
	}
	scores := map[int]*models.PlayerScore{
		2: {PlayerID: 2, Games: []models.GameRecord{{Round: 1, Bye: true}}},
		3: {PlayerID: 3, Games: []models.GameRecord{{Round: 1, Bye: true}}},
	}
	// All on zero points; 2 and 3 already had byes, so player 1 sits.
	out := ResolveByes(players, scores, 2, models.ByeConfig{})
	require.Equal(t, 1, out.Recipients[0].ID)
}

func TestResolveByesAvoidUnratedDropping(t *testing.T) {
	unrated := &models.Player{ID: 3, Name: "House", Section: "Open", Status: models.PlayerStatusActive}
	players := []*models.Player{player(1, 2000), player(2, 1900), unrated}
	scores := map[int]*models.PlayerScore{
		3: {PlayerID: 3, Games: []models.GameRecord{{Round: 1, Bye: true}}},
	}

	// Scores are level, so the prior bye already pushes player 3 behind the
	// others even without the flag.
	out := ResolveByes(players, scores, 2, models.ByeConfig{})
	require.NotEqual(t, 3, out.Recipients[0].ID)

	// With the flag, an unrated player with a prior bye goes to the back of
	// the queue outright.
	out = ResolveByes(players, scores, 2, models.ByeConfig{AvoidUnratedDropping: true})
	require.NotEqual(t, 3, out.Recipients[0].ID)

	// A fresh unrated player (no prior bye) is still a normal candidate.
	out = ResolveByes(players, nil, 2, models.ByeConfig{AvoidUnratedDropping: true})
	require.Equal(t, 3, out.Recipients[0].ID)
}
