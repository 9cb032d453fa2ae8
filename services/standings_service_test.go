package services

import (
	"context"
	"testing"

	"github.com/castlegate/pairing-engine/models"
	"github.com/stretchr/testify/require"
)

// playRound generates a round and records white wins on every board.
func playRound(t *testing.T, f *fixture, tournamentID int, section string, round int) {
	t.Helper()
	ctx := context.Background()
	pairings, err := f.pairingService.GenerateRound(ctx, tournamentID, section,
		GenerateRoundInput{Round: round})
	require.NoError(t, err)
	for _, p := range pairings {
		if p.IsBye() {
			continue
		}
		_, err := f.pairingService.RecordResult(ctx, tournamentID, p.ID, models.ResultWhiteWins)
		require.NoError(t, err)
	}
}

func TestIndividualStandingsRankByScore(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000, 1900, 1000, 900)
	playRound(t, f, tournament.ID, "Open", 1)

	standings, err := f.standingsService.Individual(context.Background(), tournament.ID,
		SectionStandingsInput{Section: "Open"})
	require.NoError(t, err)
	require.Len(t, standings, 4)

	require.Equal(t, 1, standings[0].Rank)
	require.Equal(t, models.FullPoint, standings[0].Score.Points)
	require.Equal(t, models.Points(0), standings[2].Score.Points)
}

func TestIndividualThroughRoundIgnoresLaterResults(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000, 1900, 1000, 900)
	playRound(t, f, tournament.ID, "Open", 1)
	playRound(t, f, tournament.ID, "Open", 2)

	standings, err := f.standingsService.IndividualThroughRound(context.Background(), tournament.ID,
		SectionStandingsInput{Section: "Open"}, 1)
	require.NoError(t, err)
	require.Equal(t, models.FullPoint, standings[0].Score.Points)

	full, err := f.standingsService.Individual(context.Background(), tournament.ID,
		SectionStandingsInput{Section: "Open"})
	require.NoError(t, err)
	require.Greater(t, int(full[0].Score.Points), int(standings[0].Score.Points))

	_, err = f.standingsService.IndividualThroughRound(context.Background(), tournament.ID,
		SectionStandingsInput{Section: "Open"}, 0)
	require.ErrorIs(t, err, ErrRoundOutOfRange)
}

func TestDefaultConfigAwardsFullPointBye(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000, 1900, 1000)
	ctx := context.Background()

	_, err := f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 1})
	require.NoError(t, err)

	standings, err := f.standingsService.Individual(ctx, tournament.ID,
		SectionStandingsInput{Section: "Open"})
	require.NoError(t, err)

	var byeRow *models.Standing
	for _, s := range standings {
		if s.Score.ByeCount() == 1 {
			byeRow = s
		}
	}
	require.NotNil(t, byeRow)
	require.Equal(t, models.FullPoint, byeRow.Score.Points)
}

func TestAllSectionsComputesEverySection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tournament, err := f.tournamentService.Create(ctx, CreateTournamentInput{Name: "Two Section Open", Rounds: 4})
	require.NoError(t, err)
	for i, seed := range []struct {
		section string
		rating  int
	}{
		{"Open", 2000}, {"Open", 1900}, {"Reserve", 1400}, {"Reserve", 1300},
	} {
		r := seed.rating
		_, err := f.playerService.Register(ctx, tournament.ID, RegisterPlayerInput{
			Name:    "Entrant " + string(rune('A'+i)),
			Rating:  &r,
			Section: seed.section,
		})
		require.NoError(t, err)
	}
	_, err = f.tournamentService.UpdateStatus(ctx, tournament.ID, models.StatusActive)
	require.NoError(t, err)
	playRound(t, f, tournament.ID, "Open", 1)
	playRound(t, f, tournament.ID, "Reserve", 1)

	results, err := f.standingsService.AllSections(ctx, tournament.ID, []SectionStandingsInput{
		{Section: "Open"},
		{Section: "Reserve"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "Open", results[0].Section)
	require.Equal(t, "Reserve", results[1].Section)
	require.Len(t, results[0].Standings, 2)
	require.Len(t, results[1].Standings, 2)
}

func TestTeamStandingsFromRecordedResults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tournament, err := f.tournamentService.Create(ctx, CreateTournamentInput{Name: "Team Knockabout", Rounds: 4})
	require.NoError(t, err)

	knights, err := f.tournamentService.CreateTeam(ctx, tournament.ID, CreateTeamInput{Name: "Knights", Section: "Open"})
	require.NoError(t, err)
	rooks, err := f.tournamentService.CreateTeam(ctx, tournament.ID, CreateTeamInput{Name: "Rooks", Section: "Open"})
	require.NoError(t, err)

	for i, seed := range []struct {
		rating int
		teamID *int
	}{
		{2000, &knights.ID}, {1900, &knights.ID}, {1000, &rooks.ID}, {900, &rooks.ID},
	} {
		r := seed.rating
		_, err := f.playerService.Register(ctx, tournament.ID, RegisterPlayerInput{
			Name:    "Member " + string(rune('A'+i)),
			Rating:  &r,
			Section: "Open",
			TeamID:  seed.teamID,
		})
		require.NoError(t, err)
	}
	_, err = f.tournamentService.UpdateStatus(ctx, tournament.ID, models.StatusActive)
	require.NoError(t, err)
	playRound(t, f, tournament.ID, "Open", 1)

	standings, err := f.standingsService.Team(ctx, tournament.ID, SectionStandingsInput{Section: "Open"})
	require.NoError(t, err)
	require.Len(t, standings, 2)
	require.Equal(t, standings[0].Score+standings[1].Score, models.Points(2*models.FullPoint))
}
