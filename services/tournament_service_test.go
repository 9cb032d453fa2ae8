package services

import (
	"context"
	"testing"

	"github.com/castlegate/pairing-engine/models"
	"github.com/stretchr/testify/require"
)

func TestCreateTournamentValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.tournamentService.Create(ctx, CreateTournamentInput{Name: "   ", Rounds: 5})
	require.ErrorIs(t, err, ErrTournamentNameRequired)

	_, err = f.tournamentService.Create(ctx, CreateTournamentInput{Name: "Weekend Swiss", Rounds: 0})
	require.ErrorIs(t, err, ErrValidationFailed)

	tournament, err := f.tournamentService.Create(ctx, CreateTournamentInput{Name: "Weekend Swiss", Rounds: 4})
	require.NoError(t, err)
	require.Equal(t, models.StatusRegistration, tournament.Status)

	_, err = f.tournamentService.Create(ctx, CreateTournamentInput{Name: "Weekend Swiss", Rounds: 4})
	require.ErrorIs(t, err, ErrTournamentNameConflict)
}

func TestTournamentStatusLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tournament, err := f.tournamentService.Create(ctx, CreateTournamentInput{Name: "Club Night", Rounds: 3})
	require.NoError(t, err)

	// Registration cannot jump straight to completed.
	_, err = f.tournamentService.UpdateStatus(ctx, tournament.ID, models.StatusCompleted)
	require.ErrorIs(t, err, ErrTournamentInvalidStatusTransition)

	tournament, err = f.tournamentService.UpdateStatus(ctx, tournament.ID, models.StatusActive)
	require.NoError(t, err)
	require.Equal(t, models.StatusActive, tournament.Status)

	tournament, err = f.tournamentService.UpdateStatus(ctx, tournament.ID, models.StatusCompleted)
	require.NoError(t, err)

	// Completed is terminal.
	_, err = f.tournamentService.UpdateStatus(ctx, tournament.ID, models.StatusActive)
	require.ErrorIs(t, err, ErrTournamentInvalidStatusTransition)
}

func TestListTournamentsByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.tournamentService.Create(ctx, CreateTournamentInput{Name: "Spring Open", Rounds: 5})
	require.NoError(t, err)
	_, err = f.tournamentService.Create(ctx, CreateTournamentInput{Name: "Summer Open", Rounds: 5})
	require.NoError(t, err)
	_, err = f.tournamentService.UpdateStatus(ctx, first.ID, models.StatusActive)
	require.NoError(t, err)

	active := models.StatusActive
	got, err := f.tournamentService.List(ctx, &active)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Spring Open", got[0].Name)

	all, err := f.tournamentService.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestTeamLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tournament, err := f.tournamentService.Create(ctx, CreateTournamentInput{Name: "Team League", Rounds: 5})
	require.NoError(t, err)

	team, err := f.tournamentService.CreateTeam(ctx, tournament.ID, CreateTeamInput{Name: "Knights", Section: "Open"})
	require.NoError(t, err)

	_, err = f.tournamentService.CreateTeam(ctx, tournament.ID, CreateTeamInput{Name: "Knights", Section: "Open"})
	require.ErrorIs(t, err, ErrTeamNameConflict)

	rating := 1800
	_, err = f.playerService.Register(ctx, tournament.ID, RegisterPlayerInput{
		Name:    "Board One",
		Rating:  &rating,
		Section: "Open",
		TeamID:  &team.ID,
	})
	require.NoError(t, err)

	teams, err := f.tournamentService.ListTeams(ctx, tournament.ID)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	require.Len(t, teams[0].Members, 1)

	require.NoError(t, f.tournamentService.DeleteTeam(ctx, tournament.ID, team.ID))
	require.ErrorIs(t, f.tournamentService.DeleteTeam(ctx, tournament.ID, team.ID), ErrTeamNotFound)
}

func TestRegisterPlayerByeRoundsBounded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tournament, err := f.tournamentService.Create(ctx, CreateTournamentInput{Name: "Scholastic", Rounds: 4})
	require.NoError(t, err)

	_, err = f.playerService.Register(ctx, tournament.ID, RegisterPlayerInput{
		Name:      "Late Arrival",
		Section:   "Open",
		ByeRounds: []int{5},
	})
	require.ErrorIs(t, err, ErrValidationFailed)

	player, err := f.playerService.Register(ctx, tournament.ID, RegisterPlayerInput{
		Name:      "Late Arrival",
		Section:   "Open",
		ByeRounds: []int{1, 2},
	})
	require.NoError(t, err)
	require.Equal(t, models.PlayerStatusActive, player.Status)
}
