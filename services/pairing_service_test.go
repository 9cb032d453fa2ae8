package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/castlegate/pairing-engine/models"
	"github.com/castlegate/pairing-engine/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	tournaments *repositories.MemoryTournamentRepository
	players     *repositories.MemoryPlayerRepository
	teams       *repositories.MemoryTeamRepository
	pairings    *repositories.MemoryPairingRepository

	tournamentService TournamentService
	playerService     PlayerService
	pairingService    PairingService
	standingsService  StandingsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		tournaments: repositories.NewMemoryTournamentRepository(),
		players:     repositories.NewMemoryPlayerRepository(),
		teams:       repositories.NewMemoryTeamRepository(),
		pairings:    repositories.NewMemoryPairingRepository(),
	}
	f.tournamentService = NewTournamentService(f.tournaments, f.players, f.teams, logger)
	f.playerService = NewPlayerService(f.players, f.tournaments, f.teams, logger)
	f.pairingService = NewPairingService(f.tournaments, f.players, f.pairings, nil, logger)
	f.standingsService = NewStandingsService(f.players, f.pairings, f.teams, logger)
	return f
}

func (f *fixture) activeTournament(t *testing.T, ratings ...int) *models.Tournament {
	t.Helper()
	ctx := context.Background()
	tournament, err := f.tournamentService.Create(ctx, CreateTournamentInput{Name: "City Championship", Rounds: 5})
	require.NoError(t, err)
	for i, rating := range ratings {
		r := rating
		_, err := f.playerService.Register(ctx, tournament.ID, RegisterPlayerInput{
			Name:    "Player " + string(rune('A'+i)),
			Rating:  &r,
			Section: "Open",
		})
		require.NoError(t, err)
	}
	tournament, err = f.tournamentService.UpdateStatus(ctx, tournament.ID, models.StatusActive)
	require.NoError(t, err)
	return tournament
}

func TestGenerateRoundHappyPath(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000, 1900, 1000, 900)

	pairings, err := f.pairingService.GenerateRound(context.Background(), tournament.ID, "Open",
		GenerateRoundInput{Round: 1})
	require.NoError(t, err)
	require.Len(t, pairings, 2)

	stored, err := f.pairingService.GetRound(context.Background(), tournament.ID, "Open", 1)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	require.Equal(t, 1, stored[0].Board)
	require.Equal(t, 2, stored[1].Board)
}

func TestGenerateRoundRequiresActiveTournament(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tournament, err := f.tournamentService.Create(ctx, CreateTournamentInput{Name: "Pending Open", Rounds: 3})
	require.NoError(t, err)

	_, err = f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 1})
	require.ErrorIs(t, err, ErrTournamentNotActive)
}

func TestGenerateRoundConflictsWithoutForce(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000, 1900, 1000, 900)
	ctx := context.Background()

	_, err := f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 1})
	require.NoError(t, err)

	_, err = f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 1})
	require.ErrorIs(t, err, ErrRoundAlreadyPaired)
}

func TestForceRegenerateReplacesPairingIDs(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000, 1900, 1000, 900)
	ctx := context.Background()

	first, err := f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 1})
	require.NoError(t, err)

	second, err := f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 1, Force: true})
	require.NoError(t, err)
	require.Len(t, second, len(first))

	oldIDs := make(map[uuid.UUID]bool)
	for _, p := range first {
		oldIDs[p.ID] = true
	}
	for _, p := range second {
		require.False(t, oldIDs[p.ID], "regeneration must mint fresh pairing ids")
	}

	// Results recorded against the discarded set are rejected as stale.
	_, err = f.pairingService.RecordResult(ctx, tournament.ID, first[0].ID, models.ResultWhiteWins)
	require.ErrorIs(t, err, ErrStalePairing)
}

func TestGenerateNextRoundRequiresResults(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000, 1900, 1000, 900)
	ctx := context.Background()

	r1, err := f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 1})
	require.NoError(t, err)

	_, err = f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 2})
	require.ErrorIs(t, err, ErrRoundIncomplete)

	for _, p := range r1 {
		_, err := f.pairingService.RecordResult(ctx, tournament.ID, p.ID, models.ResultWhiteWins)
		require.NoError(t, err)
	}

	r2, err := f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 2})
	require.NoError(t, err)
	require.Len(t, r2, 2)
}

func TestGenerateRoundInsufficientPlayers(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000)

	_, err := f.pairingService.GenerateRound(context.Background(), tournament.ID, "Open", GenerateRoundInput{Round: 1})
	require.ErrorIs(t, err, ErrInsufficientPlayers)
}

func TestRecordResultValidation(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000, 1900)
	ctx := context.Background()

	r1, err := f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 1})
	require.NoError(t, err)

	_, err = f.pairingService.RecordResult(ctx, tournament.ID, r1[0].ID, models.Result("2-0"))
	require.ErrorIs(t, err, ErrInvalidResult)

	_, err = f.pairingService.RecordResult(ctx, tournament.ID, r1[0].ID, models.ResultBye)
	require.ErrorIs(t, err, ErrInvalidResult)

	updated, err := f.pairingService.RecordResult(ctx, tournament.ID, r1[0].ID, models.ResultDraw)
	require.NoError(t, err)
	require.Equal(t, models.ResultDraw, *updated.Result)
}

func TestCreateCustomRejectsAlreadyPairedPlayer(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000, 1900, 1000, 900)
	ctx := context.Background()

	_, err := f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 1})
	require.NoError(t, err)

	players, err := f.playerService.ListBySection(ctx, tournament.ID, "Open")
	require.NoError(t, err)
	require.NotEmpty(t, players)

	_, err = f.pairingService.CreateCustom(ctx, tournament.ID, "Open", CustomPairingInput{
		Round:   1,
		WhiteID: &players[0].ID,
	})
	require.ErrorIs(t, err, ErrPlayerAlreadyPaired)

	// A later round is free.
	custom, err := f.pairingService.CreateCustom(ctx, tournament.ID, "Open", CustomPairingInput{
		Round:   2,
		WhiteID: &players[0].ID,
		BlackID: &players[1].ID,
	})
	require.NoError(t, err)
	require.Equal(t, 1, custom.Board)
}

func TestManualEditsRejectSamePlayerBothSlots(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000, 1900, 1000, 900)
	ctx := context.Background()

	r1, err := f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 1})
	require.NoError(t, err)

	players, err := f.playerService.ListBySection(ctx, tournament.ID, "Open")
	require.NoError(t, err)

	_, err = f.pairingService.CreateCustom(ctx, tournament.ID, "Open", CustomPairingInput{
		Round:   2,
		WhiteID: &players[0].ID,
		BlackID: &players[0].ID,
	})
	require.ErrorIs(t, err, ErrValidationFailed)

	_, err = f.pairingService.SwapPlayers(ctx, tournament.ID, r1[0].ID, SwapPlayersInput{
		WhiteID: &players[0].ID,
		BlackID: &players[0].ID,
	})
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestCustomPairingBoardUniqueAfterDeletion(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000, 1900, 1000, 900)
	ctx := context.Background()

	r1, err := f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 1})
	require.NoError(t, err)
	require.Len(t, r1, 2)

	// Deleting board 1 leaves a gap; the replacement board must not collide
	// with the surviving board 2.
	require.NoError(t, f.pairingService.DeletePairing(ctx, tournament.ID, r1[0].ID))

	custom, err := f.pairingService.CreateCustom(ctx, tournament.ID, "Open", CustomPairingInput{
		Round:   1,
		WhiteID: r1[0].WhiteID,
		BlackID: r1[0].BlackID,
	})
	require.NoError(t, err)
	require.Equal(t, 3, custom.Board)
	require.NotEqual(t, r1[1].Board, custom.Board)
}

func TestResetRoundDeletesPairings(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000, 1900, 1000, 900)
	ctx := context.Background()

	_, err := f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 1})
	require.NoError(t, err)

	require.NoError(t, f.pairingService.ResetRound(ctx, tournament.ID, "Open", 1))

	stored, err := f.pairingService.GetRound(ctx, tournament.ID, "Open", 1)
	require.NoError(t, err)
	require.Empty(t, stored)

	require.ErrorIs(t, f.pairingService.ResetRound(ctx, tournament.ID, "Open", 1), ErrPairingNotFound)
}

func TestReorderBoards(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000, 1900, 1000, 900)
	ctx := context.Background()

	r1, err := f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 1})
	require.NoError(t, err)

	reordered, err := f.pairingService.ReorderBoards(ctx, tournament.ID, "Open", 1,
		[]uuid.UUID{r1[1].ID, r1[0].ID})
	require.NoError(t, err)
	require.Equal(t, r1[1].ID, reordered[0].ID)
	require.Equal(t, 1, reordered[0].Board)
	require.Equal(t, 2, reordered[1].Board)

	// The id list must cover the round exactly.
	_, err = f.pairingService.ReorderBoards(ctx, tournament.ID, "Open", 1, []uuid.UUID{r1[0].ID})
	require.ErrorIs(t, err, ErrValidationFailed)

	_, err = f.pairingService.ReorderBoards(ctx, tournament.ID, "Open", 1,
		[]uuid.UUID{r1[0].ID, uuid.New()})
	require.ErrorIs(t, err, ErrStalePairing)
}

func TestSectionStatusTracksPendingResults(t *testing.T) {
	f := newFixture(t)
	tournament := f.activeTournament(t, 2000, 1900, 1000, 900)
	ctx := context.Background()

	r1, err := f.pairingService.GenerateRound(ctx, tournament.ID, "Open", GenerateRoundInput{Round: 1})
	require.NoError(t, err)

	status, err := f.pairingService.Status(ctx, tournament.ID, "Open", 5)
	require.NoError(t, err)
	require.Equal(t, 1, status.CurrentRound)
	require.Equal(t, 2, status.PendingResults)
	require.False(t, status.RoundComplete)

	for _, p := range r1 {
		_, err := f.pairingService.RecordResult(ctx, tournament.ID, p.ID, models.ResultWhiteWins)
		require.NoError(t, err)
	}

	status, err = f.pairingService.Status(ctx, tournament.ID, "Open", 5)
	require.NoError(t, err)
	require.True(t, status.RoundComplete)
	require.Zero(t, status.PendingResults)
}
