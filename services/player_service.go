package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/castlegate/pairing-engine/models"
	"github.com/castlegate/pairing-engine/repositories"
)

type RegisterPlayerInput struct {
	Name      string  `json:"name"`
	UscfID    *string `json:"uscf_id,omitempty"`
	FideID    *string `json:"fide_id,omitempty"`
	Rating    *int    `json:"rating,omitempty"`
	Section   string  `json:"section"`
	ByeRounds []int   `json:"bye_rounds,omitempty"`
	TeamID    *int    `json:"team_id,omitempty"`
}

type UpdatePlayerInput struct {
	Name      *string `json:"name,omitempty"`
	Rating    *int    `json:"rating,omitempty"`
	Section   *string `json:"section,omitempty"`
	ByeRounds []int   `json:"bye_rounds,omitempty"`
	TeamID    *int    `json:"team_id,omitempty"`
	ClearTeam bool    `json:"clear_team,omitempty"`
}

type PlayerService interface {
	Register(ctx context.Context, tournamentID int, input RegisterPlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error)
	ListBySection(ctx context.Context, tournamentID int, section string) ([]*models.Player, error)
	Update(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	SetStatus(ctx context.Context, id int, status models.PlayerStatus) (*models.Player, error)
}

type playerService struct {
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	logger         *slog.Logger
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		logger:         logger,
	}
}

func (s *playerService) Register(ctx context.Context, tournamentID int, input RegisterPlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	if input.Rating != nil && *input.Rating < 0 {
		return nil, fmt.Errorf("%w: rating must be non-negative", ErrValidationFailed)
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	for _, round := range input.ByeRounds {
		if round < 1 || round > tournament.Rounds {
			return nil, fmt.Errorf("%w: bye round %d outside schedule of %d rounds", ErrValidationFailed, round, tournament.Rounds)
		}
	}
	if input.TeamID != nil {
		if err := s.checkTeam(ctx, tournamentID, *input.TeamID); err != nil {
			return nil, err
		}
	}

	player := &models.Player{
		TournamentID: tournamentID,
		Name:         name,
		UscfID:       input.UscfID,
		FideID:       input.FideID,
		Rating:       input.Rating,
		Section:      input.Section,
		Status:       models.PlayerStatusActive,
		ByeRounds:    input.ByeRounds,
		TeamID:       input.TeamID,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}
	s.logger.Info("player registered",
		slog.Int("tournament_id", tournamentID),
		slog.Int("player_id", player.ID),
		slog.String("section", player.Section))
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (s *playerService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	return s.playerRepo.ListByTournament(ctx, tournamentID)
}

func (s *playerService) ListBySection(ctx context.Context, tournamentID int, section string) ([]*models.Player, error) {
	return s.playerRepo.ListBySection(ctx, tournamentID, section)
}

func (s *playerService) Update(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrPlayerNameRequired
		}
		player.Name = name
	}
	if input.Rating != nil {
		if *input.Rating < 0 {
			return nil, fmt.Errorf("%w: rating must be non-negative", ErrValidationFailed)
		}
		player.Rating = input.Rating
	}
	if input.Section != nil {
		player.Section = *input.Section
	}
	if input.ByeRounds != nil {
		player.ByeRounds = input.ByeRounds
	}
	if input.ClearTeam {
		player.TeamID = nil
	} else if input.TeamID != nil {
		if err := s.checkTeam(ctx, player.TournamentID, *input.TeamID); err != nil {
			return nil, err
		}
		player.TeamID = input.TeamID
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

// SetStatus moves a player between active, withdrawn, bye and inactive.
// Withdrawn players keep their played games in the ledger; they simply stop
// being paired from the next generated round on.
func (s *playerService) SetStatus(ctx context.Context, id int, status models.PlayerStatus) (*models.Player, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown player status %q", ErrValidationFailed, status)
	}
	player, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.playerRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	s.logger.Info("player status changed",
		slog.Int("player_id", id),
		slog.String("from", string(player.Status)),
		slog.String("to", string(status)))
	player.Status = status
	return player, nil
}

func (s *playerService) checkTeam(ctx context.Context, tournamentID, teamID int) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	if team.TournamentID != tournamentID {
		return ErrTeamNotFound
	}
	return nil
}
