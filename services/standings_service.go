package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/castlegate/pairing-engine/models"
	"github.com/castlegate/pairing-engine/repositories"
	"github.com/castlegate/pairing-engine/scoring"
	"golang.org/x/sync/errgroup"
)

// SectionStandingsInput names one section with the configuration to rank it
// under. Configuration travels with the request; the engine stores none.
type SectionStandingsInput struct {
	Section string               `json:"section"`
	Config  models.SectionConfig `json:"config"`
}

type SectionStandings struct {
	Section   string             `json:"section"`
	Standings []*models.Standing `json:"standings"`
}

type StandingsService interface {
	Individual(ctx context.Context, tournamentID int, input SectionStandingsInput) ([]*models.Standing, error)
	// IndividualThroughRound ranks on results up to and including the given
	// round, for progressive wall-chart display.
	IndividualThroughRound(ctx context.Context, tournamentID int, input SectionStandingsInput, round int) ([]*models.Standing, error)
	Team(ctx context.Context, tournamentID int, input SectionStandingsInput) ([]*models.TeamStanding, error)
	// AllSections computes the individual tables of several sections
	// concurrently.
	AllSections(ctx context.Context, tournamentID int, inputs []SectionStandingsInput) ([]*SectionStandings, error)
}

type standingsService struct {
	playerRepo  repositories.PlayerRepository
	pairingRepo repositories.PairingRepository
	teamRepo    repositories.TeamRepository
	logger      *slog.Logger
}

func NewStandingsService(
	playerRepo repositories.PlayerRepository,
	pairingRepo repositories.PairingRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		playerRepo:  playerRepo,
		pairingRepo: pairingRepo,
		teamRepo:    teamRepo,
		logger:      logger,
	}
}

func (s *standingsService) load(ctx context.Context, tournamentID int, input *SectionStandingsInput) ([]*models.Player, []*models.Pairing, error) {
	input.Config.Normalize()
	if err := input.Config.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	players, err := s.playerRepo.ListBySection(ctx, tournamentID, input.Section)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load section roster: %w", err)
	}
	pairings, err := s.pairingRepo.ListBySection(ctx, tournamentID, input.Section)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load section pairings: %w", err)
	}
	return players, pairings, nil
}

func (s *standingsService) Individual(ctx context.Context, tournamentID int, input SectionStandingsInput) ([]*models.Standing, error) {
	players, pairings, err := s.load(ctx, tournamentID, &input)
	if err != nil {
		return nil, err
	}
	return scoring.BuildStandings(players, pairings, input.Config), nil
}

func (s *standingsService) IndividualThroughRound(ctx context.Context, tournamentID int, input SectionStandingsInput, round int) ([]*models.Standing, error) {
	if round < 1 {
		return nil, ErrRoundOutOfRange
	}
	players, pairings, err := s.load(ctx, tournamentID, &input)
	if err != nil {
		return nil, err
	}
	upTo := make([]*models.Pairing, 0, len(pairings))
	for _, p := range pairings {
		if p.Round <= round {
			upTo = append(upTo, p)
		}
	}
	return scoring.BuildStandings(players, upTo, input.Config), nil
}

func (s *standingsService) Team(ctx context.Context, tournamentID int, input SectionStandingsInput) ([]*models.TeamStanding, error) {
	players, pairings, err := s.load(ctx, tournamentID, &input)
	if err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListBySection(ctx, tournamentID, input.Section)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		// Sections may register teams without a section tag; fall back to
		// the tournament's full team list filtered by membership.
		teams, err = s.teamRepo.ListByTournament(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
	}
	return scoring.BuildTeamStandings(teams, players, pairings, input.Config), nil
}

func (s *standingsService) AllSections(ctx context.Context, tournamentID int, inputs []SectionStandingsInput) ([]*SectionStandings, error) {
	results := make([]*SectionStandings, len(inputs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			standings, err := s.Individual(gctx, tournamentID, input)
			if err != nil {
				return fmt.Errorf("section %q: %w", input.Section, err)
			}
			mu.Lock()
			results[i] = &SectionStandings{Section: input.Section, Standings: standings}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
