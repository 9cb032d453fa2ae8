package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/castlegate/pairing-engine/models"
	"github.com/castlegate/pairing-engine/pairing"
	"github.com/castlegate/pairing-engine/repositories"
	"github.com/google/uuid"
)

type GenerateRoundInput struct {
	Round  int                  `json:"round"`
	Config models.SectionConfig `json:"config"`
	// Force regenerates an already-paired round, discarding it together
	// with any recorded results.
	Force bool `json:"force,omitempty"`
}

type CustomPairingInput struct {
	Round   int  `json:"round"`
	WhiteID *int `json:"white_id,omitempty"`
	BlackID *int `json:"black_id,omitempty"`
}

type SwapPlayersInput struct {
	WhiteID *int `json:"white_id,omitempty"`
	BlackID *int `json:"black_id,omitempty"`
}

// SectionStatus summarizes round progress for one section.
type SectionStatus struct {
	Section        string `json:"section"`
	CurrentRound   int    `json:"current_round"`
	RoundComplete  bool   `json:"round_complete"`
	PendingResults int    `json:"pending_results"`
	TotalRounds    int    `json:"total_rounds"`
}

type PairingService interface {
	GenerateRound(ctx context.Context, tournamentID int, section string, input GenerateRoundInput) ([]*models.Pairing, error)
	ResetRound(ctx context.Context, tournamentID int, section string, round int) error
	GetRound(ctx context.Context, tournamentID int, section string, round int) ([]*models.Pairing, error)
	GetSection(ctx context.Context, tournamentID int, section string) ([]*models.Pairing, error)
	RecordResult(ctx context.Context, tournamentID int, pairingID uuid.UUID, result models.Result) (*models.Pairing, error)
	SwapPlayers(ctx context.Context, tournamentID int, pairingID uuid.UUID, input SwapPlayersInput) (*models.Pairing, error)
	CreateCustom(ctx context.Context, tournamentID int, section string, input CustomPairingInput) (*models.Pairing, error)
	DeletePairing(ctx context.Context, tournamentID int, pairingID uuid.UUID) error
	ReorderBoards(ctx context.Context, tournamentID int, section string, round int, orderedIDs []uuid.UUID) ([]*models.Pairing, error)
	Status(ctx context.Context, tournamentID int, section string, totalRounds int) (*SectionStatus, error)
}

type pairingService struct {
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	pairingRepo    repositories.PairingRepository
	hub            *pairing.Hub
	logger         *slog.Logger

	// locks serializes generation per tournament+section so two concurrent
	// requests cannot commit overlapping pairing sets.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPairingService(
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	pairingRepo repositories.PairingRepository,
	hub *pairing.Hub,
	logger *slog.Logger,
) PairingService {
	return &pairingService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		pairingRepo:    pairingRepo,
		hub:            hub,
		logger:         logger,
		locks:          make(map[string]*sync.Mutex),
	}
}

func (s *pairingService) sectionLock(tournamentID int, section string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%d/%s", tournamentID, section)
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

func roomFor(tournamentID int) string {
	return fmt.Sprintf("tournament:%d", tournamentID)
}

func (s *pairingService) broadcast(tournamentID int, eventType string, payload interface{}) {
	if s.hub != nil {
		s.hub.BroadcastToRoom(roomFor(tournamentID), eventType, payload)
	}
}

func (s *pairingService) GenerateRound(ctx context.Context, tournamentID int, section string, input GenerateRoundInput) ([]*models.Pairing, error) {
	lock := s.sectionLock(tournamentID, section)
	lock.Lock()
	defer lock.Unlock()

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status != models.StatusActive {
		return nil, ErrTournamentNotActive
	}

	cfg := input.Config
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if input.Round < 1 {
		return nil, ErrRoundOutOfRange
	}
	if cfg.System.Swiss() && input.Round > cfg.Rounds {
		return nil, ErrRoundOutOfRange
	}

	players, err := s.playerRepo.ListBySection(ctx, tournamentID, section)
	if err != nil {
		return nil, fmt.Errorf("failed to load section roster: %w", err)
	}

	all, err := s.pairingRepo.ListBySection(ctx, tournamentID, section)
	if err != nil {
		return nil, fmt.Errorf("failed to load section pairings: %w", err)
	}
	prior := make([]*models.Pairing, 0, len(all))
	for _, p := range all {
		switch {
		case p.Round < input.Round:
			if !p.Completed() {
				return nil, fmt.Errorf("%w: round %d board %d", ErrRoundIncomplete, p.Round, p.Board)
			}
			prior = append(prior, p)
		case p.Round == input.Round:
			if !input.Force {
				return nil, ErrRoundAlreadyPaired
			}
		}
	}

	strategy, err := pairing.ForSystem(cfg.System)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	pairings, err := strategy.GenerateRound(ctx, pairing.GenerateRoundParams{
		TournamentID: tournamentID,
		Section:      section,
		Round:        input.Round,
		Players:      players,
		Prior:        prior,
		Config:       cfg,
	})
	if err != nil {
		switch {
		case errors.Is(err, pairing.ErrInsufficientPlayers):
			return nil, ErrInsufficientPlayers
		case errors.Is(err, pairing.ErrRoundOutOfRange):
			return nil, ErrRoundOutOfRange
		case errors.Is(err, pairing.ErrRoundIncomplete):
			return nil, ErrRoundIncomplete
		}
		return nil, fmt.Errorf("pairing generation failed: %w", err)
	}

	// Commit replaces rather than merges: any previous set for the round is
	// discarded and every committed pairing carries a fresh id.
	if err := s.pairingRepo.ReplaceRound(ctx, tournamentID, section, input.Round, pairings); err != nil {
		return nil, fmt.Errorf("failed to store pairings: %w", err)
	}

	s.logger.Info("round generated",
		slog.Int("tournament_id", tournamentID),
		slog.String("section", section),
		slog.Int("round", input.Round),
		slog.String("system", string(cfg.System)),
		slog.Int("boards", len(pairings)))
	s.broadcast(tournamentID, pairing.EventPairingsUpdated, map[string]interface{}{
		"section":  section,
		"round":    input.Round,
		"pairings": pairings,
	})
	return pairings, nil
}

func (s *pairingService) ResetRound(ctx context.Context, tournamentID int, section string, round int) error {
	lock := s.sectionLock(tournamentID, section)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.pairingRepo.ListByRound(ctx, tournamentID, section, round)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return ErrPairingNotFound
	}
	if err := s.pairingRepo.DeleteRound(ctx, tournamentID, section, round); err != nil {
		return fmt.Errorf("failed to reset round: %w", err)
	}

	s.logger.Info("round reset",
		slog.Int("tournament_id", tournamentID),
		slog.String("section", section),
		slog.Int("round", round))
	s.broadcast(tournamentID, pairing.EventPairingsReset, map[string]interface{}{
		"section": section,
		"round":   round,
	})
	return nil
}

func (s *pairingService) GetRound(ctx context.Context, tournamentID int, section string, round int) ([]*models.Pairing, error) {
	return s.pairingRepo.ListByRound(ctx, tournamentID, section, round)
}

func (s *pairingService) GetSection(ctx context.Context, tournamentID int, section string) ([]*models.Pairing, error) {
	return s.pairingRepo.ListBySection(ctx, tournamentID, section)
}

func (s *pairingService) RecordResult(ctx context.Context, tournamentID int, pairingID uuid.UUID, result models.Result) (*models.Pairing, error) {
	if !result.Valid() || result == models.ResultBye {
		return nil, ErrInvalidResult
	}

	p, err := s.getOwned(ctx, tournamentID, pairingID)
	if err != nil {
		return nil, err
	}
	if p.IsBye() {
		return nil, ErrResultOnBye
	}

	if err := s.pairingRepo.UpdateResult(ctx, pairingID, &result); err != nil {
		if errors.Is(err, repositories.ErrPairingNotFound) {
			return nil, ErrStalePairing
		}
		return nil, err
	}
	p.Result = &result

	s.logger.Info("result recorded",
		slog.Int("tournament_id", tournamentID),
		slog.String("section", p.Section),
		slog.Int("round", p.Round),
		slog.Int("board", p.Board),
		slog.String("result", string(result)))
	s.broadcast(tournamentID, pairing.EventResultRecorded, p)
	s.broadcast(tournamentID, pairing.EventStandingsChanged, map[string]interface{}{
		"section": p.Section,
	})
	return p, nil
}

// SwapPlayers replaces the players on one board. Directors use it for manual
// corrections after generation; derived metadata on the board is not
// recomputed.
func (s *pairingService) SwapPlayers(ctx context.Context, tournamentID int, pairingID uuid.UUID, input SwapPlayersInput) (*models.Pairing, error) {
	if input.WhiteID == nil && input.BlackID == nil {
		return nil, fmt.Errorf("%w: at least one player required", ErrValidationFailed)
	}
	if input.WhiteID != nil && input.BlackID != nil && *input.WhiteID == *input.BlackID {
		return nil, fmt.Errorf("%w: white and black must be different players", ErrValidationFailed)
	}

	p, err := s.getOwned(ctx, tournamentID, pairingID)
	if err != nil {
		return nil, err
	}
	if err := s.checkRoster(ctx, tournamentID, p.Section, input.WhiteID, input.BlackID); err != nil {
		return nil, err
	}

	siblings, err := s.pairingRepo.ListByRound(ctx, tournamentID, p.Section, p.Round)
	if err != nil {
		return nil, err
	}
	for _, other := range siblings {
		if other.ID == p.ID {
			continue
		}
		for _, id := range []*int{input.WhiteID, input.BlackID} {
			if id != nil && other.HasPlayer(*id) {
				return nil, fmt.Errorf("%w: player %d on board %d", ErrPlayerAlreadyPaired, *id, other.Board)
			}
		}
	}

	if err := s.pairingRepo.UpdatePlayers(ctx, pairingID, input.WhiteID, input.BlackID); err != nil {
		if errors.Is(err, repositories.ErrPairingNotFound) {
			return nil, ErrStalePairing
		}
		return nil, err
	}
	p.WhiteID = input.WhiteID
	p.BlackID = input.BlackID

	s.broadcast(tournamentID, pairing.EventPairingsUpdated, map[string]interface{}{
		"section": p.Section,
		"round":   p.Round,
		"pairing": p,
	})
	return p, nil
}

func (s *pairingService) CreateCustom(ctx context.Context, tournamentID int, section string, input CustomPairingInput) (*models.Pairing, error) {
	if input.Round < 1 {
		return nil, ErrRoundOutOfRange
	}
	if input.WhiteID == nil && input.BlackID == nil {
		return nil, fmt.Errorf("%w: at least one player required", ErrValidationFailed)
	}
	if input.WhiteID != nil && input.BlackID != nil && *input.WhiteID == *input.BlackID {
		return nil, fmt.Errorf("%w: white and black must be different players", ErrValidationFailed)
	}
	if err := s.checkRoster(ctx, tournamentID, section, input.WhiteID, input.BlackID); err != nil {
		return nil, err
	}

	existing, err := s.pairingRepo.ListByRound(ctx, tournamentID, section, input.Round)
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		for _, id := range []*int{input.WhiteID, input.BlackID} {
			if id != nil && other.HasPlayer(*id) {
				return nil, fmt.Errorf("%w: player %d on board %d", ErrPlayerAlreadyPaired, *id, other.Board)
			}
		}
	}

	// Deletions can leave gaps in the board sequence; appending after the
	// highest board keeps the number unique.
	board := 0
	for _, other := range existing {
		if other.Board > board {
			board = other.Board
		}
	}

	p := &models.Pairing{
		ID:           uuid.New(),
		TournamentID: tournamentID,
		Section:      section,
		Round:        input.Round,
		Board:        board + 1,
		WhiteID:      input.WhiteID,
		BlackID:      input.BlackID,
	}
	if p.IsBye() {
		result := models.ResultBye
		p.Result = &result
	}
	if err := s.pairingRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create pairing: %w", err)
	}

	s.broadcast(tournamentID, pairing.EventPairingsUpdated, map[string]interface{}{
		"section": section,
		"round":   input.Round,
		"pairing": p,
	})
	return p, nil
}

func (s *pairingService) DeletePairing(ctx context.Context, tournamentID int, pairingID uuid.UUID) error {
	p, err := s.getOwned(ctx, tournamentID, pairingID)
	if err != nil {
		return err
	}
	if err := s.pairingRepo.Delete(ctx, pairingID); err != nil {
		if errors.Is(err, repositories.ErrPairingNotFound) {
			return ErrStalePairing
		}
		return err
	}
	s.broadcast(tournamentID, pairing.EventPairingsUpdated, map[string]interface{}{
		"section": p.Section,
		"round":   p.Round,
	})
	return nil
}

// ReorderBoards renumbers a round's boards to the given id order. Every
// pairing of the round must appear exactly once.
func (s *pairingService) ReorderBoards(ctx context.Context, tournamentID int, section string, round int, orderedIDs []uuid.UUID) ([]*models.Pairing, error) {
	lock := s.sectionLock(tournamentID, section)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.pairingRepo.ListByRound(ctx, tournamentID, section, round)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, ErrPairingNotFound
	}
	if len(orderedIDs) != len(existing) {
		return nil, fmt.Errorf("%w: expected %d pairing ids, got %d", ErrValidationFailed, len(existing), len(orderedIDs))
	}

	byID := make(map[uuid.UUID]*models.Pairing, len(existing))
	for _, p := range existing {
		byID[p.ID] = p
	}
	ordered := make([]*models.Pairing, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		p, ok := byID[id]
		if !ok {
			return nil, ErrStalePairing
		}
		delete(byID, id)
		ordered = append(ordered, p)
	}

	for i, p := range ordered {
		board := i + 1
		if p.Board == board {
			continue
		}
		if err := s.pairingRepo.UpdateBoard(ctx, p.ID, board); err != nil {
			return nil, err
		}
		p.Board = board
	}

	s.broadcast(tournamentID, pairing.EventPairingsUpdated, map[string]interface{}{
		"section":  section,
		"round":    round,
		"pairings": ordered,
	})
	return ordered, nil
}

func (s *pairingService) Status(ctx context.Context, tournamentID int, section string, totalRounds int) (*SectionStatus, error) {
	pairings, err := s.pairingRepo.ListBySection(ctx, tournamentID, section)
	if err != nil {
		return nil, err
	}

	status := &SectionStatus{Section: section, TotalRounds: totalRounds}
	for _, p := range pairings {
		if p.Round > status.CurrentRound {
			status.CurrentRound = p.Round
			status.PendingResults = 0
		}
		if p.Round == status.CurrentRound && !p.Completed() {
			status.PendingResults++
		}
	}
	status.RoundComplete = status.CurrentRound > 0 && status.PendingResults == 0
	return status, nil
}

// getOwned loads a pairing and verifies it belongs to the tournament. A
// missing id is reported as stale rather than not found, since ids only
// leave the system attached to a committed set.
func (s *pairingService) getOwned(ctx context.Context, tournamentID int, pairingID uuid.UUID) (*models.Pairing, error) {
	p, err := s.pairingRepo.GetByID(ctx, pairingID)
	if err != nil {
		if errors.Is(err, repositories.ErrPairingNotFound) {
			return nil, ErrStalePairing
		}
		return nil, err
	}
	if p.TournamentID != tournamentID {
		return nil, ErrPairingNotFound
	}
	return p, nil
}

func (s *pairingService) checkRoster(ctx context.Context, tournamentID int, section string, ids ...*int) error {
	for _, id := range ids {
		if id == nil {
			continue
		}
		player, err := s.playerRepo.GetByID(ctx, *id)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return ErrPlayerNotFound
			}
			return err
		}
		if player.TournamentID != tournamentID || player.Section != section {
			return fmt.Errorf("%w: player %d is not in section %q", ErrValidationFailed, *id, section)
		}
	}
	return nil
}
