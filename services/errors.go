package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed       = errors.New("validation failed")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrPlayerNameRequired     = errors.New("player name is required")
	ErrInvalidResult          = errors.New("invalid game result")
	ErrResultOnBye            = errors.New("cannot record a game result on a bye")
	ErrInsufficientPlayers    = errors.New("not enough eligible players to generate pairings")
	ErrRoundOutOfRange        = errors.New("round is outside the section schedule")
	ErrRoundIncomplete        = errors.New("previous rounds have unreported results")
	ErrTournamentNotActive    = errors.New("tournament is not active")

	// Ошибки конфликтов
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrTeamNameConflict       = errors.New("team name already exists")
	ErrRoundAlreadyPaired     = errors.New("pairings already exist for this round")
	ErrPlayerAlreadyPaired    = errors.New("player is already paired in this round")
	// ErrStalePairing is returned when a pairing id refers to a set that has
	// since been regenerated. Regeneration replaces rather than merges, so
	// ids from the discarded set stop resolving.
	ErrStalePairing = errors.New("pairing no longer exists; the round may have been regenerated")

	// Ошибки, специфичные для сущностей
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPairingNotFound    = errors.New("pairing not found")

	// Ошибки статусов
	ErrTournamentInvalidStatus           = errors.New("invalid tournament status provided")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
)
