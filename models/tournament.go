package models

import "time"

// TournamentStatus представляет статусы турнира, соответствующие ENUM в БД.
type TournamentStatus string

const (
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case StatusRegistration, StatusActive, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// CanTransitionTo enforces the lifecycle order: registration opens play,
// active tournaments finish or get canceled, terminal states stay put.
func (s TournamentStatus) CanTransitionTo(next TournamentStatus) bool {
	switch s {
	case StatusRegistration:
		return next == StatusActive || next == StatusCanceled
	case StatusActive:
		return next == StatusCompleted || next == StatusCanceled
	}
	return false
}

// Tournament представляет турнир.
type Tournament struct {
	ID        int              `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	Rounds    int              `json:"rounds" db:"rounds"`
	Status    TournamentStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Players []Player `json:"players,omitempty" db:"-"`
	Teams   []Team   `json:"teams,omitempty" db:"-"`
}

// Section is a named partition of players within a tournament. Pairing and
// standings computation never cross section boundaries.
type Section struct {
	Name         string        `json:"name"`
	Config       SectionConfig `json:"config"`
	CurrentRound int           `json:"current_round"`
}
