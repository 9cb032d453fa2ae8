package models

import "time"

// PlayerStatus представляет статус игрока в рамках турнира.
type PlayerStatus string

const (
	PlayerStatusActive    PlayerStatus = "active"
	PlayerStatusWithdrawn PlayerStatus = "withdrawn"
	PlayerStatusBye       PlayerStatus = "bye"
	PlayerStatusInactive  PlayerStatus = "inactive"
)

func (s PlayerStatus) Valid() bool {
	switch s {
	case PlayerStatusActive, PlayerStatusWithdrawn, PlayerStatusBye, PlayerStatusInactive:
		return true
	}
	return false
}

// Pairable reports whether the player may appear in pairings at all.
// Withdrawn and inactive players are excluded entirely; a player with
// status "bye" stays on the roster but sits out with a bye each round.
func (s PlayerStatus) Pairable() bool {
	return s == PlayerStatusActive || s == PlayerStatusBye
}

// Color is the side a player had in a game.
type Color string

const (
	ColorWhite Color = "W"
	ColorBlack Color = "B"
)

func (c Color) Other() Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

// Player is a tournament roster entry. Players are never deleted
// mid-tournament; removal happens through a soft status change only.
type Player struct {
	ID           int          `json:"id" db:"id"`
	TournamentID int          `json:"tournament_id" db:"tournament_id"`
	Name         string       `json:"name" db:"name"`
	UscfID       *string      `json:"uscf_id,omitempty" db:"uscf_id"`
	FideID       *string      `json:"fide_id,omitempty" db:"fide_id"`
	Rating       *int         `json:"rating,omitempty" db:"rating"` // nil = unrated
	Section      string       `json:"section" db:"section"`
	Status       PlayerStatus `json:"status" db:"status"`
	ByeRounds    []int        `json:"bye_rounds,omitempty" db:"bye_rounds"` // requested bye round numbers
	TeamID       *int         `json:"team_id,omitempty" db:"team_id"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

func (p *Player) Unrated() bool {
	return p.Rating == nil
}

// RatingValue returns the numeric rating, with 0 standing in for unrated.
func (p *Player) RatingValue() int {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// RequestedBye reports whether the player asked for a bye in the given round.
func (p *Player) RequestedBye(round int) bool {
	for _, r := range p.ByeRounds {
		if r == round {
			return true
		}
	}
	return false
}
