package models

import (
	"time"

	"github.com/google/uuid"
)

// Result кодирует результат партии, соответствует ENUM в БД.
type Result string

const (
	ResultWhiteWins    Result = "1-0"
	ResultBlackWins    Result = "0-1"
	ResultDraw         Result = "1/2-1/2"
	ResultWhiteForfeit Result = "1-0F"
	ResultBlackForfeit Result = "0-1F"
	ResultDrawForfeit  Result = "1/2-1/2F"
	ResultBye          Result = "BYE"
)

func (r Result) Valid() bool {
	switch r {
	case ResultWhiteWins, ResultBlackWins, ResultDraw,
		ResultWhiteForfeit, ResultBlackForfeit, ResultDrawForfeit, ResultBye:
		return true
	}
	return false
}

// Forfeited reports which side defaulted. Forfeit codes award the same
// points as their played counterpart; only the defaulting side is flagged
// for rating reports. A drawn forfeit counts against both players.
func (r Result) Forfeited() (white, black bool) {
	switch r {
	case ResultWhiteForfeit:
		return false, true
	case ResultBlackForfeit:
		return true, false
	case ResultDrawForfeit:
		return true, true
	}
	return false, false
}

// GamePoints returns the points awarded to white and black. Bye results are
// scored by the ledger using the section's bye configuration, not here.
func (r Result) GamePoints() (white, black Points) {
	switch r {
	case ResultWhiteWins, ResultWhiteForfeit:
		return FullPoint, NoPoints
	case ResultBlackWins, ResultBlackForfeit:
		return NoPoints, FullPoint
	case ResultDraw, ResultDrawForfeit:
		return HalfPoint, HalfPoint
	}
	return NoPoints, NoPoints
}

// Pairing is one board within a round of a section. A bye pairing has a
// white player and no black player.
type Pairing struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Section      string    `json:"section" db:"section"`
	Round        int       `json:"round" db:"round"`
	Board        int       `json:"board" db:"board"`
	WhiteID      *int      `json:"white_id,omitempty" db:"white_id"`
	BlackID      *int      `json:"black_id,omitempty" db:"black_id"`
	Result       *Result   `json:"result,omitempty" db:"result"` // nil = pending

	// Derived pairing metadata, recorded at generation time.
	RatingDiff   int     `json:"rating_diff" db:"rating_diff"`
	PrevMeetings int     `json:"prev_meetings" db:"prev_meetings"`
	WhiteBalance int     `json:"white_balance" db:"white_balance"`
	BlackBalance int     `json:"black_balance" db:"black_balance"`
	Quality      float64 `json:"quality" db:"quality"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (p *Pairing) IsBye() bool {
	return p.WhiteID == nil || p.BlackID == nil
}

// ByePlayerID returns the single player of a bye pairing.
func (p *Pairing) ByePlayerID() (int, bool) {
	if p.WhiteID != nil && p.BlackID == nil {
		return *p.WhiteID, true
	}
	if p.BlackID != nil && p.WhiteID == nil {
		return *p.BlackID, true
	}
	return 0, false
}

func (p *Pairing) HasPlayer(playerID int) bool {
	if p.WhiteID != nil && *p.WhiteID == playerID {
		return true
	}
	if p.BlackID != nil && *p.BlackID == playerID {
		return true
	}
	return false
}

// PlayerIDs returns the non-nil players of the pairing.
func (p *Pairing) PlayerIDs() []int {
	ids := make([]int, 0, 2)
	if p.WhiteID != nil {
		ids = append(ids, *p.WhiteID)
	}
	if p.BlackID != nil {
		ids = append(ids, *p.BlackID)
	}
	return ids
}

func (p *Pairing) Completed() bool {
	return p.Result != nil
}

// WinnerID returns the advancing player for elimination play. Byes advance
// the bye recipient; draws and drawn forfeits have no winner.
func (p *Pairing) WinnerID() (int, bool) {
	if id, ok := p.ByePlayerID(); ok {
		return id, true
	}
	if p.Result == nil {
		return 0, false
	}
	switch *p.Result {
	case ResultWhiteWins, ResultWhiteForfeit:
		return *p.WhiteID, true
	case ResultBlackWins, ResultBlackForfeit:
		return *p.BlackID, true
	}
	return 0, false
}
