package pairing

import "github.com/castlegate/pairing-engine/models"

// colorState is one player's color situation going into a round.
type colorState struct {
	player    *models.Player
	balance   int // white=+1 / black=-1 running sum, byes excluded
	lastWhite int // round of most recent white game, 0 if none
}

// colorRule decides which of two paired players takes white. The three
// profiles are pure strategies selected per section.
type colorRule interface {
	whiteOf(a, b *colorState) *models.Player
}

// ColorAssigner answers the color query for candidate pairs using the
// section's rule profile.
type ColorAssigner struct {
	rule   colorRule
	scores map[int]*models.PlayerScore
}

func NewColorAssigner(cfg models.SectionConfig, scores map[int]*models.PlayerScore) *ColorAssigner {
	var rule colorRule
	switch cfg.ColorProfile {
	case models.ColorProfileFide:
		rule = fideColorRule{}
	case models.ColorProfileUSCF:
		rule = uscfColorRule{limit: cfg.USCFColorLimit}
	default:
		rule = simpleColorRule{}
	}
	return &ColorAssigner{rule: rule, scores: scores}
}

func (a *ColorAssigner) state(p *models.Player) *colorState {
	s := scoreOf(a.scores, p.ID)
	return &colorState{player: p, balance: s.ColorBalance, lastWhite: s.LastWhiteRound()}
}

// Assign returns the white and black players for a board.
func (a *ColorAssigner) Assign(x, y *models.Player) (white, black *models.Player) {
	sx, sy := a.state(x), a.state(y)
	if a.rule.whiteOf(sx, sy) == x {
		return x, y
	}
	return y, x
}

// equalize picks the assignment that minimizes the sum of absolute
// post-assignment balances; ties go to the player who has gone longer
// without white, then to the lower player id.
func equalize(a, b *colorState) *models.Player {
	aWhite := abs(a.balance+1) + abs(b.balance-1)
	bWhite := abs(b.balance+1) + abs(a.balance-1)
	if aWhite != bWhite {
		if aWhite < bWhite {
			return a.player
		}
		return b.player
	}
	if a.lastWhite != b.lastWhite {
		if a.lastWhite < b.lastWhite {
			return a.player
		}
		return b.player
	}
	if a.player.ID < b.player.ID {
		return a.player
	}
	return b.player
}

// simpleColorRule equalizes only, with no rating awareness.
type simpleColorRule struct{}

func (simpleColorRule) whiteOf(a, b *colorState) *models.Player {
	return equalize(a, b)
}

// fideColorRule corrects aggressively: a balance at or beyond 2 always gets
// the equalizing color unless the opponent is imbalanced even further the
// same way.
type fideColorRule struct{}

func (fideColorRule) whiteOf(a, b *colorState) *models.Player {
	if a.balance <= -2 && a.balance < b.balance {
		return a.player
	}
	if b.balance <= -2 && b.balance < a.balance {
		return b.player
	}
	if a.balance >= 2 && a.balance > b.balance {
		return b.player
	}
	if b.balance >= 2 && b.balance > a.balance {
		return a.player
	}
	return equalize(a, b)
}

// uscfColorRule is rating-aware: when both players are due the same color,
// the higher-rated player's due color prevails, but only if the rating gap
// reaches the configured correction limit.
type uscfColorRule struct {
	limit int
}

func (r uscfColorRule) whiteOf(a, b *colorState) *models.Player {
	aDue := dueColor(a)
	bDue := dueColor(b)
	if aDue != "" && aDue == bDue && abs(a.player.RatingValue()-b.player.RatingValue()) >= r.limit {
		higher, lower := a, b
		if b.player.RatingValue() > a.player.RatingValue() {
			higher, lower = b, a
		}
		if dueColor(higher) == models.ColorWhite {
			return higher.player
		}
		return lower.player
	}
	return equalize(a, b)
}

func dueColor(s *colorState) models.Color {
	if s.balance < 0 {
		return models.ColorWhite
	}
	if s.balance > 0 {
		return models.ColorBlack
	}
	return ""
}
