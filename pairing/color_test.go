package pairing

import (
	"context"
	"testing"

	"github.com/castlegate/pairing-engine/models"
	"github.com/stretchr/testify/require"
)

func scoreWith(id, balance, lastWhite int) *models.PlayerScore {
	s := &models.PlayerScore{PlayerID: id, ColorBalance: balance}
	if lastWhite > 0 {
		s.Games = append(s.Games, models.GameRecord{Round: lastWhite, OpponentID: 99, Color: models.ColorWhite})
	}
	return s
}

func TestEqualizePrefersNegativeBalance(t *testing.T) {
	cfg := models.DefaultSectionConfig()
	cfg.ColorProfile = models.ColorProfileSimple

	scores := map[int]*models.PlayerScore{
		1: scoreWith(1, 1, 1),  // had more whites
		2: scoreWith(2, -1, 0), // had more blacks
	}
	assigner := NewColorAssigner(cfg, scores)
	white, black := assigner.Assign(player(1, 1800), player(2, 1700))
	require.Equal(t, 2, white.ID)
	require.Equal(t, 1, black.ID)
}

func TestEqualizeTieGoesToLongestWithoutWhite(t *testing.T) {
	cfg := models.DefaultSectionConfig()
	cfg.ColorProfile = models.ColorProfileSimple

	scores := map[int]*models.PlayerScore{
		1: scoreWith(1, 0, 3),
		2: scoreWith(2, 0, 1),
	}
	assigner := NewColorAssigner(cfg, scores)
	white, _ := assigner.Assign(player(1, 1800), player(2, 1700))
	require.Equal(t, 2, white.ID)
}

func TestFideRuleForcesCorrectionAtTwo(t *testing.T) {
	cfg := models.DefaultSectionConfig() // fide profile

	scores := map[int]*models.PlayerScore{
		1: scoreWith(1, 2, 2), // two whites ahead: must get black
		2: scoreWith(2, 1, 1),
	}
	assigner := NewColorAssigner(cfg, scores)
	white, black := assigner.Assign(player(1, 1800), player(2, 1700))
	require.Equal(t, 2, white.ID)
	require.Equal(t, 1, black.ID)

	// Mirror case: -2 must get white.
	scores = map[int]*models.PlayerScore{
		1: scoreWith(1, -2, 0),
		2: scoreWith(2, -1, 0),
	}
	assigner = NewColorAssigner(cfg, scores)
	white, _ = assigner.Assign(player(2, 1700), player(1, 1800))
	require.Equal(t, 1, white.ID)
}

func TestUSCFRuleHigherRatedDueColorPrevails(t *testing.T) {
	cfg := models.DefaultSectionConfig()
	cfg.ColorProfile = models.ColorProfileUSCF
	cfg.USCFColorLimit = 80

	// Both players are due white; the gap exceeds the limit, so the
	// higher-rated player's due color wins.
	scores := map[int]*models.PlayerScore{
		1: scoreWith(1, -1, 0),
		2: scoreWith(2, -1, 0),
	}
	assigner := NewColorAssigner(cfg, scores)
	white, _ := assigner.Assign(player(1, 1900), player(2, 1500))
	require.Equal(t, 1, white.ID)
}

func TestUSCFRuleSmallGapFallsBackToEqualize(t *testing.T) {
	cfg := models.DefaultSectionConfig()
	cfg.ColorProfile = models.ColorProfileUSCF
	cfg.USCFColorLimit = 80

	scores := map[int]*models.PlayerScore{
		1: scoreWith(1, -1, 2),
		2: scoreWith(2, -1, 1),
	}
	// Gap below the limit: equalize decides, and the balance tie goes to the
	// player who has gone longer without white.
	assigner := NewColorAssigner(cfg, scores)
	white, _ := assigner.Assign(player(1, 1550), player(2, 1500))
	require.Equal(t, 2, white.ID)
}

func TestSwissColorBalanceStaysBounded(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1500), player(4, 1200),
	}
	cfg := models.DefaultSectionConfig()
	cfg.Rounds = 6
	s := &SwissStrategy{}

	var prior []*models.Pairing
	for round := 1; round <= 6; round++ {
		out, err := s.GenerateRound(context.Background(), params(round, players, prior, cfg))
		require.NoError(t, err)
		for _, p := range out {
			if !p.IsBye() {
				applyResult(p, models.ResultDraw)
			}
		}
		prior = append(prior, out...)
	}

	scores := make(map[int]int)
	for _, p := range prior {
		if p.IsBye() || !p.Completed() {
			continue
		}
		scores[*p.WhiteID]++
		scores[*p.BlackID]--
	}
	for id, balance := range scores {
		require.LessOrEqual(t, balance, 2, "player %d over-white", id)
		require.GreaterOrEqual(t, balance, -2, "player %d over-black", id)
	}
}
