package pairing

import (
	"context"
	"testing"

	"github.com/castlegate/pairing-engine/models"
	"github.com/stretchr/testify/require"
)

func quadConfig() models.SectionConfig {
	cfg := models.DefaultSectionConfig()
	cfg.System = models.SystemQuad
	return cfg
}

func TestQuadGroupsByRating(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1800), player(4, 1700),
		player(5, 1600), player(6, 1500), player(7, 1400), player(8, 1300),
	}
	s := &QuadStrategy{}
	out, err := s.GenerateRound(context.Background(), params(1, players, nil, quadConfig()))
	require.NoError(t, err)
	require.Len(t, out, 4)

	// Quad one: 1v4 and 2v3; quad two: 5v8 and 6v7.
	boardOf(t, out, 1, 4)
	boardOf(t, out, 2, 3)
	boardOf(t, out, 5, 8)
	boardOf(t, out, 6, 7)
}

func TestQuadThreeRoundsCoverAllPairs(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1800), player(4, 1700),
	}
	s := &QuadStrategy{}

	seen := make(map[[2]int]int)
	var prior []*models.Pairing
	for round := 1; round <= 3; round++ {
		out, err := s.GenerateRound(context.Background(), params(round, players, prior, quadConfig()))
		require.NoError(t, err)
		require.Len(t, out, 2)
		for _, p := range out {
			key := [2]int{*p.WhiteID, *p.BlackID}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			seen[key]++
			applyResult(p, models.ResultDraw)
		}
		prior = append(prior, out...)
	}
	require.Len(t, seen, 6)
}

func TestQuadRejectsFourthRound(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1800), player(4, 1700),
	}
	s := &QuadStrategy{}
	_, err := s.GenerateRound(context.Background(), params(4, players, nil, quadConfig()))
	require.ErrorIs(t, err, ErrRoundOutOfRange)
}

func TestQuadRemainderGroupPlaysItsOwnSchedule(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1800), player(4, 1700),
		player(5, 1600), player(6, 1500),
	}
	s := &QuadStrategy{}
	out, err := s.GenerateRound(context.Background(), params(1, players, nil, quadConfig()))
	require.NoError(t, err)

	// Four-player quad plays two boards; the two leftovers meet each other.
	require.Len(t, out, 3)
	boardOf(t, out, 5, 6)

	// By round two the pair has exhausted its schedule and sits out.
	r2, err := s.GenerateRound(context.Background(), params(2, players, nil, quadConfig()))
	require.NoError(t, err)
	byes := 0
	for _, p := range r2 {
		if _, ok := p.ByePlayerID(); ok {
			byes++
		}
	}
	require.Equal(t, 2, byes)
}
