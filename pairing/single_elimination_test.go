package pairing

import (
	"context"
	"testing"

	"github.com/castlegate/pairing-engine/models"
	"github.com/stretchr/testify/require"
)

func seConfig() models.SectionConfig {
	cfg := models.DefaultSectionConfig()
	cfg.System = models.SystemSingleElimination
	return cfg
}

func TestSingleEliminationRoundOneByesForTopSeeds(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1800),
		player(4, 1700), player(5, 1600), player(6, 1500),
	}
	s := &SingleEliminationStrategy{}
	out, err := s.GenerateRound(context.Background(), params(1, players, nil, seConfig()))
	require.NoError(t, err)

	// Six players in an eight slot bracket: two byes for the top seeds.
	var byes []int
	for _, p := range out {
		if id, ok := p.ByePlayerID(); ok {
			byes = append(byes, id)
		}
	}
	require.ElementsMatch(t, []int{1, 2}, byes)
	boardOf(t, out, 3, 6)
	boardOf(t, out, 4, 5)
}

func TestSingleEliminationOnlyWinnersAdvance(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1800), player(4, 1700),
	}
	s := &SingleEliminationStrategy{}
	r1, err := s.GenerateRound(context.Background(), params(1, players, nil, seConfig()))
	require.NoError(t, err)

	// Seeds fold 1v4 and 2v3; the favorites win.
	p14 := boardOf(t, r1, 1, 4)
	p23 := boardOf(t, r1, 2, 3)
	winnerOf := func(p *models.Pairing, id int) {
		if *p.WhiteID == id {
			applyResult(p, models.ResultWhiteWins)
		} else {
			applyResult(p, models.ResultBlackWins)
		}
	}
	winnerOf(p14, 1)
	winnerOf(p23, 2)

	r2, err := s.GenerateRound(context.Background(), params(2, players, r1, seConfig()))
	require.NoError(t, err)
	require.Len(t, r2, 1)
	boardOf(t, r2, 1, 2)
}

func TestSingleEliminationRequiresCompleteRound(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1800), player(4, 1700),
	}
	s := &SingleEliminationStrategy{}
	r1, err := s.GenerateRound(context.Background(), params(1, players, nil, seConfig()))
	require.NoError(t, err)
	applyResult(r1[0], models.ResultWhiteWins) // second board stays pending

	_, err = s.GenerateRound(context.Background(), params(2, players, r1, seConfig()))
	require.ErrorIs(t, err, ErrRoundIncomplete)
}

func TestSingleEliminationDrawAdvancesHigherRating(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1800), player(4, 1700),
	}
	s := &SingleEliminationStrategy{}
	r1, err := s.GenerateRound(context.Background(), params(1, players, nil, seConfig()))
	require.NoError(t, err)
	applyResult(boardOf(t, r1, 1, 4), models.ResultDraw)
	applyResult(boardOf(t, r1, 2, 3), models.ResultBlackWins)

	r2, err := s.GenerateRound(context.Background(), params(2, players, r1, seConfig()))
	require.NoError(t, err)
	require.Len(t, r2, 1)
	// The drawn board sends the higher-rated player 1 forward; board two's
	// black winner was player 3.
	boardOf(t, r2, 1, 3)
}

func TestSingleEliminationEndsWithChampion(t *testing.T) {
	players := []*models.Player{player(1, 2000), player(2, 1900)}
	s := &SingleEliminationStrategy{}
	r1, err := s.GenerateRound(context.Background(), params(1, players, nil, seConfig()))
	require.NoError(t, err)
	applyResult(r1[0], models.ResultWhiteWins)

	_, err = s.GenerateRound(context.Background(), params(2, players, r1, seConfig()))
	require.ErrorIs(t, err, ErrRoundOutOfRange)
}
