package pairing

import (
	"context"
	"testing"

	"github.com/castlegate/pairing-engine/models"
	"github.com/stretchr/testify/require"
)

func accelConfig(typ models.AccelerationType, rounds int) models.SectionConfig {
	cfg := models.DefaultSectionConfig()
	cfg.Acceleration = models.AccelerationConfig{
		Enabled:  true,
		Type:     typ,
		Rounds:   rounds,
		Fraction: models.HalfPoint,
	}
	return cfg
}

func TestRankingScoresWithoutAcceleration(t *testing.T) {
	players := []*models.Player{player(1, 2000), player(2, 1900)}
	scores := map[int]*models.PlayerScore{
		1: {PlayerID: 1, Points: 3}, // 1.5
	}
	out := rankingScores(players, scores, models.DefaultSectionConfig(), 2)
	require.Equal(t, 18, out[1]) // 1.5 points in twelfths
	require.Equal(t, 0, out[2])
}

func TestStandardAccelerationBoostsTopHalf(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1500), player(4, 1200),
	}
	out := rankingScores(players, nil, accelConfig(models.AccelerationStandard, 2), 1)

	// Top half by seed gets one virtual point (12 twelfths).
	require.Equal(t, 12, out[1])
	require.Equal(t, 12, out[2])
	require.Equal(t, 0, out[3])
	require.Equal(t, 0, out[4])
}

func TestAccelerationStopsAfterConfiguredRounds(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1500), player(4, 1200),
	}
	out := rankingScores(players, nil, accelConfig(models.AccelerationStandard, 2), 3)
	for _, p := range players {
		require.Equal(t, 0, out[p.ID])
	}
}

func TestAccelerationRespectsThreshold(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1500), player(4, 1200),
	}
	cfg := accelConfig(models.AccelerationStandard, 2)
	cfg.Acceleration.Threshold = 10
	out := rankingScores(players, nil, cfg, 1)
	for _, p := range players {
		require.Equal(t, 0, out[p.ID])
	}
}

func TestAddedScoreAccelerationUsesFraction(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1500), player(4, 1200),
	}
	out := rankingScores(players, nil, accelConfig(models.AccelerationAddedScore, 2), 1)
	require.Equal(t, 6, out[1]) // half a point
	require.Equal(t, 0, out[3])
}

func TestSixthsAccelerationGradesTheField(t *testing.T) {
	players := make([]*models.Player, 0, 12)
	for i := 1; i <= 12; i++ {
		players = append(players, player(i, 2400-i*100))
	}
	out := rankingScores(players, nil, accelConfig(models.AccelerationSixths, 2), 1)

	// Twelve players split into sixths of two; the top pair gets 5/6 of a
	// point (10 twelfths), stepping down to zero for the bottom pair.
	require.Equal(t, 10, out[1])
	require.Equal(t, 10, out[2])
	require.Equal(t, 8, out[3])
	require.Equal(t, 2, out[10])
	require.Equal(t, 0, out[11])
	require.Equal(t, 0, out[12])
}

func TestAcceleratedSwissSplitsTopHalf(t *testing.T) {
	players := []*models.Player{
		player(1, 2000), player(2, 1900), player(3, 1500), player(4, 1200),
	}
	cfg := accelConfig(models.AccelerationStandard, 1)

	s := &SwissStrategy{}
	out, err := s.GenerateRound(context.Background(), params(1, players, nil, cfg))
	require.NoError(t, err)

	// With the top half boosted, round one pairs 1v2 and 3v4 instead of the
	// plain cross-fold.
	boardOf(t, out, 1, 2)
	boardOf(t, out, 3, 4)
}
