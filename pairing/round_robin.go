package pairing

import (
	"context"

	"github.com/castlegate/pairing-engine/models"
	"github.com/castlegate/pairing-engine/scoring"
)

// RoundRobinStrategy pairs every player against every other player exactly
// once using the circle method. The whole schedule is a fixed function of
// the seed order; GenerateRound returns the slice for the requested round.
type RoundRobinStrategy struct{}

func (g *RoundRobinStrategy) Name() string {
	return "RoundRobin"
}

func (g *RoundRobinStrategy) GenerateRound(ctx context.Context, params GenerateRoundParams) ([]*models.Pairing, error) {
	pool := pairablePlayers(params.Players)
	if len(pool) < 2 {
		return nil, ErrInsufficientPlayers
	}
	sortSeeds(pool)

	scores := scoring.ThroughRound(params.Prior, params.Round-1, params.Config.Bye)

	seats := len(pool)
	if seats%2 == 1 {
		seats++ // synthetic bye slot completes the circle
	}
	totalRounds := seats - 1
	if params.Round > totalRounds {
		return nil, ErrRoundOutOfRange
	}

	out := make([]*models.Pairing, 0, seats/2)
	for _, board := range circleRound(seats, params.Round) {
		a, b := board[0], board[1]
		if a >= len(pool) {
			out = append(out, newByePairing(params, pool[b]))
			continue
		}
		if b >= len(pool) {
			out = append(out, newByePairing(params, pool[a]))
			continue
		}
		out = append(out, newGamePairing(params, pool[a], pool[b], scores))
	}
	assignBoards(out)
	return out, nil
}

// circleRound returns the seat index pairs (white first) for one round of
// the circle method: seat 0 stays fixed while the rest rotate each round.
func circleRound(seats, round int) [][2]int {
	arr := make([]int, seats)
	arr[0] = 0
	// Rotate seats 1..seats-1 forward by round-1 positions.
	for i := 1; i < seats; i++ {
		arr[i] = (i-1+round-1)%(seats-1) + 1
	}

	boards := make([][2]int, 0, seats/2)
	for i := 0; i < seats/2; i++ {
		a, b := arr[i], arr[seats-1-i]
		// Alternate orientation so colors even out across the schedule.
		if (round+i)%2 == 0 {
			a, b = b, a
		}
		boards = append(boards, [2]int{a, b})
	}
	return boards
}
