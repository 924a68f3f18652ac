package agent

import (
	"context"

	"rps/experiments/metrics"
	"rps/game"
	"rps/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	seed uint64
}

// NewRandomAgent returns a baseline agent that moves uniformly at random. The
// choice only depends on seed, tick and agent, so concurrent calls stay
// reproducible.
func NewRandomAgent(seed uint64) Agent {
	return randomAgent{seed: seed}
}

func (a randomAgent) FindAction(_ context.Context, state *game.GlobalState, tick uint64, id game.AgentID) (game.Action, metrics.SearchMetric, error) {
	moves, err := game.ValidMoves(game.View{State: state, Diff: game.NewDiff()}, id)
	if err != nil {
		return game.Action{}, metrics.SearchMetric{}, err
	}
	if len(moves) == 0 {
		return game.Action{}, metrics.SearchMetric{}, searcher.ErrNoCandidateActions
	}
	rng := rand.New(rand.NewSource(a.seed ^ tick<<32 ^ uint64(id)))
	return moves[rng.Intn(len(moves))], metrics.SearchMetric{Branches: len(moves)}, nil
}
