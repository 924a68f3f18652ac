package agent

import (
	"context"

	"rps/experiments/metrics"
	"rps/game"
)

type Agent interface {
	// FindAction returns the action of agent id for this tick and the metrics
	// of the search (if collected). It returns searcher.ErrNoCandidateActions
	// when the agent cannot act.
	FindAction(ctx context.Context, state *game.GlobalState, tick uint64, id game.AgentID) (game.Action, metrics.SearchMetric, error)
}
