package agent

import (
	"context"

	"rps/experiments/metrics"
	"rps/game"
	"rps/searcher"
)

type plannerAgent struct {
	domain  *game.Domain
	options []searcher.Option
}

// NewPlannerAgent returns an agent that runs a fresh lookahead planner for
// every decision. It is safe for concurrent use.
func NewPlannerAgent(domain *game.Domain, options ...searcher.Option) Agent {
	return plannerAgent{domain: domain, options: options}
}

func (a plannerAgent) FindAction(ctx context.Context, state *game.GlobalState, tick uint64, id game.AgentID) (game.Action, metrics.SearchMetric, error) {
	p, err := searcher.New(a.domain, id, state, tick, a.options...)
	if err != nil {
		return game.Action{}, metrics.SearchMetric{}, err
	}
	if err := p.Run(ctx); err != nil {
		return game.Action{}, p.Metric(), err
	}
	action, err := p.Best()
	return action, p.Metric(), err
}
