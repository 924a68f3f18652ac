package communication

import (
	"context"

	"rps/experiments/metrics"
	"rps/game"
)

type StateResponse struct {
	Tick  uint64            `json:"tick"`
	State *game.GlobalState `json:"state"`
}

type PlanRequest struct {
	Agent game.AgentID `json:"agent"`
	Depth *int         `json:"depth,omitempty"` // Server default when absent
}

type PlanResponse struct {
	Tick   uint64               `json:"tick"`
	Agent  game.AgentID         `json:"agent"`
	Action *game.Action         `json:"action,omitempty"` // Nil when the agent idles
	Metric metrics.SearchMetric `json:"metric"`
}

// Communicator is an interface that abstracts the communication mechanism.
type Communicator interface {
	GetGameState(ctx context.Context) (StateResponse, error)
	Plan(ctx context.Context, req PlanRequest) (PlanResponse, error)
}
