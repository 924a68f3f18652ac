package engine

import (
	"time"

	"rps/game"
	"rps/searcher/agent"
)

const (
	DefaultMaxTicks = 500
	DefaultWorkers  = 8
)

// Hook is called with the authoritative state after every tick.
type Hook func(tick uint64, state *game.GlobalState)

type Option func(e *Engine)

func WithMaxTicks(ticks int) Option {
	return func(e *Engine) {
		if ticks > 0 {
			e.maxTicks = ticks
		}
	}
}

// WithWorkers bounds how many agents plan at the same time.
func WithWorkers(workers int) Option {
	return func(e *Engine) {
		if workers > 0 {
			e.workers = workers
		}
	}
}

func WithStepDelay(delay time.Duration) Option {
	return func(e *Engine) {
		if delay > 0 {
			e.stepDelay = delay
		}
	}
}

func WithHook(hook Hook) Option {
	return func(e *Engine) {
		if hook != nil {
			e.hooks = append(e.hooks, hook)
		}
	}
}

// WithAgent overrides the default policy for one agent.
func WithAgent(id game.AgentID, a agent.Agent) Option {
	return func(e *Engine) {
		if a != nil {
			e.overrides[id] = a
		}
	}
}
