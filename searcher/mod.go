package searcher

import (
	"errors"
	"fmt"
)

// AgentID identifies one agent in a simulation. Domains that want to be
// planned over by this package key their agents with it.
type AgentID uint32

// Baseline is the neutral utility an opponent's no-op is worth. An opponent
// only moves when one of its actions is strictly better than this.
const Baseline = 0.0

var (
	// ErrNoCandidateActions is returned by Best and Plan when the root agent
	// had no valid action at construction. It is not fatal: callers should
	// fall back to idling.
	ErrNoCandidateActions = errors.New("no candidate actions for root agent")

	// ErrMissingAgentState is wrapped by domains when a query names an agent
	// that exists neither in the snapshot nor in the diff.
	ErrMissingAgentState = errors.New("missing agent state")
)

// Diff is an overlay of changes relative to a snapshot. Clone must return a
// copy that shares nothing mutable with the receiver.
type Diff[D any] interface {
	Clone() D
}

// Domain is everything the planner needs to know about a game. S is the
// read-only snapshot, D the overlay written by Apply and A the action type.
// All methods must be pure given their inputs.
type Domain[S any, D Diff[D], A interface{ String() string }] interface {
	// NewDiff returns an empty overlay.
	NewDiff() D
	// Actions lists the actions available to agent, possibly none.
	Actions(tick uint64, state S, diff D, agent AgentID) ([]A, error)
	// Apply writes the effect of action into diff. When chained is true, next
	// is a follow-up action for the same agent that must be applied right
	// after.
	Apply(action A, tick uint64, state S, diff D, agent AgentID) (next A, chained bool, err error)
	// Value scores agent's standing.
	Value(tick uint64, state S, diff D, agent AgentID) (float64, error)
	// VisibleAgents lists the agents that agent reacts to, excluding itself,
	// in a deterministic order.
	VisibleAgents(tick uint64, state S, diff D, agent AgentID) ([]AgentID, error)
}

// OpponentMode selects how visible opponents are folded into a frontier
// node's diff before the root agent expands it.
type OpponentMode int

const (
	// Sequential lets each opponent react to the moves of the opponents
	// processed before it at the same step.
	Sequential OpponentMode = iota
	// Simultaneous lets every opponent choose against the frontier node's
	// diff; the choices are applied afterwards in visibility order.
	Simultaneous
)

func (m OpponentMode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Simultaneous:
		return "simultaneous"
	default:
		return "unknown"
	}
}

// ParseOpponentMode is the inverse of OpponentMode.String.
func ParseOpponentMode(s string) (OpponentMode, error) {
	switch s {
	case "", "sequential":
		return Sequential, nil
	case "simultaneous":
		return Simultaneous, nil
	default:
		return Sequential, fmt.Errorf("unknown opponent mode %q", s)
	}
}
