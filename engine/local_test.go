package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"rps/experiments/metrics"
	"rps/game"
	"rps/searcher"
	"rps/searcher/agent"

	"github.com/stretchr/testify/require"
)

// scripted plays a fixed action per agent and idles everyone else.
type scripted struct {
	actions map[game.AgentID]game.Action
	err     error
	calls   atomic.Int32
}

func (s *scripted) FindAction(_ context.Context, _ *game.GlobalState, _ uint64, id game.AgentID) (game.Action, metrics.SearchMetric, error) {
	s.calls.Add(1)
	if s.err != nil {
		return game.Action{}, metrics.SearchMetric{}, s.err
	}
	action, ok := s.actions[id]
	if !ok {
		return game.Action{}, metrics.SearchMetric{}, searcher.ErrNoCandidateActions
	}
	return action, metrics.SearchMetric{Branches: 1}, nil
}

func twoAgents() *game.GlobalState {
	state := game.NewGlobalState(game.NewMap(5, 5))
	state.Agents[1] = game.AgentState{Type: game.Rock, Location: game.Coord{X: 2, Y: 2}}
	state.Agents[2] = game.AgentState{Type: game.Scissors, Location: game.Coord{X: 2, Y: 1}}
	return state
}

func TestNew(t *testing.T) {
	t.Run("empty state", func(t *testing.T) {
		require.Panics(t, func() {
			New(game.NewDomain(0), &scripted{}, game.NewGlobalState(game.NewMap(3, 3)))
		})
	})

	t.Run("missing policy", func(t *testing.T) {
		require.Panics(t, func() { New(game.NewDomain(0), nil, twoAgents()) })
	})
}

func TestStep(t *testing.T) {
	t.Run("applies each decision once in agent order", func(t *testing.T) {
		policy := &scripted{actions: map[game.AgentID]game.Action{
			1: game.Move(game.Up),
			2: game.Move(game.Left),
		}}
		e := New(game.NewDomain(0), policy, twoAgents())

		moves, conversions, err := e.Step(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, conversions)
		require.Len(t, moves, 2)
		require.Equal(t, "move(up)", moves[0].Action)
		require.Equal(t, "move(left)", moves[1].Action)

		// Agent 1 captured agent 2 before agent 2 stepped away as a rock
		require.Equal(t, game.Coord{X: 2, Y: 1}, e.State.Agents[1].Location)
		require.Equal(t, 1, e.State.Agents[1].Conversions)
		require.Equal(t, game.Rock, e.State.Agents[2].Type)
		require.Equal(t, game.Coord{X: 1, Y: 1}, e.State.Agents[2].Location)
		require.Equal(t, uint64(1), e.Tick())
		require.Equal(t, int32(2), policy.calls.Load())
	})

	t.Run("idle agents keep their state", func(t *testing.T) {
		state := twoAgents()
		e := New(game.NewDomain(0), &scripted{}, state)
		before := state.Clone()

		moves, conversions, err := e.Step(context.Background())
		require.NoError(t, err)
		require.Zero(t, conversions)
		require.Len(t, moves, 2)
		require.Empty(t, moves[0].Action)
		require.Equal(t, before.Agents, e.State.Agents)
	})

	t.Run("overrides replace the policy", func(t *testing.T) {
		policy := &scripted{}
		override := &scripted{actions: map[game.AgentID]game.Action{2: game.Move(game.Up)}}
		e := New(game.NewDomain(0), policy, twoAgents(), WithAgent(2, override))

		_, _, err := e.Step(context.Background())
		require.NoError(t, err)
		require.Equal(t, game.Coord{X: 2, Y: 0}, e.State.Agents[2].Location)
		require.Equal(t, int32(1), policy.calls.Load())
		require.Equal(t, int32(1), override.calls.Load())
	})

	t.Run("planning errors abort the tick", func(t *testing.T) {
		boom := errors.New("boom")
		state := twoAgents()
		e := New(game.NewDomain(0), &scripted{err: boom}, state)
		before := state.Clone()

		_, _, err := e.Step(context.Background())
		require.ErrorIs(t, err, boom)
		require.Equal(t, before.Agents, e.State.Agents)
		require.Zero(t, e.Tick())
	})
}

func TestRun(t *testing.T) {
	t.Run("stops when one type remains", func(t *testing.T) {
		policy := &scripted{actions: map[game.AgentID]game.Action{1: game.Move(game.Up)}}
		ticks := 0
		e := New(game.NewDomain(0), policy, twoAgents(), WithHook(func(uint64, *game.GlobalState) { ticks++ }))

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, "rock", winner)
		require.Equal(t, "rock", gameMetric.Winner)
		require.Equal(t, 1, gameMetric.TotalTicks)
		require.Equal(t, 1, gameMetric.Conversions)
		require.Equal(t, 2, gameMetric.Contestants)
		require.Len(t, moveMetrics, 2)
		require.Equal(t, 1, ticks)
	})

	t.Run("stops at the tick limit", func(t *testing.T) {
		e := New(game.NewDomain(0), &scripted{}, twoAgents(), WithMaxTicks(3))

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Empty(t, winner)
		require.Equal(t, 3, gameMetric.TotalTicks)
		require.Len(t, moveMetrics, 6)
	})

	t.Run("a single type has already won", func(t *testing.T) {
		state := twoAgents()
		state.Agents[2] = game.AgentState{Type: game.Rock, Location: game.Coord{X: 0, Y: 0}}
		policy := &scripted{}
		e := New(game.NewDomain(0), policy, state)

		winner, gameMetric, _, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, "rock", winner)
		require.Zero(t, gameMetric.TotalTicks)
		require.Zero(t, policy.calls.Load())
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := New(game.NewDomain(0), &scripted{}, twoAgents())

		_, _, _, err := e.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("planner agents", func(t *testing.T) {
		domain := game.NewDomain(0)
		policy := agent.NewPlannerAgent(domain, searcher.WithDepth(1), searcher.WithMetrics())
		e := New(domain, policy, twoAgents(), WithWorkers(2))

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, "rock", winner)
		require.Equal(t, 1, gameMetric.Conversions)
		require.Equal(t, "move(up)", moveMetrics[0].Action)
		require.Equal(t, 1, moveMetrics[0].Depth)
		require.Equal(t, "sequential", moveMetrics[0].Opponents)
	})
}
