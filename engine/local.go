package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rps/experiments/metrics"
	"rps/game"
	"rps/gamemaster"
	"rps/searcher"
	"rps/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Engine struct {
	State *game.GlobalState

	domain    *game.Domain
	policy    agent.Agent
	overrides map[game.AgentID]agent.Agent
	master    *gamemaster.GameMaster
	maxTicks  int
	workers   int
	stepDelay time.Duration
	hooks     []Hook
	tick      uint64
}

type decision struct {
	action game.Action
	idle   bool
	metric metrics.SearchMetric
}

// New runs every agent of state with policy unless overridden.
func New(domain *game.Domain, policy agent.Agent, state *game.GlobalState, options ...Option) *Engine {
	if state == nil || len(state.Agents) == 0 {
		panic("need at least one agent")
	}
	if policy == nil {
		panic("need a policy")
	}

	e := &Engine{ // Default values
		State:     state,
		domain:    domain,
		policy:    policy,
		overrides: make(map[game.AgentID]agent.Agent),
		master:    gamemaster.NewGameMaster(0),
		maxTicks:  DefaultMaxTicks,
		workers:   DefaultWorkers,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes ticks until one type remains or the tick limit is reached.
func (e *Engine) Run(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		Contestants: len(e.State.Agents),
		StartTime:   time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("starting game with %d contestants", len(e.State.Agents))

	winner := ""
	for e.tick < uint64(e.maxTicks) {
		if t, over := e.master.CheckGameOver(e.State); over {
			winner = t.String()
			break
		}

		moves, conversions, err := e.Step(ctx)
		if err != nil {
			return "", gameMetric, moveMetrics, err
		}
		moveMetrics = append(moveMetrics, moves...)
		gameMetric.Conversions += conversions

		if err := e.wait(ctx); err != nil {
			return "", gameMetric, moveMetrics, err
		}
	}
	if winner == "" {
		if t, over := e.master.CheckGameOver(e.State); over {
			winner = t.String()
		} else {
			log.Info().Msgf("stopped after %d ticks without a winner", e.tick)
		}
	}

	gameMetric.Winner = winner
	gameMetric.TotalTicks = int(e.tick)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	return winner, gameMetric, moveMetrics, nil
}

// Step plays one tick. Every agent plans concurrently against the same
// snapshot, then the chosen actions are applied to the authoritative state
// once each, in increasing agent order.
func (e *Engine) Step(ctx context.Context) ([]metrics.MoveMetric, int, error) {
	tick := e.tick
	snapshot := e.State.Clone()
	ids := snapshot.IDs()
	decisions := make([]decision, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, id := range ids {
		g.Go(func() error {
			started := time.Now()
			action, metric, err := e.agentFor(id).FindAction(gctx, snapshot, tick, id)
			planDuration.Observe(time.Since(started).Seconds())

			switch {
			case errors.Is(err, searcher.ErrNoCandidateActions):
				plansTotal.WithLabelValues("idle").Inc()
				decisions[i] = decision{idle: true, metric: metric}
			case err != nil:
				plansTotal.WithLabelValues("error").Inc()
				return fmt.Errorf("failed to plan for agent %d at tick %d: %w", id, tick, err)
			default:
				plansTotal.WithLabelValues("chosen").Inc()
				decisions[i] = decision{action: action, metric: metric}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	moves := make([]metrics.MoveMetric, 0, len(ids))
	conversions := 0
	for i, id := range ids {
		d := decisions[i]
		move := metrics.MoveMetric{Tick: tick, Agent: uint32(id), SearchMetric: d.metric}
		if d.idle {
			log.Debug().Msgf("agent %d idles at tick %d", id, tick)
			moves = append(moves, move)
			continue
		}

		converted, err := e.domain.Resolve(e.State, d.action, id)
		if err != nil {
			return nil, conversions, fmt.Errorf("failed to apply %s for agent %d at tick %d: %w", d.action, id, tick, err)
		}
		if converted != nil {
			conversions++
			log.Debug().Msgf("agent %d converted agent %d at tick %d", id, converted.Target, tick)
		}
		move.Action = d.action.String()
		moves = append(moves, move)
	}

	ticksTotal.Inc()
	conversionsTotal.Add(float64(conversions))
	counts := e.State.Counts()
	for _, t := range game.AgentTypes {
		agentsByType.WithLabelValues(t.String()).Set(float64(counts[t]))
	}
	for _, hook := range e.hooks {
		hook(tick, e.State)
	}
	e.tick++
	return moves, conversions, nil
}

// Tick is the next tick to be played.
func (e *Engine) Tick() uint64 {
	return e.tick
}

func (e *Engine) agentFor(id game.AgentID) agent.Agent {
	if a, ok := e.overrides[id]; ok {
		return a
	}
	return e.policy
}

func (e *Engine) wait(ctx context.Context) error {
	if e.stepDelay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(e.stepDelay):
		return nil
	}
}
