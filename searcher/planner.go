package searcher

import (
	"context"
	"fmt"
	"math"
	"time"

	"rps/experiments/metrics"

	"github.com/rs/zerolog/log"
)

type Option func(c *config)

type config struct {
	depth     int
	duration  time.Duration
	opponents OpponentMode
	metrics   metrics.Collector
}

// WithDepth sets the number of lookahead levels expanded by Run. Depth 0
// plans on the immediate children of the root only.
func WithDepth(depth int) Option {
	return func(c *config) {
		if depth >= 0 {
			c.depth = depth
		}
	}
}

// WithDuration bounds Run by a soft wall-clock budget, checked between
// levels.
func WithDuration(duration time.Duration) Option {
	return func(c *config) {
		if duration > 0 {
			c.duration = duration
		}
	}
}

func WithOpponentMode(mode OpponentMode) Option {
	return func(c *config) {
		c.opponents = mode
	}
}

func WithMetrics() Option {
	return func(c *config) {
		c.metrics = metrics.NewCollector()
	}
}

// Planner searches the actions of one root agent over a fixed snapshot. It
// is built for a single planning request and discarded afterwards.
//
// The root agent's actions are enumerated exhaustively at every level while
// each visible opponent plays its single-step greedy reply. Every first move
// of the root agent is a branch, and each branch is scored by the best
// utility observed anywhere below it.
type Planner[S any, D Diff[D], A interface{ String() string }] struct {
	domain    Domain[S, D, A]
	rootAgent AgentID
	state     S
	startTick uint64
	config    config
	started   time.Time

	tree       *tree[D]
	candidates []A
	scores     []float64
	frontier   []int
	levels     int
	truncated  bool
}

type choice[A any] struct {
	agent  AgentID
	action A
}

// New builds the root node and one child per candidate action of rootAgent.
func New[S any, D Diff[D], A interface{ String() string }](domain Domain[S, D, A], rootAgent AgentID, state S, startTick uint64, options ...Option) (*Planner[S, D, A], error) {
	p := &Planner[S, D, A]{ // Default values
		domain:    domain,
		rootAgent: rootAgent,
		state:     state,
		startTick: startTick,
		config: config{
			depth:     DefaultDepth,
			duration:  DefaultDuration,
			opponents: Sequential,
			metrics:   metrics.NewDummyCollector(),
		},
		started: time.Now(),
		tree:    newTree[D](16),
	}
	for _, option := range options {
		option(&p.config)
	}
	p.config.metrics.Start(p.config.depth, p.config.opponents.String())

	root := p.tree.create(domain.NewDiff(), Baseline, NoParent, NoBranch)
	empty := p.tree.diff(root)

	candidates, err := domain.Actions(startTick, state, empty, rootAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate actions of agent %d: %w", rootAgent, err)
	}

	edges := make([]Edge, 0, len(candidates))
	p.scores = make([]float64, len(candidates))
	for branch, action := range candidates {
		diff := empty.Clone()
		if err := p.execute(action, startTick, diff, rootAgent); err != nil {
			return nil, err
		}
		score, err := domain.Value(startTick, state, diff, rootAgent)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate agent %d: %w", rootAgent, err)
		}

		child := p.tree.create(diff, score, root, branch)
		edges = append(edges, Edge{Tag: action.String(), Child: child})
		// The branch node is the first state observed in its branch
		p.scores[branch] = score
		p.frontier = append(p.frontier, child)
	}
	p.tree.attachChildren(root, edges)
	p.candidates = candidates

	p.config.metrics.SetBranches(len(candidates))
	p.config.metrics.AddNodes(p.tree.len())
	return p, nil
}

// Run expands the frontier level by level until the configured depth. When the
// time budget runs out or ctx is done between two levels, Run stops and
// keeps the scores of the deepest completed level.
func (p *Planner[S, D, A]) Run(ctx context.Context) error {
	for level := p.levels + 1; level <= p.config.depth; level++ {
		if p.exhausted(ctx) {
			p.truncated = true
			p.config.metrics.SetTruncated(true)
			log.Debug().Msgf("planning for agent %d stopped after %d of %d levels", p.rootAgent, p.levels, p.config.depth)
			return nil
		}

		tick := p.startTick + uint64(level)
		next := make([]int, 0, len(p.frontier)*max(1, len(p.candidates)))
		for _, index := range p.frontier {
			children, err := p.expand(index, tick)
			if err != nil {
				return fmt.Errorf("failed to expand node %d at level %d: %w", index, level, err)
			}
			next = append(next, children...)
		}

		p.config.metrics.AddNodes(len(next))
		p.config.metrics.AddLevel()
		p.frontier = next
		p.levels = level
	}
	return nil
}

func (p *Planner[S, D, A]) exhausted(ctx context.Context) bool {
	if ctx != nil && ctx.Err() != nil {
		return true
	}
	return p.config.duration > 0 && time.Since(p.started) >= p.config.duration
}

// expand folds the visible opponents into the diff of the node at index, then
// adds one child per action of the root agent. It returns the new indices.
func (p *Planner[S, D, A]) expand(index int, tick uint64) ([]int, error) {
	diff, err := p.foldOpponents(tick, p.tree.diff(index))
	if err != nil {
		return nil, err
	}

	actions, err := p.domain.Actions(tick, p.state, diff, p.rootAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate actions of agent %d: %w", p.rootAgent, err)
	}
	if len(actions) == 0 {
		return nil, nil
	}

	origin := p.tree.origin(index)
	edges := make([]Edge, 0, len(actions))
	indices := make([]int, 0, len(actions))
	best := math.Inf(-1)
	for _, action := range actions {
		child := diff.Clone()
		if err := p.execute(action, tick, child, p.rootAgent); err != nil {
			return nil, err
		}
		score, err := p.domain.Value(tick, p.state, child, p.rootAgent)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate agent %d: %w", p.rootAgent, err)
		}

		i := p.tree.create(child, score, index, origin)
		edges = append(edges, Edge{Tag: action.String(), Child: i})
		indices = append(indices, i)
		best = math.Max(best, score)
	}
	p.tree.attachChildren(index, edges)

	if best > p.scores[origin] {
		p.scores[origin] = best
	}
	return indices, nil
}

// foldOpponents returns base with the greedy reply of every visible opponent
// applied. base itself is never written to.
func (p *Planner[S, D, A]) foldOpponents(tick uint64, base D) (D, error) {
	visible, err := p.domain.VisibleAgents(tick, p.state, base, p.rootAgent)
	if err != nil {
		return base, fmt.Errorf("failed to list agents visible to %d: %w", p.rootAgent, err)
	}

	switch p.config.opponents {
	case Simultaneous:
		chosen := make([]choice[A], 0, len(visible))
		for _, agent := range visible {
			action, _, ok, err := p.greedyReply(tick, base, agent)
			if err != nil {
				return base, err
			}
			if ok {
				chosen = append(chosen, choice[A]{agent: agent, action: action})
			}
		}
		if len(chosen) == 0 {
			return base, nil
		}

		working := base.Clone()
		for _, c := range chosen {
			if err := p.execute(c.action, tick, working, c.agent); err != nil {
				return base, err
			}
		}
		return working, nil

	default:
		working := base
		for _, agent := range visible {
			_, diff, ok, err := p.greedyReply(tick, working, agent)
			if err != nil {
				return base, err
			}
			if ok {
				working = diff
			}
		}
		return working, nil
	}
}

// greedyReply finds the action of agent with the strictly greatest utility
// above Baseline. The first enumerated action wins ties. ok is false when no
// action beats Baseline, in which case the agent does nothing.
func (p *Planner[S, D, A]) greedyReply(tick uint64, diff D, agent AgentID) (best A, bestDiff D, ok bool, err error) {
	actions, err := p.domain.Actions(tick, p.state, diff, agent)
	if err != nil {
		return best, bestDiff, false, fmt.Errorf("failed to enumerate actions of agent %d: %w", agent, err)
	}

	bestValue := Baseline
	for _, action := range actions {
		candidate := diff.Clone()
		if err := p.execute(action, tick, candidate, agent); err != nil {
			return best, bestDiff, false, err
		}
		value, err := p.domain.Value(tick, p.state, candidate, agent)
		if err != nil {
			return best, bestDiff, false, fmt.Errorf("failed to evaluate agent %d: %w", agent, err)
		}
		if value > bestValue {
			best, bestDiff, bestValue, ok = action, candidate, value, true
		}
	}
	return best, bestDiff, ok, nil
}

// execute applies action and at most one chained follow-up.
func (p *Planner[S, D, A]) execute(action A, tick uint64, diff D, agent AgentID) error {
	next, chained, err := p.domain.Apply(action, tick, p.state, diff, agent)
	if err != nil {
		return fmt.Errorf("failed to apply %s for agent %d: %w", action, agent, err)
	}
	if !chained {
		return nil
	}
	if _, _, err := p.domain.Apply(next, tick, p.state, diff, agent); err != nil {
		return fmt.Errorf("failed to apply %s for agent %d: %w", next, agent, err)
	}
	return nil
}

// Branches is the number of candidate actions of the root agent.
func (p *Planner[S, D, A]) Branches() int {
	return len(p.candidates)
}

// Candidates returns the root agent's candidate actions in branch order.
func (p *Planner[S, D, A]) Candidates() []A {
	return append([]A(nil), p.candidates...)
}

// Scores returns a copy of the per-branch best utilities.
func (p *Planner[S, D, A]) Scores() []float64 {
	return append([]float64(nil), p.scores...)
}

// Levels is the deepest fully expanded level.
func (p *Planner[S, D, A]) Levels() int {
	return p.levels
}

func (p *Planner[S, D, A]) Nodes() int {
	return p.tree.len()
}

// Truncated reports whether Run stopped before the configured depth.
func (p *Planner[S, D, A]) Truncated() bool {
	return p.truncated
}

func (p *Planner[S, D, A]) Metric() metrics.SearchMetric {
	return p.config.metrics.Complete()
}
