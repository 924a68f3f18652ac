package game

import (
	"fmt"

	"rps/searcher"

	"golang.org/x/exp/slices"
)

// Diff overrides agent states relative to a snapshot. It holds at most one
// entry per agent.
type Diff struct {
	agents map[AgentID]AgentState
}

func NewDiff() *Diff {
	return &Diff{agents: make(map[AgentID]AgentState)}
}

func (d *Diff) Get(id AgentID) (AgentState, bool) {
	agent, ok := d.agents[id]
	return agent, ok
}

func (d *Diff) Set(id AgentID, agent AgentState) {
	d.agents[id] = agent
}

func (d *Diff) Len() int {
	return len(d.agents)
}

// IDs returns the overridden agent ids in increasing order.
func (d *Diff) IDs() []AgentID {
	ids := make([]AgentID, 0, len(d.agents))
	for id := range d.agents {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (d *Diff) Clone() *Diff {
	out := &Diff{agents: make(map[AgentID]AgentState, len(d.agents))}
	for id, agent := range d.agents {
		out.agents[id] = agent
	}
	return out
}

// View reads a snapshot through a diff.
type View struct {
	State *GlobalState
	Diff  *Diff
}

// Agent returns the diff's override of id, or the snapshot's state.
func (v View) Agent(id AgentID) (AgentState, error) {
	if agent, ok := v.Diff.Get(id); ok {
		return agent, nil
	}
	if agent, ok := v.State.Agents[id]; ok {
		return agent, nil
	}
	return AgentState{}, fmt.Errorf("agent %d: %w", id, searcher.ErrMissingAgentState)
}

// Update copies id's current state into the diff, lets fn edit it and
// stores the result.
func (v View) Update(id AgentID, fn func(agent *AgentState)) error {
	agent, err := v.Agent(id)
	if err != nil {
		return err
	}
	fn(&agent)
	v.Diff.Set(id, agent)
	return nil
}

// IDs lists every agent in increasing order. A diff never adds agents.
func (v View) IDs() []AgentID {
	return v.State.IDs()
}

// PreyAt returns the lowest id standing on location whose type hunter
// converts. hunter itself is never returned.
func (v View) PreyAt(location Coord, hunter AgentID) (AgentID, bool, error) {
	h, err := v.Agent(hunter)
	if err != nil {
		return 0, false, err
	}
	for _, id := range v.IDs() {
		if id == hunter {
			continue
		}
		agent, err := v.Agent(id)
		if err != nil {
			return 0, false, err
		}
		if agent.Location == location && agent.Type == h.Type.Prey() {
			return id, true, nil
		}
	}
	return 0, false, nil
}
