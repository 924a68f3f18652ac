package game

import (
	"golang.org/x/exp/slices"
)

// AgentState is everything that can change about an agent.
type AgentState struct {
	Type        AgentType `json:"type"`
	Location    Coord     `json:"location"`
	Conversions int       `json:"conversions"`
}

// GlobalState is the authoritative world. The planner only ever reads it;
// the engine writes to it once per tick through ApplyDiff.
type GlobalState struct {
	Map    Map                    `json:"map"`
	Agents map[AgentID]AgentState `json:"agents"`
}

func NewGlobalState(m Map) *GlobalState {
	return &GlobalState{
		Map:    m,
		Agents: make(map[AgentID]AgentState),
	}
}

// Clone performs a deep copy of the state.
func (s *GlobalState) Clone() *GlobalState {
	out := NewGlobalState(s.Map)
	for id, agent := range s.Agents {
		out.Agents[id] = agent
	}
	return out
}

// IDs returns the agent ids in increasing order.
func (s *GlobalState) IDs() []AgentID {
	ids := make([]AgentID, 0, len(s.Agents))
	for id := range s.Agents {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Counts tallies agents per type.
func (s *GlobalState) Counts() map[AgentType]int {
	counts := make(map[AgentType]int, len(AgentTypes))
	for _, agent := range s.Agents {
		counts[agent.Type]++
	}
	return counts
}

// ApplyDiff writes every override of diff into the state.
func ApplyDiff(s *GlobalState, diff *Diff) {
	for id, agent := range diff.agents {
		s.Agents[id] = agent
	}
}

// Winner reports the surviving type once every agent shares it.
func Winner(s *GlobalState) (AgentType, bool) {
	counts := s.Counts()
	for _, t := range AgentTypes {
		if len(s.Agents) > 0 && counts[t] == len(s.Agents) {
			return t, true
		}
	}
	return Rock, false
}
