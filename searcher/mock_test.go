package searcher

import (
	"fmt"
	"time"
)

// mockAction adds self to the acting agent's counter and hit to the counter of
// other. A chaining action yields a bonus that chains again, so tests can
// check that only one follow-up is ever applied.
type mockAction struct {
	name  string
	self  int
	other AgentID
	hit   int
	chain bool
}

func (a mockAction) String() string {
	return a.name
}

type mockDiff struct {
	counters map[AgentID]int
}

func newMockDiff() *mockDiff {
	return &mockDiff{counters: map[AgentID]int{}}
}

func (d *mockDiff) Clone() *mockDiff {
	c := newMockDiff()
	for id, v := range d.counters {
		c.counters[id] = v
	}
	return c
}

type mockState struct {
	counters map[AgentID]int
}

func newMockState(ids ...AgentID) mockState {
	s := mockState{counters: map[AgentID]int{}}
	for _, id := range ids {
		s.counters[id] = 0
	}
	return s
}

type counterFn func(AgentID) int

type mockDomain struct {
	actions func(agent AgentID, counter counterFn) []mockAction
	visible map[AgentID][]AgentID
	value   func(agent AgentID, counter counterFn) float64
	delay   time.Duration
}

func (m *mockDomain) counter(state mockState, diff *mockDiff) counterFn {
	return func(id AgentID) int {
		if v, ok := diff.counters[id]; ok {
			return v
		}
		return state.counters[id]
	}
}

func (m *mockDomain) check(state mockState, agent AgentID) error {
	if _, ok := state.counters[agent]; !ok {
		return fmt.Errorf("agent %d: %w", agent, ErrMissingAgentState)
	}
	return nil
}

func (m *mockDomain) NewDiff() *mockDiff {
	return newMockDiff()
}

func (m *mockDomain) Actions(tick uint64, state mockState, diff *mockDiff, agent AgentID) ([]mockAction, error) {
	if err := m.check(state, agent); err != nil {
		return nil, err
	}
	if m.actions == nil {
		return nil, nil
	}
	return m.actions(agent, m.counter(state, diff)), nil
}

func (m *mockDomain) Apply(action mockAction, tick uint64, state mockState, diff *mockDiff, agent AgentID) (mockAction, bool, error) {
	if err := m.check(state, agent); err != nil {
		return mockAction{}, false, err
	}
	get := m.counter(state, diff)
	diff.counters[agent] = get(agent) + action.self
	if action.other != 0 {
		diff.counters[action.other] = get(action.other) + action.hit
	}
	if action.chain {
		return mockAction{name: "bonus", self: 10, chain: true}, true, nil
	}
	return mockAction{}, false, nil
}

func (m *mockDomain) Value(tick uint64, state mockState, diff *mockDiff, agent AgentID) (float64, error) {
	if err := m.check(state, agent); err != nil {
		return 0, err
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	get := m.counter(state, diff)
	if m.value != nil {
		return m.value(agent, get), nil
	}
	return float64(get(agent)), nil
}

func (m *mockDomain) VisibleAgents(tick uint64, state mockState, diff *mockDiff, agent AgentID) ([]AgentID, error) {
	if err := m.check(state, agent); err != nil {
		return nil, err
	}
	return m.visible[agent], nil
}

func fixed(actions ...mockAction) func(AgentID, counterFn) []mockAction {
	return func(AgentID, counterFn) []mockAction {
		return actions
	}
}
