package game

// newTestState places agents on an 11x11 map with ids starting at 1.
func newTestState(height, width int, agents ...AgentState) *GlobalState {
	state := NewGlobalState(NewMap(height, width))
	for i, agent := range agents {
		state.Agents[AgentID(i+1)] = agent
	}
	return state
}

func at(t AgentType, x, y int) AgentState {
	return AgentState{Type: t, Location: Coord{X: x, Y: y}}
}
