package game

// DistanceWeight scales the positional part of an agent's value.
const DistanceWeight = 3.0

// Value scores agent's standing: each conversion is worth as much as the
// longest distance on the map, on top of the weighted closeness to the center.
func Value(v View, agent AgentID) (float64, error) {
	state, err := v.Agent(agent)
	if err != nil {
		return 0, err
	}
	m := v.State.Map
	conversions := float64(state.Conversions) * m.LongestDist()
	distance := DistanceWeight * m.DistancePoints(state.Location)
	return conversions + distance, nil
}

// Visible lists the agents strictly closer than distance to agent, by
// Manhattan distance, in increasing id order. agent itself is excluded.
func Visible(v View, agent AgentID, distance int) ([]AgentID, error) {
	self, err := v.Agent(agent)
	if err != nil {
		return nil, err
	}
	var visible []AgentID
	for _, id := range v.IDs() {
		if id == agent {
			continue
		}
		other, err := v.Agent(id)
		if err != nil {
			return nil, err
		}
		if other.Location.Manhattan(self.Location) < distance {
			visible = append(visible, id)
		}
	}
	return visible, nil
}
