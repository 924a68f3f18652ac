package game

import "fmt"

// IsValid reports whether agent may take a in v. Moves must stay on the map;
// conversions are only ever produced by a move and are always valid.
func (a Action) IsValid(v View, agent AgentID) (bool, error) {
	switch a.Kind {
	case MoveAction:
		state, err := v.Agent(agent)
		if err != nil {
			return false, err
		}
		return !v.State.Map.OutOfBounds(state.Location.Step(a.Direction)), nil
	case ConvertAction:
		return true, nil
	default:
		return false, nil
	}
}

// Execute writes the effect of a into v's diff. A move that lands on prey
// returns the conversion of that prey as a chained action.
func (a Action) Execute(v View, agent AgentID) (next Action, chained bool, err error) {
	switch a.Kind {
	case MoveAction:
		var target Coord
		err := v.Update(agent, func(s *AgentState) {
			target = s.Location.Step(a.Direction)
			s.Location = target
		})
		if err != nil {
			return Action{}, false, err
		}
		prey, ok, err := v.PreyAt(target, agent)
		if err != nil || !ok {
			return Action{}, false, err
		}
		return Convert(prey), true, nil

	case ConvertAction:
		hunter, err := v.Agent(agent)
		if err != nil {
			return Action{}, false, err
		}
		err = v.Update(a.Target, func(s *AgentState) {
			s.Type = hunter.Type
			s.Conversions = -1 // Incentive to not get converted
		})
		if err != nil {
			return Action{}, false, err
		}
		return Action{}, false, v.Update(agent, func(s *AgentState) {
			s.Conversions++
		})

	default:
		return Action{}, false, fmt.Errorf("unknown action kind %d", a.Kind)
	}
}

// ValidMoves lists the moves of agent that stay on the map, in canonical
// direction order.
func ValidMoves(v View, agent AgentID) ([]Action, error) {
	moves := make([]Action, 0, len(Directions))
	for _, d := range Directions {
		move := Move(d)
		ok, err := move.IsValid(v, agent)
		if err != nil {
			return nil, err
		}
		if ok {
			moves = append(moves, move)
		}
	}
	return moves, nil
}
