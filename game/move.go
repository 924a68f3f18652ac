package game

import "fmt"

// Action is a tagged variant: Direction is only meaningful for moves and
// Target only for conversions.
type Action struct {
	Kind      ActionKind `json:"kind"`
	Direction Direction  `json:"direction,omitempty"`
	Target    AgentID    `json:"target,omitempty"`
}

func Move(d Direction) Action {
	return Action{Kind: MoveAction, Direction: d}
}

func Convert(target AgentID) Action {
	return Action{Kind: ConvertAction, Target: target}
}

func (a Action) Weight() float64 {
	if a.Kind == ConvertAction {
		return ConvertWeight
	}
	return MoveWeight
}

// Duration is the number of ticks the action occupies.
func (a Action) Duration() uint64 {
	if a.Kind == ConvertAction {
		return 1
	}
	return 0
}

func (a Action) String() string {
	switch a.Kind {
	case MoveAction:
		return fmt.Sprintf("move(%s)", a.Direction)
	case ConvertAction:
		return fmt.Sprintf("convert(%d)", a.Target)
	default:
		return "unknown"
	}
}
