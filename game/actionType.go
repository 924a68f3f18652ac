package game

// ActionKind is the closed set of things an agent can do.
type ActionKind int

const (
	MoveAction ActionKind = iota
	ConvertAction
)

func (k ActionKind) String() string {
	switch k {
	case MoveAction:
		return "move"
	case ConvertAction:
		return "convert"
	default:
		return "unknown"
	}
}

// Task weights, an idle task weighs 1
const (
	MoveWeight    = 5.0
	ConvertWeight = 1.0
)
