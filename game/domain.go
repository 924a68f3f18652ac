package game

import "rps/searcher"

// DefaultVisibility is the Manhattan distance under which agents react to
// each other.
const DefaultVisibility = 5

// Domain plugs the battle royale rules into the planner.
type Domain struct {
	Visibility int
}

var _ searcher.Domain[*GlobalState, *Diff, Action] = (*Domain)(nil)

func NewDomain(visibility int) *Domain {
	if visibility <= 0 {
		visibility = DefaultVisibility
	}
	return &Domain{Visibility: visibility}
}

func (d *Domain) NewDiff() *Diff {
	return NewDiff()
}

func (d *Domain) Actions(_ uint64, state *GlobalState, diff *Diff, agent AgentID) ([]Action, error) {
	return ValidMoves(View{State: state, Diff: diff}, agent)
}

func (d *Domain) Apply(action Action, _ uint64, state *GlobalState, diff *Diff, agent AgentID) (Action, bool, error) {
	return action.Execute(View{State: state, Diff: diff}, agent)
}

func (d *Domain) Value(_ uint64, state *GlobalState, diff *Diff, agent AgentID) (float64, error) {
	return Value(View{State: state, Diff: diff}, agent)
}

func (d *Domain) VisibleAgents(_ uint64, state *GlobalState, diff *Diff, agent AgentID) ([]AgentID, error) {
	return Visible(View{State: state, Diff: diff}, agent, d.Visibility)
}

// Resolve applies action for agent to state in place, including a chained
// conversion, and returns the conversion if one happened.
func (d *Domain) Resolve(state *GlobalState, action Action, agent AgentID) (converted *Action, err error) {
	diff := NewDiff()
	view := View{State: state, Diff: diff}
	next, chained, err := action.Execute(view, agent)
	if err != nil {
		return nil, err
	}
	if chained {
		if _, _, err := next.Execute(view, agent); err != nil {
			return nil, err
		}
		converted = &next
	}
	ApplyDiff(state, diff)
	return converted, nil
}
