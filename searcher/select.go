package searcher

import "context"

// Best returns the candidate action of the branch with the strictly greatest
// score. Ties go to the lowest branch index.
func (p *Planner[S, D, A]) Best() (A, error) {
	var zero A
	if len(p.candidates) == 0 {
		return zero, ErrNoCandidateActions
	}

	bestIndex := 0
	for i, score := range p.scores[1:] {
		if score > p.scores[bestIndex] {
			bestIndex = i + 1
		}
	}
	return p.candidates[bestIndex], nil
}

// Plan builds a planner for rootAgent, runs it and returns the chosen action.
// It returns ErrNoCandidateActions when rootAgent cannot act at all.
func Plan[S any, D Diff[D], A interface{ String() string }](ctx context.Context, domain Domain[S, D, A], rootAgent AgentID, state S, startTick uint64, options ...Option) (A, error) {
	var zero A
	p, err := New(domain, rootAgent, state, startTick, options...)
	if err != nil {
		return zero, err
	}
	if err := p.Run(ctx); err != nil {
		return zero, err
	}
	return p.Best()
}
