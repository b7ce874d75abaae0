package model

import (
	"github.com/samuelfneumann/mbrl/agent/tabular"
)

// Predecessors is a reverse adjacency index: for each successor state
// it records the (state, action) pairs that were observed to lead into
// it. The index only grows.
type Predecessors struct {
	states  int
	actions int

	// preds[s'] lists predecessors of s' in the order they were first
	// observed
	preds [][]tabular.Pair

	// seen[(s*actions+a)*states+s'] marks pairs already in preds[s']
	seen []bool
}

// NewPredecessors returns an empty predecessor index
func NewPredecessors(states, actions int) (*Predecessors, error) {
	if states < 1 || actions < 1 {
		return nil, tabular.InvalidArgument("newPredecessors", "states "+
			"and actions must be > 0, have %d and %d", states, actions)
	}

	return &Predecessors{
		states:  states,
		actions: actions,
		preds:   make([][]tabular.Pair, states),
		seen:    make([]bool, states*actions*states),
	}, nil
}

// Add records that (state, action) was observed to lead to next
func (p *Predecessors) Add(state, action, next int) error {
	if err := tabular.CheckPair("add", state, action, p.states,
		p.actions); err != nil {
		return err
	}
	if err := tabular.CheckState("add", next, p.states); err != nil {
		return err
	}

	idx := (state*p.actions+action)*p.states + next
	if p.seen[idx] {
		return nil
	}
	p.seen[idx] = true
	p.preds[next] = append(p.preds[next], tabular.Pair{State: state,
		Action: action})

	return nil
}

// Of returns the predecessors of state. The returned slice must not be
// modified.
func (p *Predecessors) Of(state int) ([]tabular.Pair, error) {
	if err := tabular.CheckState("of", state, p.states); err != nil {
		return nil, err
	}
	return p.preds[state], nil
}

// Len returns the number of (state, action, successor) links recorded
func (p *Predecessors) Len() int {
	n := 0
	for _, pairs := range p.preds {
		n += len(pairs)
	}
	return n
}
