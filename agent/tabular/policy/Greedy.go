package policy

import "github.com/samuelfneumann/mbrl/agent/tabular/qtable"

// Greedy is a deterministic greedy policy. Ties are broken toward the
// lowest action index, so it should only be used for evaluation and
// never as a learning policy.
type Greedy struct {
	q *qtable.QTable
}

// NewGreedy creates a new Greedy policy
func NewGreedy(q *qtable.QTable) *Greedy {
	return &Greedy{q}
}

// Select returns the greedy action in state
func (g *Greedy) Select(state int) (int, error) {
	return g.q.Argmax(state)
}
