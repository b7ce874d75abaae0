// Package policy implements policies over tabular action values
package policy

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mbrl/agent/tabular"
	"github.com/samuelfneumann/mbrl/agent/tabular/qtable"
	"github.com/samuelfneumann/mbrl/utils/floatutils"
)

// EGreedy implements an ε-greedy policy over a QTable. Greedy actions
// are chosen uniformly at random among all actions attaining the
// maximum action value, so ties never default to the lowest index.
type EGreedy struct {
	q   *qtable.QTable
	rng *rand.Rand
}

// NewEGreedy returns a new EGreedy policy which reads action values
// from q. The policy and the learner should share the same QTable so
// that updates are immediately reflected in the actions chosen.
func NewEGreedy(q *qtable.QTable, seed uint64) *EGreedy {
	return &EGreedy{
		q:   q,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Select selects an action in state. With probability epsilon, an
// action is chosen uniformly at random, otherwise a greedy action is
// chosen.
func (p *EGreedy) Select(state int, epsilon float64) (int, error) {
	if epsilon < 0 || epsilon > 1 {
		return 0, tabular.InvalidArgument("select", "epsilon must be in "+
			"[0, 1], have %v", epsilon)
	}

	values, err := p.q.Row(state)
	if err != nil {
		return 0, err
	}

	if epsilon > 0 && p.rng.Float64() < epsilon {
		return p.rng.Intn(len(values)), nil
	}

	_, greedy := floatutils.MaxSlice(values)
	if len(greedy) == 1 {
		return greedy[0], nil
	}
	return greedy[p.rng.Intn(len(greedy))], nil
}
