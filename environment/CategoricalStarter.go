package environment

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter returns starting states sampled from a categorical
// distribution over a set of states
type CategoricalStarter struct {
	states []int
	rand   distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter which samples
// states[i] with probability proportional to weights[i]. If weights is
// nil, each state is equally likely.
func NewCategoricalStarter(states []int, weights []float64,
	seed uint64) (*CategoricalStarter, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("newCategoricalStarter: no start states")
	}

	if weights == nil {
		weights = make([]float64, len(states))
		for i := range weights {
			weights[i] = 1.0 / float64(len(weights))
		}
	} else if len(weights) != len(states) {
		return nil, fmt.Errorf("newCategoricalStarter: have %d weights "+
			"for %d states", len(weights), len(states))
	}

	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("newCategoricalStarter: weight %d "+
				"is negative (%v)", i, w)
		}
	}

	source := rand.NewSource(seed)
	starts := make([]int, len(states))
	copy(starts, states)

	return &CategoricalStarter{
		states: starts,
		rand:   distuv.NewCategorical(weights, source),
	}, nil
}

// Start returns a starting state
func (c *CategoricalStarter) Start() int {
	return c.states[int(c.rand.Rand())]
}

// SingleStart is a Starter which always starts in the same state
type SingleStart int

// Start returns the starting state
func (s SingleStart) Start() int {
	return int(s)
}
