// Package dyna implements the Dyna-Q algorithm.
//
// Dyna-Q learns a tabular model of the environment from real
// experience. After each real Q-learning update, a number of planning
// updates are performed, each on a state action pair chosen uniformly
// at random from the pairs observed so far with a successor and reward
// sampled from the model. With no planning updates, Dyna-Q is
// Q-learning.
package dyna

import (
	"github.com/samuelfneumann/mbrl/agent/tabular/model"
	"github.com/samuelfneumann/mbrl/agent/tabular/modelbased"
	"github.com/samuelfneumann/mbrl/agent/tabular/planner"
	"github.com/samuelfneumann/mbrl/agent/tabular/qtable"
)

// New creates a new Dyna-Q agent
func New(states, actions int, c Config, seed uint64,
	opts ...modelbased.Option) (*modelbased.Agent, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return modelbased.New(states, actions, c.LearningRate, c.Gamma,
		newPlanner, seed, opts...)
}

func newPlanner(m *model.Model, q *qtable.QTable, params planner.Params,
	seed uint64) (planner.Planner, error) {
	return planner.NewUniformReplay(m, q, params, seed)
}
