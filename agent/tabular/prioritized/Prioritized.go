// Package prioritized implements the prioritized sweeping algorithm.
//
// Prioritized sweeping learns a tabular model of the environment and an
// index of the predecessors of each state. Planning updates are
// performed on the state action pairs whose values are expected to
// change the most, and each planning update propagates priority
// backward to the predecessors of the updated state.
package prioritized

import (
	"github.com/samuelfneumann/mbrl/agent/tabular/model"
	"github.com/samuelfneumann/mbrl/agent/tabular/modelbased"
	"github.com/samuelfneumann/mbrl/agent/tabular/planner"
	"github.com/samuelfneumann/mbrl/agent/tabular/qtable"
)

// New creates a new prioritized sweeping agent
func New(states, actions int, c Config, seed uint64,
	opts ...modelbased.Option) (*modelbased.Agent, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	newPlanner := func(m *model.Model, q *qtable.QTable,
		params planner.Params, _ uint64) (planner.Planner, error) {
		return planner.NewPrioritizedSweep(m, q, params, c.PriorityCutoff)
	}

	return modelbased.New(states, actions, c.LearningRate, c.Gamma,
		newPlanner, seed, opts...)
}
