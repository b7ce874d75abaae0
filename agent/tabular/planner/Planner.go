// Package planner implements planners, which perform simulated
// Q-learning updates using transitions sampled from a learned model.
//
// Two planners are provided. UniformReplay implements Dyna-Q style
// planning, replaying previously observed state action pairs uniformly
// at random. PrioritizedSweep implements prioritized sweeping, which
// replays the pairs whose values are expected to change the most and
// propagates priority backward to the predecessors of each updated
// state.
package planner

import (
	"github.com/samuelfneumann/mbrl/agent/tabular"
	"github.com/samuelfneumann/mbrl/agent/tabular/model"
	"github.com/samuelfneumann/mbrl/agent/tabular/qtable"
	"github.com/samuelfneumann/mbrl/timestep"
)

// Planner performs planning updates on a QTable shared with a learner
type Planner interface {
	// Observe is called after every real update. The target is the
	// bootstrapped target of the real update and previous the value of
	// Q(s, a) before that update.
	Observe(t timestep.Transition, target, previous float64) error

	// Plan performs at most updates simulated updates and returns the
	// number of updates performed. Running out of pairs to plan from
	// ends planning early and is not an error.
	Plan(updates int) (int, error)
}

// Params are the hyperparameters of a simulated Q-learning update
type Params struct {
	LearningRate float64
	Gamma        float64
}

// simulatedUpdate samples a successor of pair from m and moves Q(pair)
// toward r̂ + γ max_a Q(s', a). The returned bool is false if the model
// has no data for pair, in which case nothing was updated.
func simulatedUpdate(m *model.Model, q *qtable.QTable, pair tabular.Pair,
	params Params) (bool, error) {
	next, reward, err := m.SampleSuccessor(pair.State, pair.Action)
	if model.IsNoData(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	maxNext, err := q.Max(next)
	if err != nil {
		return false, err
	}

	target := reward + params.Gamma*maxNext
	_, err = q.BellmanUpdate(pair.State, pair.Action, target,
		params.LearningRate)
	if err != nil {
		return false, err
	}
	return true, nil
}

func checkBudget(op string, updates int) error {
	if updates < 0 {
		return tabular.InvalidArgument(op, "planning updates must be "+
			">= 0, have %d", updates)
	}
	return nil
}
