// Package agent defines the agent interfaces and the registry of agent
// Types used to construct agents from configuration files.
package agent

import (
	"github.com/samuelfneumann/mbrl/environment"
	"github.com/samuelfneumann/mbrl/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which updates action values from
// real experience and planning, a Policy which chooses actions in each
// state, and an Evaluator which measures the greedy policy. The Policy
// and Learner share the same action values so that any changes the
// Learner makes are reflected in the actions the Policy chooses.
type Agent interface {
	Learner
	Policy
	Evaluator
}

// Learner implements a learning algorithm that defines how action
// values are updated.
type Learner interface {
	// Update absorbs a single real transition and then performs up to
	// planningUpdates simulated updates
	Update(t timestep.Transition, planningUpdates int) error
}

// Policy represents the behaviour policy of an agent
type Policy interface {
	// SelectAction selects an action in state, exploring with
	// probability epsilon
	SelectAction(state int, epsilon float64) (int, error)
}

// Evaluator measures the mean undiscounted return of the greedy policy
// of an agent on env. An Evaluator never changes what the agent has
// learned.
type Evaluator interface {
	Evaluate(env environment.Environment, episodes, maxSteps int) (float64,
		error)
}
