// Package environment outlines the interfaces and sturcts needed to implement
// concrete environments
package environment

import (
	"github.com/samuelfneumann/mbrl/timestep"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() int
}

// Task implements the reward scheme for taking actions in some environment
type Task interface {
	// GetReward returns the reward for taking action in state and
	// ending up in next
	GetReward(state, action, next int) float64

	// AtGoal returns whether state is a terminal goal state
	AtGoal(state int) bool
}

// Ender determines when episodes should end. If an episode should end,
// End modifies the argument TimeStep so that its StepType is
// timestep.Last.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Environment implements a simulated environment with discrete states
// and actions. An Environment is owned by a single goroutine.
type Environment interface {
	// Reset starts a new episode and returns its first TimeStep
	Reset() (timestep.TimeStep, error)

	// Step takes action in the environment and returns the resulting
	// TimeStep and whether the episode has ended
	Step(action int) (timestep.TimeStep, bool, error)

	NumStates() int
	NumActions() int
}

// Factory creates independent instances of an Environment. Each call
// returns a new Environment which shares no state with any other.
type Factory func(seed uint64) (Environment, error)
