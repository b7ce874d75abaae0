// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single timestep in an environment. The
// State is the index of the (discrete) environment state the TimeStep
// is in.
type TimeStep struct {
	StepType
	Reward float64
	State  int
	Number int
}

// New returns a new TimeStep
func New(t StepType, r float64, state, n int) TimeStep {
	return TimeStep{t, r, state, n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  State: %v  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.State, t.Number)
}

// Transition is a single real (s, a, r, s') observation, together with
// whether s' is terminal.
type Transition struct {
	State     int
	Action    int
	Reward    float64
	NextState int
	Done      bool
}

// NewTransition constructs the Transition that taking action in step
// led to, as observed by next.
func NewTransition(step TimeStep, action int, next TimeStep) Transition {
	return Transition{
		State:     step.State,
		Action:    action,
		Reward:    next.Reward,
		NextState: next.State,
		Done:      next.Last(),
	}
}

func (t Transition) String() string {
	return fmt.Sprintf("Transition | (%d, %d) --[%.2f]--> %d  |  Done: %v",
		t.State, t.Action, t.Reward, t.NextState, t.Done)
}
