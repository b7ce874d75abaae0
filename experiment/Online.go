package experiment

import (
	"context"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mbrl/agent"
	env "github.com/samuelfneumann/mbrl/environment"
	"github.com/samuelfneumann/mbrl/experiment/trackers"
	ts "github.com/samuelfneumann/mbrl/timestep"
)

// Online is an experiment that trains an agent online for a fixed
// number of timesteps. Every EvalInterval timesteps the greedy policy
// of the agent is evaluated on a freshly created environment.
type Online struct {
	env.Environment
	agent.Agent
	evalEnv  env.Factory
	settings Settings
	planning int
	seeds    *rand.Rand

	curve    *trackers.LearningCurve
	trackers []trackers.Tracker
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent, performing planning planning updates
// per real step. Evaluation environments are created with evalEnv and
// seeded from seed. The t parameter is a slice of trackers.Tracker
// which determine what data of the training environment is tracked.
func NewOnline(e env.Environment, a agent.Agent, evalEnv env.Factory,
	s Settings, planning int, seed uint64, t ...trackers.Tracker) *Online {
	return &Online{
		Environment: e,
		Agent:       a,
		evalEnv:     evalEnv,
		settings:    s,
		planning:    planning,
		seeds:       rand.New(rand.NewSource(seed)),
		curve:       trackers.NewLearningCurve(""),
		trackers:    t,
	}
}

// Register registers a trackers.Tracker with the experiment so that
// data generated during the experiment can be tracked and saved
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// Run runs the experiment for all timesteps. The context is checked
// before each evaluation.
func (o *Online) Run(ctx context.Context) error {
	step, err := o.Environment.Reset()
	if err != nil {
		return err
	}
	if err := o.track(step); err != nil {
		return err
	}

	for t := 0; t < o.settings.Timesteps; t++ {
		action, err := o.Agent.SelectAction(step.State, o.settings.Epsilon)
		if err != nil {
			return err
		}

		next, done, err := o.Environment.Step(action)
		if err != nil {
			return err
		}
		if err := o.track(next); err != nil {
			return err
		}

		transition := ts.NewTransition(step, action, next)
		if err := o.Agent.Update(transition, o.planning); err != nil {
			return err
		}

		if t%o.settings.EvalInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := o.evaluate(t); err != nil {
				return err
			}
		}

		if done {
			step, err = o.Environment.Reset()
			if err != nil {
				return err
			}
			if err := o.track(step); err != nil {
				return err
			}
		} else {
			step = next
		}
	}

	return nil
}

// Curve returns the evaluations performed so far
func (o *Online) Curve() *trackers.LearningCurve {
	return o.curve
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, tracker := range o.trackers {
		if err := tracker.Save(); err != nil {
			return err
		}
	}
	return nil
}

func (o *Online) evaluate(t int) error {
	evalEnv, err := o.evalEnv(o.seeds.Uint64())
	if err != nil {
		return fmt.Errorf("evaluate: could not create environment: %w", err)
	}

	ret, err := o.Agent.Evaluate(evalEnv, o.settings.EvalEpisodes,
		o.settings.MaxEpisodeLength)
	if err != nil {
		return err
	}
	o.curve.Record(t, ret)
	return nil
}

// track tracks the current timestep by caching its data in each Tracker
func (o *Online) track(step ts.TimeStep) error {
	for _, tracker := range o.trackers {
		if err := tracker.Track(step); err != nil {
			return err
		}
	}
	return nil
}
