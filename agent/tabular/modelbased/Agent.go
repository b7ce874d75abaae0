// Package modelbased implements tabular model-based agents which
// interleave real Q-learning updates with planning updates drawn from
// a learned model of the environment.
//
// The planning strategy is supplied by a planner.Planner, so the same
// Agent implements both Dyna-Q and prioritized sweeping. See the dyna
// and prioritized packages for constructors.
package modelbased

import (
	"io"
	"log/slog"

	"github.com/samuelfneumann/mbrl/agent/tabular"
	"github.com/samuelfneumann/mbrl/agent/tabular/model"
	"github.com/samuelfneumann/mbrl/agent/tabular/planner"
	"github.com/samuelfneumann/mbrl/agent/tabular/policy"
	"github.com/samuelfneumann/mbrl/agent/tabular/qtable"
	"github.com/samuelfneumann/mbrl/timestep"
)

// NewPlanner constructs a Planner which samples from m and updates q
type NewPlanner func(m *model.Model, q *qtable.QTable, params planner.Params,
	seed uint64) (planner.Planner, error)

// Option configures an Agent
type Option func(*Agent)

// WithLogger sets the logger an Agent reports planning to
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// Agent is a tabular model-based agent. The model, action values,
// policies, and planner are owned by a single Agent and must not be
// shared between goroutines.
type Agent struct {
	model     *model.Model
	q         *qtable.QTable
	behaviour *policy.EGreedy
	target    *policy.Greedy
	planner   planner.Planner
	params    planner.Params
	logger    *slog.Logger
}

// New creates a new Agent over states states and actions actions.
// The seed determines the model's sampled successors, the behaviour
// policy's random actions, and the planner's random choices.
func New(states, actions int, learningRate, gamma float64,
	newPlanner NewPlanner, seed uint64, opts ...Option) (*Agent, error) {
	if learningRate <= 0 || learningRate > 1 {
		return nil, tabular.InvalidArgument("new", "learning rate must "+
			"be in (0, 1], have %v", learningRate)
	}
	if gamma < 0 || gamma > 1 {
		return nil, tabular.InvalidArgument("new", "gamma must be in "+
			"[0, 1], have %v", gamma)
	}

	m, err := model.New(states, actions, seed)
	if err != nil {
		return nil, err
	}

	q, err := qtable.New(states, actions)
	if err != nil {
		return nil, err
	}

	params := planner.Params{LearningRate: learningRate, Gamma: gamma}
	p, err := newPlanner(m, q, params, seed+2)
	if err != nil {
		return nil, err
	}

	a := &Agent{
		model:     m,
		q:         q,
		behaviour: policy.NewEGreedy(q, seed+1),
		target:    policy.NewGreedy(q),
		planner:   p,
		params:    params,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// SelectAction selects an ε-greedy action in state
func (a *Agent) SelectAction(state int, epsilon float64) (int, error) {
	return a.behaviour.Select(state, epsilon)
}

// Update absorbs the real transition t into the model, performs a
// Q-learning update toward r + γ max_a Q(s', a), or toward r if t is
// terminal, and then performs up to planningUpdates planning updates.
func (a *Agent) Update(t timestep.Transition, planningUpdates int) error {
	if planningUpdates < 0 {
		return tabular.InvalidArgument("update", "planning updates must "+
			"be >= 0, have %d", planningUpdates)
	}

	if err := a.model.Observe(t.State, t.Action, t.Reward,
		t.NextState); err != nil {
		return err
	}

	target := t.Reward
	if !t.Done {
		maxNext, err := a.q.Max(t.NextState)
		if err != nil {
			return err
		}
		target += a.params.Gamma * maxNext
	}

	previous, err := a.q.BellmanUpdate(t.State, t.Action, target,
		a.params.LearningRate)
	if err != nil {
		return err
	}

	if err := a.planner.Observe(t, target, previous); err != nil {
		return err
	}

	performed, err := a.planner.Plan(planningUpdates)
	if err != nil {
		return err
	}
	a.logger.Debug("planned", "state", t.State, "action", t.Action,
		"requested", planningUpdates, "performed", performed)

	return nil
}

// QTable returns the action values of the Agent. The returned QTable
// must not be modified.
func (a *Agent) QTable() *qtable.QTable {
	return a.q
}

// Model returns the learned model of the Agent. The returned Model
// must not be modified.
func (a *Agent) Model() *model.Model {
	return a.model
}

// Planner returns the Agent's planner
func (a *Agent) Planner() planner.Planner {
	return a.planner
}

// LearningRate returns the step size of real and simulated updates
func (a *Agent) LearningRate() float64 {
	return a.params.LearningRate
}

// Gamma returns the discount factor
func (a *Agent) Gamma() float64 {
	return a.params.Gamma
}
