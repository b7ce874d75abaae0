// Package model implements an online-learned tabular model of an MDP.
//
// The Model counts, for every observed (s, a, s') triple, how often the
// successor s' followed (s, a) and the sum of the rewards seen on that
// exact transition. Successors are sampled in proportion to their
// counts and the predicted reward is conditioned on the sampled
// successor: R[s, a, s'] / n[s, a, s'].
package model

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mbrl/agent/tabular"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Model implements a tabular maximum-likelihood model of transitions
// and rewards. Only real observations may be absorbed into a Model.
type Model struct {
	states  int
	actions int

	// counts[s] and rewards[s] have one row per action and one column
	// per successor state
	counts  []*mat.Dense
	rewards []*mat.Dense

	// totals(s, a) = Σ_s' n[s, a, s']
	totals *mat.Dense

	source rand.Source
}

// New returns a new, empty Model over states states and actions
// actions. The seed determines the random successors sampled from the
// Model.
func New(states, actions int, seed uint64) (*Model, error) {
	if states < 1 {
		return nil, tabular.InvalidArgument("new", "states must be > 0, "+
			"have %d", states)
	}
	if actions < 1 {
		return nil, tabular.InvalidArgument("new", "actions must be > 0, "+
			"have %d", actions)
	}

	counts := make([]*mat.Dense, states)
	rewards := make([]*mat.Dense, states)
	for s := 0; s < states; s++ {
		counts[s] = mat.NewDense(actions, states, nil)
		rewards[s] = mat.NewDense(actions, states, nil)
	}

	return &Model{
		states:  states,
		actions: actions,
		counts:  counts,
		rewards: rewards,
		totals:  mat.NewDense(states, actions, nil),
		source:  rand.NewSource(seed),
	}, nil
}

// NumStates returns the number of states the Model was built for
func (m *Model) NumStates() int {
	return m.states
}

// NumActions returns the number of actions the Model was built for
func (m *Model) NumActions() int {
	return m.actions
}

// Observe absorbs a single real transition into the model
func (m *Model) Observe(state, action int, reward float64,
	next int) error {
	if err := m.checkTriple("observe", state, action, next); err != nil {
		return err
	}

	m.counts[state].Set(action, next, m.counts[state].At(action, next)+1)
	m.rewards[state].Set(action, next, m.rewards[state].At(action, next)+
		reward)
	m.totals.Set(state, action, m.totals.At(state, action)+1)

	return nil
}

// SampleSuccessor samples a successor of (state, action) in proportion
// to the number of times it was observed, and returns it along with the
// average reward observed on the transition to that successor.
//
// If (state, action) was never observed, an error satisfying IsNoData
// is returned.
func (m *Model) SampleSuccessor(state, action int) (int, float64, error) {
	if err := tabular.CheckPair("sampleSuccessor", state, action, m.states,
		m.actions); err != nil {
		return 0, 0, err
	}
	if m.totals.At(state, action) == 0 {
		return 0, 0, &ModelError{Op: "sampleSuccessor", Err: errNoData}
	}

	dist := distuv.NewCategorical(m.counts[state].RawRowView(action),
		m.source)
	next := int(dist.Rand())

	reward, err := m.PredictedReward(state, action, next)
	if err != nil {
		return 0, 0, err
	}
	return next, reward, nil
}

// PredictedReward returns the average reward observed on the exact
// transition (state, action) -> next. If that transition was never
// observed, an error satisfying IsNoData is returned.
func (m *Model) PredictedReward(state, action, next int) (float64, error) {
	if err := m.checkTriple("predictedReward", state, action,
		next); err != nil {
		return 0, err
	}

	n := m.counts[state].At(action, next)
	if n == 0 {
		return 0, &ModelError{Op: "predictedReward", Err: errNoData}
	}
	return m.rewards[state].At(action, next) / n, nil
}

// Distribution returns the estimated probability of transitioning to
// each successor state after taking action in state.
func (m *Model) Distribution(state, action int) ([]float64, error) {
	if err := tabular.CheckPair("distribution", state, action, m.states,
		m.actions); err != nil {
		return nil, err
	}

	total := m.totals.At(state, action)
	if total == 0 {
		return nil, &ModelError{Op: "distribution", Err: errNoData}
	}

	probs := make([]float64, m.states)
	copy(probs, m.counts[state].RawRowView(action))
	floats.Scale(1/total, probs)
	return probs, nil
}

// Count returns n[state, action, next]
func (m *Model) Count(state, action, next int) float64 {
	return m.counts[state].At(action, next)
}

// RewardSum returns R[state, action, next]
func (m *Model) RewardSum(state, action, next int) float64 {
	return m.rewards[state].At(action, next)
}

// Total returns the number of times (state, action) has been observed
func (m *Model) Total(state, action int) float64 {
	return m.totals.At(state, action)
}

func (m *Model) checkTriple(op string, state, action, next int) error {
	if err := tabular.CheckPair(op, state, action, m.states,
		m.actions); err != nil {
		return err
	}
	return tabular.CheckState(op, next, m.states)
}
