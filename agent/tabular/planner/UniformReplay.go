package planner

import (
	"github.com/samuelfneumann/mbrl/agent/tabular"
	"github.com/samuelfneumann/mbrl/agent/tabular/model"
	"github.com/samuelfneumann/mbrl/agent/tabular/qtable"
	"github.com/samuelfneumann/mbrl/expreplay"
	"github.com/samuelfneumann/mbrl/timestep"
)

// UniformReplay implements Dyna-Q planning: each planning update
// replays a state action pair drawn uniformly at random from all pairs
// observed so far.
type UniformReplay struct {
	model    *model.Model
	q        *qtable.QTable
	observed *expreplay.PairBuffer
	params   Params
}

// NewUniformReplay returns a new UniformReplay planner which samples
// transitions from m and updates q
func NewUniformReplay(m *model.Model, q *qtable.QTable, params Params,
	seed uint64) (*UniformReplay, error) {
	sampler := expreplay.NewUniformSelector(1, seed)
	observed, err := expreplay.New(sampler, m.NumStates(), m.NumActions())
	if err != nil {
		return nil, err
	}

	return &UniformReplay{
		model:    m,
		q:        q,
		observed: observed,
		params:   params,
	}, nil
}

// Observe records that (t.State, t.Action) was observed, making it
// available for planning
func (u *UniformReplay) Observe(t timestep.Transition, _, _ float64) error {
	return u.observed.Add(tabular.Pair{State: t.State, Action: t.Action})
}

// Plan performs up to updates planning updates. An iteration whose
// sampled pair has no model data is skipped and its slot is lost.
func (u *UniformReplay) Plan(updates int) (int, error) {
	if err := checkBudget("plan", updates); err != nil {
		return 0, err
	}

	performed := 0
	for i := 0; i < updates; i++ {
		batch, err := u.observed.Sample()
		if expreplay.IsEmptyBuffer(err) {
			break
		} else if err != nil {
			return performed, err
		}

		updated, err := simulatedUpdate(u.model, u.q, batch[0], u.params)
		if err != nil {
			return performed, err
		}
		if updated {
			performed++
		}
	}

	return performed, nil
}

// Observed returns the number of distinct pairs available for planning
func (u *UniformReplay) Observed() int {
	return u.observed.Capacity()
}
