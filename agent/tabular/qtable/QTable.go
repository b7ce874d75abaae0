// Package qtable implements a dense table of action values
package qtable

import (
	"github.com/samuelfneumann/mbrl/agent/tabular"
	"github.com/samuelfneumann/mbrl/utils/matutils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// QTable stores an action value for every state action pair. Rows are
// states and columns are actions. All values start at zero.
//
// A QTable is updated both by real and by simulated experience, so the
// learner and its planner must share a pointer to the same QTable.
type QTable struct {
	values *mat.Dense
}

// New returns a new zero-initialized QTable
func New(states, actions int) (*QTable, error) {
	if states < 1 || actions < 1 {
		return nil, tabular.InvalidArgument("new", "states and actions "+
			"must be > 0, have %d and %d", states, actions)
	}
	return &QTable{values: mat.NewDense(states, actions, nil)}, nil
}

// Dims returns the number of states and actions in the table
func (q *QTable) Dims() (states, actions int) {
	return q.values.Dims()
}

// At returns Q(state, action)
func (q *QTable) At(state, action int) (float64, error) {
	if err := q.check("at", state, action); err != nil {
		return 0, err
	}
	return q.values.At(state, action), nil
}

// Max returns max_a Q(state, a)
func (q *QTable) Max(state int) (float64, error) {
	if err := q.checkState("max", state); err != nil {
		return 0, err
	}
	return floats.Max(q.values.RawRowView(state)), nil
}

// Argmax returns the first action attaining max_a Q(state, a)
func (q *QTable) Argmax(state int) (int, error) {
	if err := q.checkState("argmax", state); err != nil {
		return 0, err
	}
	return matutils.MaxVec(q.values.RowView(state)), nil
}

// Row returns a copy of the action values in state
func (q *QTable) Row(state int) ([]float64, error) {
	if err := q.checkState("row", state); err != nil {
		return nil, err
	}
	_, actions := q.values.Dims()
	row := make([]float64, actions)
	copy(row, q.values.RawRowView(state))
	return row, nil
}

// BellmanUpdate moves Q(state, action) toward target by a step of size
// learningRate:
//
//	Q(s, a) += learningRate * (target - Q(s, a))
//
// and returns the value of Q(state, action) before the update.
func (q *QTable) BellmanUpdate(state, action int, target,
	learningRate float64) (float64, error) {
	if err := q.check("bellmanUpdate", state, action); err != nil {
		return 0, err
	}

	previous := q.values.At(state, action)
	q.values.Set(state, action, previous+learningRate*(target-previous))
	return previous, nil
}

// Values returns a read-only view of the underlying table
func (q *QTable) Values() mat.Matrix {
	return q.values
}

// String returns the table formatted with one row per state
func (q *QTable) String() string {
	return matutils.Format(q.values)
}

func (q *QTable) check(op string, state, action int) error {
	states, actions := q.values.Dims()
	return tabular.CheckPair(op, state, action, states, actions)
}

func (q *QTable) checkState(op string, state int) error {
	states, _ := q.values.Dims()
	return tabular.CheckState(op, state, states)
}
