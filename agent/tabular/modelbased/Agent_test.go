package modelbased

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/samuelfneumann/mbrl/agent/tabular"
	"github.com/samuelfneumann/mbrl/agent/tabular/model"
	"github.com/samuelfneumann/mbrl/agent/tabular/planner"
	"github.com/samuelfneumann/mbrl/agent/tabular/qtable"
	"github.com/samuelfneumann/mbrl/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(m *model.Model, q *qtable.QTable, params planner.Params,
	seed uint64) (planner.Planner, error) {
	return planner.NewUniformReplay(m, q, params, seed)
}

func sweeping(m *model.Model, q *qtable.QTable, params planner.Params,
	_ uint64) (planner.Planner, error) {
	return planner.NewPrioritizedSweep(m, q, params, 0)
}

func TestRealUpdate(t *testing.T) {
	for name, newPlanner := range map[string]NewPlanner{
		"uniform":  uniform,
		"sweeping": sweeping,
	} {
		t.Run(name, func(t *testing.T) {
			a, err := New(2, 2, 0.5, 1.0, newPlanner, 1)
			require.NoError(t, err)

			tr := timestep.Transition{State: 0, Action: 0, Reward: 1,
				NextState: 1}
			require.NoError(t, a.Update(tr, 0))

			v, err := a.QTable().At(0, 0)
			require.NoError(t, err)
			assert.Equal(t, 0.5, v)
			assert.Equal(t, 1.0, a.Model().Count(0, 0, 1))
		})
	}
}

func TestTerminalUpdateDoesNotBootstrap(t *testing.T) {
	a, err := New(2, 1, 1, 1, uniform, 1)
	require.NoError(t, err)

	// Make max Q(1, .) non-zero
	require.NoError(t, a.Update(timestep.Transition{State: 1, Action: 0,
		Reward: 3, NextState: 0, Done: true}, 0))

	require.NoError(t, a.Update(timestep.Transition{State: 0, Action: 0,
		Reward: 1, NextState: 1, Done: true}, 0))
	v, _ := a.QTable().At(0, 0)
	assert.Equal(t, 1.0, v)

	require.NoError(t, a.Update(timestep.Transition{State: 0, Action: 0,
		Reward: 1, NextState: 1}, 0))
	v, _ = a.QTable().At(0, 0)
	assert.Equal(t, 4.0, v)
}

func TestUpdatePlans(t *testing.T) {
	a, err := New(2, 1, 0.5, 1, uniform, 1)
	require.NoError(t, err)

	tr := timestep.Transition{State: 0, Action: 0, Reward: 2, NextState: 1}
	require.NoError(t, a.Update(tr, 2))

	// One real and two simulated updates toward 2: 1, 1.5, 1.75
	v, _ := a.QTable().At(0, 0)
	assert.InDelta(t, 1.75, v, 1e-12)
}

func TestUpdateInvalid(t *testing.T) {
	a, err := New(2, 2, 0.5, 1, uniform, 1)
	require.NoError(t, err)

	err = a.Update(timestep.Transition{State: 2, Action: 0}, 0)
	assert.True(t, tabular.IsOutOfRange(err))

	err = a.Update(timestep.Transition{State: 0, Action: 0,
		NextState: 5}, 0)
	assert.True(t, tabular.IsOutOfRange(err))

	err = a.Update(timestep.Transition{}, -1)
	assert.ErrorIs(t, err, tabular.ErrInvalidArgument)

	assert.Zero(t, a.Model().Total(0, 0))
}

func TestNewInvalid(t *testing.T) {
	_, err := New(2, 2, 0, 1, uniform, 1)
	assert.ErrorIs(t, err, tabular.ErrInvalidArgument)
	_, err = New(2, 2, 0.5, 1.1, uniform, 1)
	assert.ErrorIs(t, err, tabular.ErrInvalidArgument)
	_, err = New(0, 2, 0.5, 1, uniform, 1)
	assert.ErrorIs(t, err, tabular.ErrInvalidArgument)
}

func TestSelectActionTieBreak(t *testing.T) {
	a, err := New(1, 3, 0.5, 1, uniform, 1)
	require.NoError(t, err)

	counts := make([]int, 3)
	for i := 0; i < 3000; i++ {
		action, err := a.SelectAction(0, 0)
		require.NoError(t, err)
		counts[action]++
	}
	for _, c := range counts {
		assert.InDelta(t, 1000, c, 150)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf,
		&slog.HandlerOptions{Level: slog.LevelDebug}))

	a, err := New(2, 1, 0.5, 1, uniform, 1, WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, a.Update(timestep.Transition{NextState: 1}, 3))

	assert.Contains(t, buf.String(), "msg=planned")
	assert.Contains(t, buf.String(), "performed=3")
}
