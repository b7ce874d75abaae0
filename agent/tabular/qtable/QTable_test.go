package qtable

import (
	"testing"

	"github.com/samuelfneumann/mbrl/agent/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBellmanUpdate(t *testing.T) {
	q, err := New(2, 2)
	require.NoError(t, err)

	previous, err := q.BellmanUpdate(0, 0, 1.0, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, previous)

	v, err := q.At(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)

	previous, err = q.BellmanUpdate(0, 0, 1.0, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, previous, 1e-12)

	v, _ = q.At(0, 0)
	assert.InDelta(t, 0.75, v, 1e-12)
}

func TestMaxAndArgmax(t *testing.T) {
	q, err := New(1, 4)
	require.NoError(t, err)

	_, err = q.BellmanUpdate(0, 2, 3, 1)
	require.NoError(t, err)
	_, err = q.BellmanUpdate(0, 3, 3, 1)
	require.NoError(t, err)
	_, err = q.BellmanUpdate(0, 0, -1, 1)
	require.NoError(t, err)

	m, err := q.Max(0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, m)

	a, err := q.Argmax(0)
	require.NoError(t, err)
	assert.Equal(t, 2, a)

	row, err := q.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0, 3, 3}, row)

	// Row must be a copy
	row[0] = 100
	v, _ := q.At(0, 0)
	assert.Equal(t, -1.0, v)
}

func TestOutOfRange(t *testing.T) {
	q, err := New(2, 3)
	require.NoError(t, err)

	_, err = q.BellmanUpdate(2, 0, 1, 1)
	assert.True(t, tabular.IsOutOfRange(err))

	_, err = q.At(0, 3)
	assert.True(t, tabular.IsOutOfRange(err))

	_, err = q.Max(-1)
	assert.True(t, tabular.IsOutOfRange(err))

	var indexErr *tabular.IndexError
	_, err = q.Argmax(5)
	require.ErrorAs(t, err, &indexErr)
	assert.Equal(t, "state", indexErr.Kind)
	assert.Equal(t, 2, indexErr.Bound)
}

func TestString(t *testing.T) {
	q, err := New(1, 3)
	require.NoError(t, err)
	_, err = q.BellmanUpdate(0, 1, 4, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "[0  2  0]", q.String())
}
