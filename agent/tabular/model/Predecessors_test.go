package model

import (
	"testing"

	"github.com/samuelfneumann/mbrl/agent/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredecessorsAdd(t *testing.T) {
	p, err := NewPredecessors(3, 2)
	require.NoError(t, err)

	require.NoError(t, p.Add(0, 0, 1))
	require.NoError(t, p.Add(0, 0, 1))
	require.NoError(t, p.Add(2, 1, 1))
	require.NoError(t, p.Add(1, 0, 2))

	preds, err := p.Of(1)
	require.NoError(t, err)
	assert.Equal(t, []tabular.Pair{{State: 0, Action: 0},
		{State: 2, Action: 1}}, preds)

	preds, err = p.Of(0)
	require.NoError(t, err)
	assert.Empty(t, preds)

	assert.Equal(t, 3, p.Len())
}

func TestPredecessorsSamePairDifferentSuccessors(t *testing.T) {
	p, err := NewPredecessors(3, 1)
	require.NoError(t, err)

	require.NoError(t, p.Add(0, 0, 1))
	require.NoError(t, p.Add(0, 0, 2))

	for _, next := range []int{1, 2} {
		preds, err := p.Of(next)
		require.NoError(t, err)
		assert.Equal(t, []tabular.Pair{{State: 0, Action: 0}}, preds)
	}
}

func TestPredecessorsOutOfRange(t *testing.T) {
	p, err := NewPredecessors(2, 2)
	require.NoError(t, err)

	assert.True(t, tabular.IsOutOfRange(p.Add(0, 0, 5)))
	assert.True(t, tabular.IsOutOfRange(p.Add(0, 3, 0)))

	_, err = p.Of(-1)
	assert.True(t, tabular.IsOutOfRange(err))
}
