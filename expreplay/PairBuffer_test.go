package expreplay

import (
	"testing"

	"github.com/samuelfneumann/mbrl/agent/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleEmpty(t *testing.T) {
	b, err := New(NewUniformSelector(1, 1), 3, 2)
	require.NoError(t, err)

	_, err = b.Sample()
	require.Error(t, err)
	assert.True(t, IsEmptyBuffer(err))
}

func TestAddIsIdempotent(t *testing.T) {
	b, err := New(NewUniformSelector(1, 1), 3, 2)
	require.NoError(t, err)

	pair := tabular.Pair{State: 2, Action: 1}
	for i := 0; i < 5; i++ {
		require.NoError(t, b.Add(pair))
	}
	assert.Equal(t, 1, b.Capacity())
	assert.True(t, b.Contains(pair))
	assert.False(t, b.Contains(tabular.Pair{State: 0, Action: 0}))
	assert.Equal(t, 6, b.MaxCapacity())
}

func TestAddOutOfRange(t *testing.T) {
	b, err := New(NewUniformSelector(1, 1), 3, 2)
	require.NoError(t, err)

	err = b.Add(tabular.Pair{State: 3, Action: 0})
	assert.True(t, tabular.IsOutOfRange(err))
	assert.Zero(t, b.Capacity())
}

func TestUniformSampling(t *testing.T) {
	b, err := New(NewUniformSelector(1, 17), 4, 1)
	require.NoError(t, err)

	for s := 0; s < 4; s++ {
		require.NoError(t, b.Add(tabular.Pair{State: s}))
	}

	const draws = 8000
	counts := make([]int, 4)
	for i := 0; i < draws; i++ {
		batch, err := b.Sample()
		require.NoError(t, err)
		require.Len(t, batch, 1)
		counts[batch[0].State]++
	}

	for _, c := range counts {
		assert.InDelta(t, draws/4, c, 300)
	}
}

func TestBatchSize(t *testing.T) {
	b, err := New(NewUniformSelector(3, 2), 2, 2)
	require.NoError(t, err)
	require.NoError(t, b.Add(tabular.Pair{State: 1, Action: 1}))

	batch, err := b.Sample()
	require.NoError(t, err)
	assert.Len(t, batch, 3)
	for _, pair := range batch {
		assert.Equal(t, tabular.Pair{State: 1, Action: 1}, pair)
	}

	_, err = New(NewUniformSelector(0, 2), 2, 2)
	assert.ErrorIs(t, err, tabular.ErrInvalidArgument)
}
