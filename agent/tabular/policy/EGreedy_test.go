package policy

import (
	"testing"

	"github.com/samuelfneumann/mbrl/agent/tabular"
	"github.com/samuelfneumann/mbrl/agent/tabular/qtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T, values [][]float64) *qtable.QTable {
	t.Helper()
	q, err := qtable.New(len(values), len(values[0]))
	require.NoError(t, err)

	for s, row := range values {
		for a, v := range row {
			_, err := q.BellmanUpdate(s, a, v, 1.0)
			require.NoError(t, err)
		}
	}
	return q
}

func TestEGreedyUniqueMax(t *testing.T) {
	q := newTable(t, [][]float64{{0, 1, 5, 2}})
	p := NewEGreedy(q, 42)

	for i := 0; i < 500; i++ {
		a, err := p.Select(0, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, a)
	}
}

func TestEGreedyTieBreak(t *testing.T) {
	q := newTable(t, [][]float64{{3, 0, 3}})
	p := NewEGreedy(q, 9)

	const draws = 10_000
	counts := make([]int, 3)
	for i := 0; i < draws; i++ {
		a, err := p.Select(0, 0)
		require.NoError(t, err)
		counts[a]++
	}

	assert.Zero(t, counts[1])
	// Binomial(10000, 0.5) has a standard deviation of 50
	assert.InDelta(t, draws/2, counts[0], 300)
	assert.InDelta(t, draws/2, counts[2], 300)
}

func TestEGreedyExplores(t *testing.T) {
	q := newTable(t, [][]float64{{10, 0, 0, 0}})
	p := NewEGreedy(q, 5)

	const draws = 8000
	counts := make([]int, 4)
	for i := 0; i < draws; i++ {
		a, err := p.Select(0, 1.0)
		require.NoError(t, err)
		counts[a]++
	}

	for _, c := range counts {
		assert.InDelta(t, draws/4, c, 300)
	}
}

func TestEGreedyInvalid(t *testing.T) {
	q := newTable(t, [][]float64{{0, 0}})
	p := NewEGreedy(q, 1)

	_, err := p.Select(0, 1.5)
	assert.ErrorIs(t, err, tabular.ErrInvalidArgument)

	_, err = p.Select(1, 0.1)
	assert.True(t, tabular.IsOutOfRange(err))
}

func TestGreedyFirstIndex(t *testing.T) {
	q := newTable(t, [][]float64{{1, 4, 4}})
	g := NewGreedy(q)

	a, err := g.Select(0)
	require.NoError(t, err)
	assert.Equal(t, 1, a)
}
