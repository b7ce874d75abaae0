package environment

import (
	"testing"

	"github.com/samuelfneumann/mbrl/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(3)

	step := timestep.New(timestep.Mid, -1, 4, 2)
	assert.False(t, limit.End(&step))
	assert.Equal(t, timestep.Mid, step.StepType)

	step.Number = 3
	assert.True(t, limit.End(&step))
	assert.True(t, step.Last())
}

func TestCategoricalStarter(t *testing.T) {
	starter, err := NewCategoricalStarter([]int{4, 9}, []float64{0, 1}, 1)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 9, starter.Start())
	}

	uniform, err := NewCategoricalStarter([]int{1, 2, 3}, nil, 3)
	require.NoError(t, err)
	counts := map[int]int{}
	for i := 0; i < 3000; i++ {
		counts[uniform.Start()]++
	}
	for _, s := range []int{1, 2, 3} {
		assert.InDelta(t, 1000, counts[s], 150)
	}
}

func TestCategoricalStarterInvalid(t *testing.T) {
	_, err := NewCategoricalStarter(nil, nil, 1)
	assert.Error(t, err)

	_, err = NewCategoricalStarter([]int{1, 2}, []float64{1}, 1)
	assert.Error(t, err)

	_, err = NewCategoricalStarter([]int{1}, []float64{-1}, 1)
	assert.Error(t, err)
}

func TestSingleStart(t *testing.T) {
	assert.Equal(t, 7, SingleStart(7).Start())
}
