package floatutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxSlice(t *testing.T) {
	max, indices := MaxSlice([]float64{1, 3, -2, 3, 0})
	assert.Equal(t, 3.0, max)
	assert.Equal(t, []int{1, 3}, indices)

	max, indices = MaxSlice([]float64{-1})
	assert.Equal(t, -1.0, max)
	assert.Equal(t, []int{0}, indices)

	_, indices = MaxSlice([]float64{0, 0, 0})
	assert.Equal(t, []int{0, 1, 2}, indices)
}
