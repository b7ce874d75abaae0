package intutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMax(t *testing.T) {
	assert.Equal(t, -2, Min(3, -2, 7))
	assert.Equal(t, 7, Max(3, -2, 7))
}

func TestClip(t *testing.T) {
	assert.Equal(t, 0, Clip(-3, 0, 6))
	assert.Equal(t, 6, Clip(9, 0, 6))
	assert.Equal(t, 4, Clip(4, 0, 6))
}
