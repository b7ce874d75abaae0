package envconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestUnmarshalKeepsDefaults(t *testing.T) {
	var c Config
	require.NoError(t, yaml.Unmarshal([]byte("wind_proportion: 1.0\n"), &c))

	want := Default()
	want.WindProportion = 1.0
	assert.Equal(t, want, c)
	assert.NoError(t, c.Validate())
}

func TestUnmarshalOverrides(t *testing.T) {
	doc := `
cols: 3
rows: 2
wind: [0, 1, 0]
start_x: 0
start_y: 0
goal_x: 2
goal_y: 1
episode_cutoff: 50
`
	var c Config
	require.NoError(t, yaml.Unmarshal([]byte(doc), &c))
	require.NoError(t, c.Validate())

	e, err := c.Create(1)
	require.NoError(t, err)
	assert.Equal(t, 6, e.NumStates())
	assert.Equal(t, []int{0, 1, 0}, e.Wind())
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Wind = c.Wind[:3]
	assert.Error(t, c.Validate())

	c = Default()
	c.WindProportion = 2
	assert.Error(t, c.Validate())

	c = Default()
	c.Environment = "Maze"
	assert.Error(t, c.Validate())
	_, err := c.Create(1)
	assert.Error(t, err)

	c = Default()
	c.EpisodeCutoff = -1
	assert.Error(t, c.Validate())
}

func TestFactoryIndependence(t *testing.T) {
	factory := Default().Factory()

	a, err := factory(1)
	require.NoError(t, err)
	b, err := factory(1)
	require.NoError(t, err)
	require.NotSame(t, a, b)

	_, err = a.Reset()
	require.NoError(t, err)
	_, err = b.Reset()
	require.NoError(t, err)

	stepA, _, err := a.Step(1)
	require.NoError(t, err)
	_, err = b.Reset()
	require.NoError(t, err)
	stepB, _, err := b.Step(1)
	require.NoError(t, err)

	assert.Equal(t, stepA.State, stepB.State)
}
