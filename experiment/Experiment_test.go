package experiment

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/mbrl/agent"
	_ "github.com/samuelfneumann/mbrl/agent/tabular/dyna"
	_ "github.com/samuelfneumann/mbrl/agent/tabular/prioritized"
	"github.com/samuelfneumann/mbrl/environment/envconfig"
	"github.com/samuelfneumann/mbrl/experiment/trackers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const smallConfig = `
timesteps: 200
eval_interval: 50
eval_episodes: 2
max_episode_length: 20
repetitions: 3
workers: 2
seed: 7
wind_proportions: [1.0]
agents:
  - type: dyna
    planning_updates: [0, 2]
    configs:
      learning_rate: [0.2]
      gamma: [1.0]
  - type: ps
    planning_updates: [2]
    configs:
      learning_rate: [0.2]
      gamma: [1.0]
`

func loadConfig(t *testing.T, doc string) Config {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(doc), 0o644))

	c, err := Load(filename)
	require.NoError(t, err)
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := loadConfig(t, `
agents:
  - type: dyna
    planning_updates: [0]
    configs:
      learning_rate: [0.2]
      gamma: [1.0]
`)

	assert.Equal(t, DefaultTimesteps, c.Timesteps)
	assert.Equal(t, DefaultEvalInterval, c.EvalInterval)
	assert.Equal(t, DefaultRepetitions, c.Repetitions)
	assert.Equal(t, DefaultEvalEpisodes, c.EvalEpisodes)
	assert.Equal(t, DefaultMaxEpisodeLength, c.MaxEpisodeLength)
	assert.Equal(t, DefaultEpsilon, c.Epsilon)
	assert.Equal(t, envconfig.Default(), c.Environment)
	assert.Equal(t, []float64{0.9}, c.Winds())

	require.Len(t, c.Agents, 1)
	assert.Equal(t, agent.Dyna, c.Agents[0].Configs.Type)
	assert.Equal(t, []int{0}, c.Agents[0].Planning)

	times := c.Times()
	assert.Len(t, times, 41)
	assert.Equal(t, 0, times[0])
	assert.Equal(t, 10000, times[40])
}

func TestLoadWindyConfig(t *testing.T) {
	c, err := Load(filepath.Join("..", "configs", "windy.yaml"))
	require.NoError(t, err)

	assert.Equal(t, envconfig.Default(), c.Environment)
	assert.Equal(t, []float64{0.9, 1.0}, c.Winds())
	require.Len(t, c.Agents, 2)
	assert.Equal(t, agent.PrioritizedSweeping, c.Agents[1].Configs.Type)
	assert.Equal(t, []int{0, 1, 3, 5}, c.Agents[0].Planning)
}

func TestLoadUnknownAgent(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "experiment.yaml")
	doc := "agents:\n  - type: sarsa\n    planning_updates: [1]\n"
	require.NoError(t, os.WriteFile(filename, []byte(doc), 0o644))

	_, err := Load(filename)
	assert.ErrorIs(t, err, agent.ErrUnknownType)
}

func TestValidate(t *testing.T) {
	c := loadConfig(t, smallConfig)
	require.NoError(t, c.Validate())

	invalid := c
	invalid.Agents = nil
	assert.Error(t, invalid.Validate())

	invalid = c
	invalid.Repetitions = 0
	assert.Error(t, invalid.Validate())

	invalid = c
	invalid.WindProportions = []float64{1.5}
	assert.Error(t, invalid.Validate())

	invalid = c
	invalid.Epsilon = -1
	assert.Error(t, invalid.Validate())

	invalid = c
	invalid.Agents = []AgentSpec{{Planning: []int{-1},
		Configs: c.Agents[0].Configs}}
	assert.Error(t, invalid.Validate())
}

func TestAgentSpecYAML(t *testing.T) {
	c := loadConfig(t, smallConfig)

	out, err := yaml.Marshal(c.Agents[1])
	require.NoError(t, err)

	var spec AgentSpec
	require.NoError(t, yaml.Unmarshal(out, &spec))
	assert.Equal(t, c.Agents[1], spec)
}

func TestRun(t *testing.T) {
	c := loadConfig(t, smallConfig)

	curves, err := Run(context.Background(), c, nil)
	require.NoError(t, err)
	require.Len(t, curves, 3)

	labels := []string{BaselineLabel, "dyna (planning=2)", "ps (planning=2)"}
	for i, curve := range curves {
		assert.Equal(t, labels[i], curve.Label)
		assert.Equal(t, 1.0, curve.Wind)
		assert.Equal(t, []int{0, 50, 100, 150}, curve.Times)
		require.Len(t, curve.Returns, 4)
		for _, ret := range curve.Returns {
			assert.GreaterOrEqual(t, ret, -20.0)
			assert.LessOrEqual(t, ret, 100.0)
		}
		assert.Positive(t, curve.Runtime)
	}

	again, err := Run(context.Background(), c, nil)
	require.NoError(t, err)
	for i := range curves {
		assert.Equal(t, curves[i].Returns, again[i].Returns)
	}
}

func TestRunCancelled(t *testing.T) {
	c := loadConfig(t, smallConfig)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, c, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOnline(t *testing.T) {
	factory := envconfig.Default().Factory()
	e, err := factory(1)
	require.NoError(t, err)

	c := loadConfig(t, smallConfig)
	config, err := c.Agents[0].Configs.At(0)
	require.NoError(t, err)
	a, err := config.CreateAgent(e, 1)
	require.NoError(t, err)

	settings := Settings{
		Timesteps:        30,
		EvalInterval:     10,
		EvalEpisodes:     1,
		MaxEpisodeLength: 5,
		Epsilon:          0.1,
	}
	lengths := trackers.NewEpisodeLength(
		filepath.Join(t.TempDir(), "lengths.bin"))
	o := NewOnline(e, a, factory, settings, 1, 1, lengths)

	require.NoError(t, o.Run(context.Background()))
	assert.Equal(t, []int{0, 10, 20}, o.Curve().Times())
	for _, ret := range o.Curve().Returns() {
		assert.GreaterOrEqual(t, ret, -5.0)
	}
	require.NoError(t, o.Save())
}

func TestBestPlanning(t *testing.T) {
	curves := []trackers.Curve{
		{Type: "dyna", Planning: 0, Wind: 1, Returns: []float64{90}},
		{Type: "dyna", Planning: 1, Wind: 1, Returns: []float64{10}},
		{Type: "dyna", Planning: 5, Wind: 1, Returns: []float64{0, 50}},
		{Type: "dyna", Planning: 3, Wind: 1, Returns: []float64{50}},
		{Type: "dyna", Planning: 5, Wind: 0.9, Returns: []float64{80}},
		{Type: "ps", Planning: 1, Wind: 1, Returns: []float64{70}},
	}

	best, err := BestPlanning(curves, agent.Dyna, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, best.Planning)

	best, err = BestPlanning(curves, agent.PrioritizedSweeping, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, best.Planning)

	_, err = BestPlanning(curves, agent.PrioritizedSweeping, 0.9)
	assert.Error(t, err)

	baseline, err := Baseline(curves, 1)
	require.NoError(t, err)
	assert.Equal(t, 90.0, baseline.Returns[0])

	_, err = Baseline(curves, 0.9)
	assert.Error(t, err)

	assert.Len(t, Filter(curves, agent.Dyna, 1), 4)
}
