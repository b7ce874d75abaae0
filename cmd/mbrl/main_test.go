package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/mbrl/agent"
	"github.com/samuelfneumann/mbrl/experiment/trackers"
)

const experimentConfig = `
timesteps: 100
eval_interval: 50
eval_episodes: 2
max_episode_length: 20
repetitions: 2
workers: 2
seed: 3
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

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseLevel(t *testing.T) {
	lvl, err := parseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = parseLevel(" WARN ")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = parseLevel("loud")
	assert.Error(t, err)
}

func TestDemo(t *testing.T) {
	out, err := execute(t, "demo", "--agent", "ps", "--steps", "50",
		"--planning", "2", "--colour=false", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Mean greedy return:")
	assert.Contains(t, out, " A ")
	assert.Contains(t, out, " G ")
}

func TestDemoUnknownAgent(t *testing.T) {
	_, err := execute(t, "demo", "--agent", "sarsa", "--steps", "10")
	assert.ErrorIs(t, err, agent.ErrUnknownType)
}

func TestDemoInvalidWind(t *testing.T) {
	_, err := execute(t, "demo", "--wind", "1.5", "--steps", "10")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "experiment.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(experimentConfig),
		0o644))
	outDir := filepath.Join(dir, "results")

	out, err := execute(t, "run", "--config", configFile, "--out", outDir,
		"--progress=false", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Q-learning")

	curves, err := trackers.LoadCurves(filepath.Join(outDir, CurvesFile))
	require.NoError(t, err)
	assert.Len(t, curves, 3)

	page, err := os.ReadFile(filepath.Join(outDir, "wind-1.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Comparison")
}

func TestRunRequiresConfig(t *testing.T) {
	_, err := execute(t, "run")
	assert.Error(t, err)
}
