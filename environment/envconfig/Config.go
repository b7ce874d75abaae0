// Package envconfig provides configuration structs for configuring
// environments with default parameters and tasks. Environment
// configurations in this package are YAML serializable.
package envconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"

	env "github.com/samuelfneumann/mbrl/environment"
	"github.com/samuelfneumann/mbrl/environment/gridworld"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	WindyGridWorld EnvName = "WindyGridWorld"
)

// Config implements a specific configuration of a windy gridworld.
// Fields missing from a YAML document keep their default values.
type Config struct {
	Environment    EnvName `yaml:"environment"`
	Cols           int     `yaml:"cols"`
	Rows           int     `yaml:"rows"`
	Wind           []int   `yaml:"wind"`
	WindProportion float64 `yaml:"wind_proportion"`
	StartX         int     `yaml:"start_x"`
	StartY         int     `yaml:"start_y"`
	GoalX          int     `yaml:"goal_x"`
	GoalY          int     `yaml:"goal_y"`
	StepReward     float64 `yaml:"step_reward"`
	GoalReward     float64 `yaml:"goal_reward"`

	// EpisodeCutoff ends episodes after this many steps, 0 disables it
	EpisodeCutoff int `yaml:"episode_cutoff"`
}

// Default returns the default windy gridworld configuration
func Default() Config {
	wind := make([]int, len(gridworld.DefaultWind))
	copy(wind, gridworld.DefaultWind)

	return Config{
		Environment:    WindyGridWorld,
		Cols:           gridworld.DefaultCols,
		Rows:           gridworld.DefaultRows,
		Wind:           wind,
		WindProportion: 0.9,
		StartX:         gridworld.DefaultStartX,
		StartY:         gridworld.DefaultStartY,
		GoalX:          gridworld.DefaultGoalX,
		GoalY:          gridworld.DefaultGoalY,
		StepReward:     gridworld.DefaultStepReward,
		GoalReward:     gridworld.DefaultGoalReward,
	}
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type plain Config
	config := plain(Default())
	if err := node.Decode(&config); err != nil {
		return err
	}
	*c = Config(config)
	return nil
}

// Validate returns an error if the Config describes an environment
// which cannot be created
func (c Config) Validate() error {
	if c.Environment != WindyGridWorld {
		return fmt.Errorf("validate: no such environment %q", c.Environment)
	}
	if c.Cols < 1 || c.Rows < 1 {
		return fmt.Errorf("validate: grid must be at least 1x1, have %dx%d",
			c.Cols, c.Rows)
	}
	if len(c.Wind) != c.Cols {
		return fmt.Errorf("validate: have wind for %d columns but %d "+
			"columns", len(c.Wind), c.Cols)
	}
	if c.WindProportion < 0 || c.WindProportion > 1 {
		return fmt.Errorf("validate: wind proportion must be in [0, 1], "+
			"have %v", c.WindProportion)
	}
	if c.EpisodeCutoff < 0 {
		return fmt.Errorf("validate: episode cutoff must be >= 0, have %d",
			c.EpisodeCutoff)
	}
	return nil
}

// Create returns the environment described by the Config
func (c Config) Create(seed uint64) (*gridworld.WindyGridWorld, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	task, err := gridworld.NewGoal([]int{c.GoalX}, []int{c.GoalY}, c.Cols,
		c.Rows, c.StepReward, c.GoalReward)
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	start, err := gridworld.NewSingleStart(c.StartX, c.StartY, c.Cols, c.Rows)
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	var enders []env.Ender
	if c.EpisodeCutoff > 0 {
		enders = append(enders, env.NewStepLimit(c.EpisodeCutoff))
	}

	return gridworld.New(c.Cols, c.Rows, c.Wind, c.WindProportion, task,
		start, seed, enders...)
}

// Factory returns an environment.Factory creating independent
// environments described by the Config
func (c Config) Factory() env.Factory {
	return func(seed uint64) (env.Environment, error) {
		e, err := c.Create(seed)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
}
