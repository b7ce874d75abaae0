package experiment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samuelfneumann/mbrl/agent"
	"github.com/samuelfneumann/mbrl/environment/envconfig"
)

// Default experiment settings
const (
	DefaultTimesteps        = 10001
	DefaultEvalInterval     = 250
	DefaultRepetitions      = 20
	DefaultEvalEpisodes     = 30
	DefaultMaxEpisodeLength = 100
	DefaultEpsilon          = 0.1
)

// Settings are the settings of a single online run
type Settings struct {
	Timesteps        int     `yaml:"timesteps"`
	EvalInterval     int     `yaml:"eval_interval"`
	EvalEpisodes     int     `yaml:"eval_episodes"`
	MaxEpisodeLength int     `yaml:"max_episode_length"`
	Epsilon          float64 `yaml:"epsilon"`
}

// Validate returns an error if the Settings are invalid
func (s Settings) Validate() error {
	if s.Timesteps < 1 {
		return fmt.Errorf("validate: timesteps must be > 0, have %d",
			s.Timesteps)
	}
	if s.EvalInterval < 1 {
		return fmt.Errorf("validate: eval interval must be > 0, have %d",
			s.EvalInterval)
	}
	if s.EvalEpisodes < 1 {
		return fmt.Errorf("validate: eval episodes must be > 0, have %d",
			s.EvalEpisodes)
	}
	if s.MaxEpisodeLength < 1 {
		return fmt.Errorf("validate: max episode length must be > 0, "+
			"have %d", s.MaxEpisodeLength)
	}
	if s.Epsilon < 0 || s.Epsilon > 1 {
		return fmt.Errorf("validate: epsilon must be in [0, 1], have %v",
			s.Epsilon)
	}
	return nil
}

// Times returns the timesteps at which the agent is evaluated
func (s Settings) Times() []int {
	times := make([]int, 0, (s.Timesteps+s.EvalInterval-1)/s.EvalInterval)
	for t := 0; t < s.Timesteps; t += s.EvalInterval {
		times = append(times, t)
	}
	return times
}

// AgentSpec describes a set of agents to run: every Config in Configs
// is run with every planning budget in Planning
type AgentSpec struct {
	Planning []int
	Configs  agent.TypedConfigList
}

// UnmarshalYAML implements the yaml.Unmarshaler interface. An
// AgentSpec is written as a TypedConfigList with an additional
// planning_updates field.
func (a *AgentSpec) UnmarshalYAML(node *yaml.Node) error {
	var planning struct {
		Planning []int `yaml:"planning_updates"`
	}
	if err := node.Decode(&planning); err != nil {
		return err
	}

	var configs agent.TypedConfigList
	if err := node.Decode(&configs); err != nil {
		return err
	}

	a.Planning = planning.Planning
	a.Configs = configs
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface
func (a AgentSpec) MarshalYAML() (interface{}, error) {
	return struct {
		Type     agent.Type       `yaml:"type"`
		Planning []int            `yaml:"planning_updates"`
		Configs  agent.ConfigList `yaml:"configs"`
	}{a.Configs.Type, a.Planning, a.Configs.ConfigList}, nil
}

// Config represents a configuration of an experiment
type Config struct {
	Settings    `yaml:",inline"`
	Repetitions int    `yaml:"repetitions"`
	Seed        uint64 `yaml:"seed"`

	// Workers limits the number of repetitions run concurrently. If
	// zero, the number of CPUs is used.
	Workers int `yaml:"workers"`

	Environment envconfig.Config `yaml:"environment"`

	// WindProportions lists the wind proportions to run every agent on.
	// If empty, only Environment.WindProportion is used.
	WindProportions []float64 `yaml:"wind_proportions"`

	Agents []AgentSpec `yaml:"agents"`
}

// Default returns a Config with default settings and no agents
func Default() Config {
	return Config{
		Settings: Settings{
			Timesteps:        DefaultTimesteps,
			EvalInterval:     DefaultEvalInterval,
			EvalEpisodes:     DefaultEvalEpisodes,
			MaxEpisodeLength: DefaultMaxEpisodeLength,
			Epsilon:          DefaultEpsilon,
		},
		Repetitions: DefaultRepetitions,
		Environment: envconfig.Default(),
	}
}

// UnmarshalYAML implements the yaml.Unmarshaler interface. Fields
// missing from the document keep their default values.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type plain Config
	config := plain(Default())
	if err := node.Decode(&config); err != nil {
		return err
	}
	*c = Config(config)
	return nil
}

// Load reads a Config from the YAML file filename and validates it
func Load(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("load: could not parse %v: %w",
			filename, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}
	return c, nil
}

// Validate returns an error if the Config is invalid
func (c Config) Validate() error {
	if err := c.Settings.Validate(); err != nil {
		return err
	}
	if c.Repetitions < 1 {
		return fmt.Errorf("validate: repetitions must be > 0, have %d",
			c.Repetitions)
	}
	if c.Workers < 0 {
		return fmt.Errorf("validate: workers must be >= 0, have %d",
			c.Workers)
	}
	if err := c.Environment.Validate(); err != nil {
		return err
	}
	for _, wind := range c.WindProportions {
		if wind < 0 || wind > 1 {
			return fmt.Errorf("validate: wind proportion must be in "+
				"[0, 1], have %v", wind)
		}
	}

	if len(c.Agents) == 0 {
		return fmt.Errorf("validate: no agents")
	}
	for i, spec := range c.Agents {
		if len(spec.Planning) == 0 {
			return fmt.Errorf("validate: agent %d (%v) has no planning "+
				"budgets", i, spec.Configs.Type)
		}
		for _, k := range spec.Planning {
			if k < 0 {
				return fmt.Errorf("validate: agent %d (%v) has negative "+
					"planning budget %d", i, spec.Configs.Type, k)
			}
		}

		configs, err := agent.Configs(spec.Configs.ConfigList)
		if err != nil {
			return fmt.Errorf("validate: agent %d: %w", i, err)
		}
		for j, config := range configs {
			if err := config.Validate(); err != nil {
				return fmt.Errorf("validate: agent %d (%v) config %d: %w",
					i, spec.Configs.Type, j, err)
			}
		}
	}
	return nil
}

// Winds returns the wind proportions to run every agent on
func (c Config) Winds() []float64 {
	if len(c.WindProportions) == 0 {
		return []float64{c.Environment.WindProportion}
	}
	return c.WindProportions
}
