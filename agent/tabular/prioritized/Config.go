package prioritized

import (
	"fmt"
	"math"
	"reflect"

	"github.com/samuelfneumann/mbrl/agent"
	"github.com/samuelfneumann/mbrl/agent/tabular/modelbased"
	"github.com/samuelfneumann/mbrl/agent/tabular/planner"
	"github.com/samuelfneumann/mbrl/environment"
)

func init() {
	// Register ConfigList type so that it can be typed using
	// agent.TypedConfigList to help with serialization/deserialization.
	agent.Register(agent.PrioritizedSweeping, ConfigList{})
}

// ConfigList implements functionality for storing a number of Config's
// in a simple manner. Instead of storing a slice of Configs, the
// ConfigList stores each field's values and constructs the list by
// every combination of field values.
//
// If PriorityCutoff is empty, planner.DefaultPriorityCutoff is used.
type ConfigList struct {
	LearningRate   []float64 `yaml:"learning_rate"`
	Gamma          []float64 `yaml:"gamma"`
	PriorityCutoff []float64 `yaml:"priority_cutoff"`
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList
// so that it can easily be serialized/deserialized without knowing the
// underlying concrete type.
func NewConfigList(learningRate, gamma,
	priorityCutoff []float64) agent.TypedConfigList {
	config := ConfigList{
		LearningRate:   learningRate,
		Gamma:          gamma,
		PriorityCutoff: priorityCutoff,
	}
	return agent.NewTypedConfigList(config.withDefaults())
}

// UnmarshalYAML implements the yaml.Unmarshaler interface
func (c *ConfigList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plain ConfigList
	var list plain
	if err := unmarshal(&list); err != nil {
		return err
	}
	*c = ConfigList(list).withDefaults()
	return nil
}

func (c ConfigList) withDefaults() ConfigList {
	if len(c.PriorityCutoff) == 0 {
		c.PriorityCutoff = []float64{planner.DefaultPriorityCutoff}
	}
	return c
}

// Config returns an empty Config that is of the type stored by
// ConfigList
func (c ConfigList) Config() agent.Config {
	return Config{}
}

// Type returns the type of agent that can be constructed by Config's
// stored by the list
func (c ConfigList) Type() agent.Type {
	return c.Config().Type()
}

// NumFields returns the number of settable fields for the ConfigList
func (c ConfigList) NumFields() int {
	rValue := reflect.ValueOf(c)
	return rValue.NumField()
}

// Len returns the number of Configs stored by the list
func (c ConfigList) Len() int {
	return len(c.LearningRate) * len(c.Gamma) * len(c.PriorityCutoff)
}

// Config represents a configuration for the prioritized sweeping agent
type Config struct {
	LearningRate float64
	Gamma        float64

	// PriorityCutoff is the priority a state action pair must exceed to
	// be queued for planning
	PriorityCutoff float64
}

// CreateAgent creates the agent from the Config. Action values are
// always initialized to zero.
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	return New(env.NumStates(), env.NumActions(), c, seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	mb, ok := a.(*modelbased.Agent)
	if !ok {
		return false
	}
	_, ok = mb.Planner().(*planner.PrioritizedSweep)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("validate: learning rate must be in (0, 1], "+
			"have %v", c.LearningRate)
	}
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf("validate: gamma must be in [0, 1], have %v",
			c.Gamma)
	}
	if c.PriorityCutoff < 0 || math.IsNaN(c.PriorityCutoff) {
		return fmt.Errorf("validate: priority cutoff must be >= 0, have %v",
			c.PriorityCutoff)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.PrioritizedSweeping
}
