package agent

import (
	"fmt"
	"reflect"

	"github.com/samuelfneumann/mbrl/environment"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes
	CreateAgent(env environment.Environment, seed uint64) (Agent, error)

	// ValidAgent returns whether the argument agent is valid for the
	// Config
	ValidAgent(Agent) bool

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the Type of agent the Config constructs
	Type() Type
}

// ConfigList stores a number of Configs in a simple manner. Instead of
// storing a slice of Configs, a ConfigList is a struct which stores a
// slice of values for each field of its Config. The Configs in the list
// are every combination of field values.
//
// The fields of a ConfigList must have the same names as the fields of
// the Config it stores and be slices of the Config's field types.
type ConfigList interface {
	// Config returns an empty Config of the type stored in the list
	Config() Config

	// Type returns the Type of agent the stored Configs construct
	Type() Type

	// NumFields returns the number of settable fields
	NumFields() int

	// Len returns the number of Configs in the list
	Len() int
}

// ConfigAt returns the Config at index i in list. Indices cycle through
// the values of the first field fastest. Indices larger than the length
// of the list wrap around, so ConfigAt(i, list) == ConfigAt(i+list.Len(),
// list).
func ConfigAt(i int, list ConfigList) (Config, error) {
	if list.Len() == 0 {
		return nil, fmt.Errorf("configAt: empty config list of type %v",
			list.Type())
	}
	if i < 0 {
		return nil, fmt.Errorf("configAt: index must be >= 0, have %d", i)
	}

	listValue := reflect.ValueOf(list)
	listType := listValue.Type()

	config := list.Config()
	configValue := reflect.New(reflect.TypeOf(config)).Elem()

	index := i % list.Len()
	for f := 0; f < listValue.NumField(); f++ {
		name := listType.Field(f).Name
		values := listValue.Field(f)

		field := configValue.FieldByName(name)
		if !field.IsValid() {
			return nil, fmt.Errorf("configAt: config %T has no field %v",
				config, name)
		}

		n := values.Len()
		field.Set(values.Index(index % n))
		index /= n
	}

	return configValue.Interface().(Config), nil
}

// Configs returns every Config in list
func Configs(list ConfigList) ([]Config, error) {
	configs := make([]Config, list.Len())
	for i := range configs {
		c, err := ConfigAt(i, list)
		if err != nil {
			return nil, err
		}
		configs[i] = c
	}
	return configs, nil
}
