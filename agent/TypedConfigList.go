package agent

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TypedConfigList implements functionality for typing a ConfigList.
// In this way, a ConfigList can explicitly have its type stored so
// that when deserializing the ConfigList, we can deserialize it into
// its concrete type without knowing beforehand or declaring beforehand
// a variable of its concrete type.
//
// In YAML a TypedConfigList is written as:
//
//	type: dyna
//	configs:
//	  learning_rate: [0.1, 0.5]
//	  gamma: [1.0]
type TypedConfigList struct {
	Type
	ConfigList
}

// NewTypedConfigList types the argument ConfigList and returns it
// as a TypedConfigList which explicitly holds its Type.
func NewTypedConfigList(c ConfigList) TypedConfigList {
	return TypedConfigList{Type: c.Type(), ConfigList: c}
}

type typedConfigListYAML struct {
	Type    Type      `yaml:"type"`
	Configs yaml.Node `yaml:"configs"`
}

// UnmarshalYAML implements the yaml.Unmarshaler interface. The
// ConfigList is decoded into the concrete type registered for its Type.
func (t *TypedConfigList) UnmarshalYAML(node *yaml.Node) error {
	var raw typedConfigListYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}

	value, err := newConfigList(raw.Type)
	if err != nil {
		return err
	}

	if !raw.Configs.IsZero() {
		if err := raw.Configs.Decode(value.Interface()); err != nil {
			return fmt.Errorf("unmarshalYAML: could not decode %v "+
				"configs: %w", raw.Type, err)
		}
	}

	configs, ok := value.Elem().Interface().(ConfigList)
	if !ok {
		return fmt.Errorf("unmarshalYAML: type %v registered with a "+
			"non-ConfigList", raw.Type)
	}

	t.Type = raw.Type
	t.ConfigList = configs
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface
func (t TypedConfigList) MarshalYAML() (interface{}, error) {
	return struct {
		Type    Type       `yaml:"type"`
		Configs ConfigList `yaml:"configs"`
	}{Type: t.Type, Configs: t.ConfigList}, nil
}

// At returns the Config at index i in the TypedConfigList
func (t *TypedConfigList) At(i int) (Config, error) {
	return ConfigAt(i, t.ConfigList)
}
