package agent

import (
	"errors"
	"fmt"
	"reflect"
)

// Type represents a specific type of an agent Config.
// Config's with this type can create Agents of the corresponding type.
type Type string

const (
	// Dyna-Q, uniform replay of observed state action pairs
	Dyna Type = "dyna"

	// Prioritized sweeping
	PrioritizedSweeping Type = "ps"
)

// ErrUnknownType is returned when a Type that has not been registered
// is used
var ErrUnknownType = errors.New("unknown agent type")

// Registered types with the package. Once a Type has been registered
// with this map, a Config or ConfigList with that type can be created.
//
// No Type's are registered wtih this package upon initialization.
// Each separate package is in charge of registering its Type with
// the package separately to avoid circular imports.
var registeredTypes = make(map[Type]reflect.Type)

// Register registers an agent's Type with a concrete ConfigList type
// so that upon deserialization of a TypedConfigList, ConfigLists of
// type agentType are deserialized into the concrete type of configs.
func Register(agentType Type, configs ConfigList) {
	registeredTypes[agentType] = reflect.TypeOf(configs)
}

// Registered returns whether agentType has been registered
func Registered(agentType Type) bool {
	_, ok := registeredTypes[agentType]
	return ok
}

// newConfigList returns a pointer to a new, empty ConfigList of the
// concrete type registered for agentType
func newConfigList(agentType Type) (reflect.Value, error) {
	ty, ok := registeredTypes[agentType]
	if !ok {
		return reflect.Value{}, fmt.Errorf("newConfigList: %w %q",
			ErrUnknownType, agentType)
	}
	return reflect.New(ty), nil
}
