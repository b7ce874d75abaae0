// Package tabular holds the types shared by the tabular agents: state
// action pairs and validation of state and action indices.
package tabular

import (
	"errors"
	"fmt"
)

// Pair is a (state, action) pair
type Pair struct {
	State  int
	Action int
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.State, p.Action)
}

// ErrOutOfRange is wrapped by every IndexError
var ErrOutOfRange = errors.New("index out of range")

// ErrInvalidArgument reports a caller contract violation other than an
// out of range index, such as a negative planning budget.
var ErrInvalidArgument = errors.New("invalid argument")

// IndexError reports a state or action index outside of the bounds a
// table was constructed with. It is a caller contract violation and is
// never recovered internally.
type IndexError struct {
	Op    string
	Kind  string // "state" or "action"
	Index int
	Bound int
}

// Error satisfies the error interface
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: %s %d not in [0, %d)", e.Op, e.Kind, e.Index,
		e.Bound)
}

// Unwrap returns ErrOutOfRange
func (e *IndexError) Unwrap() error {
	return ErrOutOfRange
}

// IsOutOfRange returns whether err reports an out of range state or
// action index.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// CheckState returns an *IndexError if state is not in [0, states)
func CheckState(op string, state, states int) error {
	if state < 0 || state >= states {
		return &IndexError{Op: op, Kind: "state", Index: state, Bound: states}
	}
	return nil
}

// CheckAction returns an *IndexError if action is not in [0, actions)
func CheckAction(op string, action, actions int) error {
	if action < 0 || action >= actions {
		return &IndexError{Op: op, Kind: "action", Index: action,
			Bound: actions}
	}
	return nil
}

// CheckPair validates both indices of a state action pair
func CheckPair(op string, state, action, states, actions int) error {
	if err := CheckState(op, state, states); err != nil {
		return err
	}
	return CheckAction(op, action, actions)
}

// InvalidArgument wraps ErrInvalidArgument with the failing operation
// and a description of the problem.
func InvalidArgument(op, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w: %s", op, ErrInvalidArgument,
		fmt.Sprintf(format, args...))
}
