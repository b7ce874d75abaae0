package model

import "errors"

// ModelError implements errors unique to a learned environment model
type ModelError struct {
	Op  string
	Err error
}

// Error satisifes the error interface
func (e *ModelError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *ModelError) Unwrap() error {
	return e.Err
}

var errNoData = errors.New("no observations for state action pair")

// IsNoData returns whether or not an error reports that the model has
// no observations to answer a query with. Planners skip the current
// planning iteration when they see this error.
func IsNoData(err error) bool {
	return errors.Is(err, errNoData)
}
