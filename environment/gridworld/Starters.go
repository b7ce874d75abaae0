package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/mbrl/environment"
)

// NewSingleStart returns a Starter which always starts at (x, y) in a
// gridworld with cols columns and rows rows
func NewSingleStart(x, y, cols, rows int) (environment.Starter, error) {
	if x < 0 || x >= cols {
		return nil, fmt.Errorf("newSingleStart: x = %d out of range "+
			"[0, %d)", x, cols)
	} else if y < 0 || y >= rows {
		return nil, fmt.Errorf("newSingleStart: y = %d out of range "+
			"[0, %d)", y, rows)
	}

	return environment.SingleStart(cToInd(x, y, cols)), nil
}

// NewCategoricalStart returns a Starter which starts uniformly at
// random at one of the cells (x[i], y[i])
func NewCategoricalStart(x, y []int, cols, rows int,
	seed uint64) (environment.Starter, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("newCategoricalStart: x length (%d) != "+
			"y length (%d)", len(x), len(y))
	}

	states := make([]int, len(x))
	for i := range x {
		if x[i] < 0 || x[i] >= cols || y[i] < 0 || y[i] >= rows {
			return nil, fmt.Errorf("newCategoricalStart: (%d, %d) outside "+
				"of %dx%d grid", x[i], y[i], cols, rows)
		}
		states[i] = cToInd(x[i], y[i], cols)
	}

	return environment.NewCategoricalStarter(states, nil, seed)
}
