package gridworld

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Goal represents the task of reaching goal states in a GridWorld
type Goal struct {
	goals          map[int]bool
	cols           int
	timeStepReward float64
	goalReward     float64
}

// NewGoal creates and returns a new goal at positions (x[i], y[i]),
// given that the gridworld has cols columns and rows rows. Entering a
// goal is rewarded with gr, and every other step with tr.
func NewGoal(x, y []int, cols, rows int, tr, gr float64) (*Goal, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("newGoal: x length (%d) != y length (%d)",
			len(x), len(y))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("newGoal: no goal positions")
	}

	goals := make(map[int]bool, len(x))
	for i := range x {
		// Ensure that the goal is within the proper bounds
		if x[i] < 0 || x[i] >= cols {
			return nil, fmt.Errorf("newGoal: x[%d] = %d out of range "+
				"[0, %d)", i, x[i], cols)
		} else if y[i] < 0 || y[i] >= rows {
			return nil, fmt.Errorf("newGoal: y[%d] = %d out of range "+
				"[0, %d)", i, y[i], rows)
		}

		goals[cToInd(x[i], y[i], cols)] = true
	}

	return &Goal{goals, cols, tr, gr}, nil
}

// GetReward returns the reward for moving from state to next
func (g *Goal) GetReward(_, _, next int) float64 {
	if g.goals[next] {
		return g.goalReward
	}
	return g.timeStepReward
}

// AtGoal represents if the goal state has been reached or not
func (g *Goal) AtGoal(state int) bool {
	return g.goals[state]
}

// String returns the Goal as a string
func (g *Goal) String() string {
	states := make([]int, 0, len(g.goals))
	for ind := range g.goals {
		states = append(states, ind)
	}
	sort.Ints(states)

	coords := make([]string, len(states))
	for i, ind := range states {
		x, y := indToC(ind, g.cols)
		coords[i] = fmt.Sprintf("(%d, %d)", x, y)
	}
	return strings.Join(coords, " ")
}

// Min returns the minimum reward attainable in the Task
func (g *Goal) Min() float64 {
	rewards := []float64{g.timeStepReward, g.goalReward}
	return floats.Min(rewards)
}

// Max returns the maximum reward attainable in the Task
func (g *Goal) Max() float64 {
	rewards := []float64{g.timeStepReward, g.goalReward}
	return floats.Max(rewards)
}
