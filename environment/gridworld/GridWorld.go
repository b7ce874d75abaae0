// Package gridworld implements 2D windy gridworld environments
package gridworld

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mbrl/environment"
	"github.com/samuelfneumann/mbrl/timestep"
	"github.com/samuelfneumann/mbrl/utils/intutils"
)

// Actions
const (
	Left = iota
	Right
	Up
	Down
)

const numActions = 4

// Default layout of the windy gridworld
var (
	DefaultCols = 10
	DefaultRows = 7
	DefaultWind = []int{0, 0, 0, 1, 1, 1, 2, 2, 1, 0}

	DefaultStartX, DefaultStartY = 0, 3
	DefaultGoalX, DefaultGoalY   = 7, 3

	DefaultStepReward = -1.0
	DefaultGoalReward = 100.0
)

// WindyGridWorld represents a gridworld with an upward wind in each
// column
//
// After each move, with probability windProportion, the agent is
// pushed up by the wind strength of the column it moved into. Moves and
// wind are clipped to the grid. State (x, y) has index y*cols + x.
type WindyGridWorld struct {
	environment.Task
	environment.Starter
	enders []environment.Ender

	cols, rows     int
	wind           []int
	windProportion float64
	rng            *rand.Rand

	position    int
	currentStep timestep.TimeStep
}

// New creates a new windy gridworld with cols columns and rows rows.
// The wind slice holds the upward wind strength of each column, which
// is applied with probability windProportion after each move. Episodes
// end when the Task's goal is reached or any of the enders ends them.
func New(cols, rows int, wind []int, windProportion float64,
	t environment.Task, s environment.Starter, seed uint64,
	enders ...environment.Ender) (*WindyGridWorld, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("new: grid must be at least 1x1, have "+
			"%dx%d", cols, rows)
	}
	if len(wind) != cols {
		return nil, fmt.Errorf("new: have wind for %d columns but %d "+
			"columns", len(wind), cols)
	}
	if windProportion < 0 || windProportion > 1 {
		return nil, fmt.Errorf("new: wind proportion must be in [0, 1], "+
			"have %v", windProportion)
	}

	w := make([]int, cols)
	copy(w, wind)

	return &WindyGridWorld{
		Task:           t,
		Starter:        s,
		enders:         enders,
		cols:           cols,
		rows:           rows,
		wind:           w,
		windProportion: windProportion,
		rng:            rand.New(rand.NewSource(seed)),
		position:       -1,
	}, nil
}

// NewDefault returns the default 10x7 windy gridworld with start (0, 3),
// goal (7, 3), a reward of -1 per step, and a reward of 100 for reaching
// the goal
func NewDefault(windProportion float64, seed uint64,
	enders ...environment.Ender) (*WindyGridWorld, error) {
	task, err := NewGoal([]int{DefaultGoalX}, []int{DefaultGoalY},
		DefaultCols, DefaultRows, DefaultStepReward, DefaultGoalReward)
	if err != nil {
		return nil, err
	}

	start, err := NewSingleStart(DefaultStartX, DefaultStartY, DefaultCols,
		DefaultRows)
	if err != nil {
		return nil, err
	}

	return New(DefaultCols, DefaultRows, DefaultWind, windProportion, task,
		start, seed, enders...)
}

// Reset starts a new episode
func (g *WindyGridWorld) Reset() (timestep.TimeStep, error) {
	start := g.Start()
	if start < 0 || start >= g.NumStates() {
		return timestep.TimeStep{}, fmt.Errorf("reset: start state %d "+
			"out of range [0, %d)", start, g.NumStates())
	}

	g.position = start
	g.currentStep = timestep.New(timestep.First, 0, start, 0)
	return g.currentStep, nil
}

// Step takes one step in the environment
func (g *WindyGridWorld) Step(action int) (timestep.TimeStep, bool, error) {
	if g.position < 0 {
		return timestep.TimeStep{}, false, fmt.Errorf("step: environment " +
			"must be reset before stepping")
	}
	if g.currentStep.Last() {
		return timestep.TimeStep{}, false, fmt.Errorf("step: episode has " +
			"ended, reset the environment")
	}
	if action < 0 || action >= numActions {
		return timestep.TimeStep{}, false, fmt.Errorf("step: action %d "+
			"out of range [0, %d)", action, numActions)
	}

	x, y := g.Coordinates()
	switch action {
	case Left:
		x--
	case Right:
		x++
	case Up:
		y++
	case Down:
		y--
	}
	x = intutils.Clip(x, 0, g.cols-1)
	y = intutils.Clip(y, 0, g.rows-1)

	if g.rng.Float64() < g.windProportion {
		y = intutils.Clip(y+g.wind[x], 0, g.rows-1)
	}

	state := g.position
	next := cToInd(x, y, g.cols)
	g.position = next

	reward := g.GetReward(state, action, next)
	stepType := timestep.Mid
	if g.AtGoal(next) {
		stepType = timestep.Last
	}

	step := timestep.New(stepType, reward, next, g.currentStep.Number+1)
	for _, ender := range g.enders {
		ender.End(&step)
	}
	g.currentStep = step

	return step, step.Last(), nil
}

// NumStates returns the number of states in the environment
func (g *WindyGridWorld) NumStates() int {
	return g.cols * g.rows
}

// NumActions returns the number of actions in the environment
func (g *WindyGridWorld) NumActions() int {
	return numActions
}

// Dims gets the columns and rows of the GridWorld
func (g *WindyGridWorld) Dims() (cols, rows int) {
	return g.cols, g.rows
}

// Wind returns the upward wind strength of each column
func (g *WindyGridWorld) Wind() []int {
	w := make([]int, len(g.wind))
	copy(w, g.wind)
	return w
}

// Coordinates returns the (x, y) coordinates of the agent
func (g *WindyGridWorld) Coordinates() (int, int) {
	return indToC(g.position, g.cols)
}

// State returns the index of the cell at (x, y)
func (g *WindyGridWorld) State(x, y int) int {
	return cToInd(x, y, g.cols)
}

func (g *WindyGridWorld) String() string {
	str := "WindyGridWorld | At: (%d, %d)  |   Goal: %v  |  Bounds: (%d, %d)"
	x, y := g.Coordinates()
	return fmt.Sprintf(str, x, y, g.Task, g.cols, g.rows)
}

func cToInd(x, y, cols int) int {
	return y*cols + x
}

func indToC(ind, cols int) (int, int) {
	y := ind / cols
	x := ind - (y * cols)
	return x, y
}
