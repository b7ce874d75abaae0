package trackers

import (
	"fmt"
	"time"
)

// Curve is an averaged learning curve: the mean greedy return of an
// agent at each evaluation point
type Curve struct {
	Label    string
	Type     string
	Planning int
	Wind     float64
	Times    []int
	Returns  []float64

	// Runtime is the mean wall-clock time of a single repetition
	Runtime time.Duration
}

// Final returns the return at the last evaluation point
func (c Curve) Final() (float64, error) {
	if len(c.Returns) == 0 {
		return 0, fmt.Errorf("final: curve %q is empty", c.Label)
	}
	return c.Returns[len(c.Returns)-1], nil
}

// LearningCurve records the returns of evaluations performed during a
// single run of an agent
type LearningCurve struct {
	times    []int
	returns  []float64
	filename string
}

// NewLearningCurve returns a new LearningCurve which saves its data to
// filename
func NewLearningCurve(filename string) *LearningCurve {
	return &LearningCurve{filename: filename}
}

// Record records that an evaluation at timestep t had return ret
func (l *LearningCurve) Record(t int, ret float64) {
	l.times = append(l.times, t)
	l.returns = append(l.returns, ret)
}

// Times returns the timesteps at which evaluations were recorded
func (l *LearningCurve) Times() []int {
	times := make([]int, len(l.times))
	copy(times, l.times)
	return times
}

// Returns returns the recorded evaluation returns
func (l *LearningCurve) Returns() []float64 {
	returns := make([]float64, len(l.returns))
	copy(returns, l.returns)
	return returns
}

// Save saves the recorded returns to disk. The saved data can be loaded
// with LoadData.
func (l *LearningCurve) Save() error {
	return save(l.filename, l.returns)
}

// SaveCurves saves curves to filename
func SaveCurves(filename string, curves []Curve) error {
	return save(filename, curves)
}

// LoadCurves loads curves saved with SaveCurves
func LoadCurves(filename string) ([]Curve, error) {
	var curves []Curve
	if err := load(filename, &curves); err != nil {
		return nil, err
	}
	return curves, nil
}
