package modelbased

import (
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/mbrl/agent/tabular"
	"github.com/samuelfneumann/mbrl/environment"
)

// Evaluate runs episodes greedy episodes of at most maxSteps steps on
// env and returns the mean undiscounted return. Greedy ties are broken
// toward the lowest action index. Evaluation never changes the
// Agent's action values or model.
func (a *Agent) Evaluate(env environment.Environment, episodes,
	maxSteps int) (float64, error) {
	if episodes < 1 {
		return 0, tabular.InvalidArgument("evaluate", "episodes must be "+
			"> 0, have %d", episodes)
	}
	if maxSteps < 1 {
		return 0, tabular.InvalidArgument("evaluate", "max steps must be "+
			"> 0, have %d", maxSteps)
	}

	returns := make([]float64, episodes)
	for i := range returns {
		step, err := env.Reset()
		if err != nil {
			return 0, err
		}

		for t := 0; t < maxSteps; t++ {
			action, err := a.target.Select(step.State)
			if err != nil {
				return 0, err
			}

			var done bool
			step, done, err = env.Step(action)
			if err != nil {
				return 0, err
			}
			returns[i] += step.Reward

			if done {
				break
			}
		}
	}

	return stat.Mean(returns, nil), nil
}
