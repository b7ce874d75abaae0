// Package experiment implements functionality for running experiments
// with tabular model-based agents.
//
// An experiment runs every configured agent with every planning budget
// on every configured environment for a number of independent
// repetitions and averages the resulting learning curves.
package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/mbrl/agent"
	env "github.com/samuelfneumann/mbrl/environment"
	"github.com/samuelfneumann/mbrl/experiment/trackers"
	"github.com/samuelfneumann/mbrl/utils/matutils"
	"github.com/samuelfneumann/mbrl/utils/progressbar"
)

// BaselineLabel labels the Dyna-Q curve with no planning, which is
// Q-learning
const BaselineLabel = "Q-learning"

// Runner runs the experiment described by a Config
type Runner struct {
	cfg    Config
	logger *slog.Logger
	bar    *progressbar.ManualProgressBar
}

// NewRunner returns a new Runner for cfg. If progress is not nil, a
// progress bar is written to it.
func NewRunner(cfg Config, logger *slog.Logger,
	progress io.Writer) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("newRunner: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := &Runner{cfg: cfg, logger: logger}
	if progress != nil {
		r.bar = progressbar.NewManualProgressBar(progress, 50,
			r.totalRepetitions())
	}
	return r, nil
}

// Run runs the experiment described by cfg. See Runner.Run.
func Run(ctx context.Context, cfg Config,
	logger *slog.Logger) ([]trackers.Curve, error) {
	r, err := NewRunner(cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

// Run runs every agent Config with every planning budget on every wind
// proportion and returns one averaged curve for each combination
func (r *Runner) Run(ctx context.Context) ([]trackers.Curve, error) {
	var curves []trackers.Curve

	for _, wind := range r.cfg.Winds() {
		envConfig := r.cfg.Environment
		envConfig.WindProportion = wind
		factory := envConfig.Factory()

		for _, spec := range r.cfg.Agents {
			configs, err := agent.Configs(spec.Configs.ConfigList)
			if err != nil {
				return nil, fmt.Errorf("run: %w", err)
			}

			for _, config := range configs {
				for _, planning := range spec.Planning {
					label := curveLabel(config, planning, len(configs) > 1)
					r.logger.Info("running", "label", label, "wind", wind,
						"repetitions", r.cfg.Repetitions)

					curve, err := r.RunCurve(ctx, factory, config, planning)
					if err != nil {
						return nil, fmt.Errorf("run: %v (wind=%v): %w", label,
							wind, err)
					}
					curve.Label = label
					curve.Wind = wind
					curves = append(curves, curve)

					final, _ := curve.Final()
					r.logger.Info("finished", "label", label, "wind", wind,
						"final_return", final, "runtime", curve.Runtime)
				}
			}
		}
	}

	if r.bar != nil {
		r.bar.Close()
	}
	return curves, nil
}

// RunCurve runs the configured number of independent repetitions of
// the agent described by config on environments created by factory,
// and returns the learning curve averaged over repetitions.
// Repetitions are run concurrently, each owning its own environments
// and agent.
func (r *Runner) RunCurve(ctx context.Context, factory env.Factory,
	config agent.Config, planning int) (trackers.Curve, error) {
	times := r.cfg.Times()
	reps := r.cfg.Repetitions

	returns := make([][]float64, reps)
	runtimes := make([]time.Duration, reps)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for rep := 0; rep < reps; rep++ {
		rep := rep
		g.Go(func() error {
			start := time.Now()
			curve, err := r.repetition(ctx, factory, config, planning, rep)
			if err != nil {
				return fmt.Errorf("repetition %d: %w", rep, err)
			}
			runtimes[rep] = time.Since(start)

			if len(curve) != len(times) {
				return fmt.Errorf("repetition %d: have %d evaluations, "+
					"want %d", rep, len(curve), len(times))
			}
			returns[rep] = curve

			if r.bar != nil {
				r.bar.Increment()
				r.bar.Display()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return trackers.Curve{}, err
	}

	// One row per evaluation point, one column per repetition
	data := mat.NewDense(len(times), reps, nil)
	for rep, curve := range returns {
		data.SetCol(rep, curve)
	}
	mean := matutils.RowMean(data)

	var total time.Duration
	for _, d := range runtimes {
		total += d
	}

	return trackers.Curve{
		Type:     string(config.Type()),
		Planning: planning,
		Times:    times,
		Returns:  mean.RawVector().Data,
		Runtime:  total / time.Duration(reps),
	}, nil
}

// repetition runs a single repetition and returns its evaluations
func (r *Runner) repetition(ctx context.Context, factory env.Factory,
	config agent.Config, planning, rep int) ([]float64, error) {
	seeds := rand.New(rand.NewSource(r.cfg.Seed + uint64(rep)))

	e, err := factory(seeds.Uint64())
	if err != nil {
		return nil, err
	}

	a, err := config.CreateAgent(e, seeds.Uint64())
	if err != nil {
		return nil, err
	}

	o := NewOnline(e, a, factory, r.cfg.Settings, planning, seeds.Uint64())
	if err := o.Run(ctx); err != nil {
		return nil, err
	}
	return o.Curve().Returns(), nil
}

func (r *Runner) workers() int {
	if r.cfg.Workers > 0 {
		return r.cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (r *Runner) totalRepetitions() int {
	n := 0
	for _, spec := range r.cfg.Agents {
		n += spec.Configs.Len() * len(spec.Planning)
	}
	return n * len(r.cfg.Winds()) * r.cfg.Repetitions
}

func curveLabel(config agent.Config, planning int, withConfig bool) string {
	var label string
	if config.Type() == agent.Dyna && planning == 0 {
		label = BaselineLabel
	} else {
		label = fmt.Sprintf("%v (planning=%d)", config.Type(), planning)
	}

	if withConfig {
		label += fmt.Sprintf(" %+v", config)
	}
	return label
}

// BestPlanning returns the curve of agentType on wind with the highest
// final return, excluding curves with no planning. Ties are broken
// toward the smallest planning budget.
func BestPlanning(curves []trackers.Curve, agentType agent.Type,
	wind float64) (trackers.Curve, error) {
	var best trackers.Curve
	found := false

	for _, curve := range curves {
		if curve.Type != string(agentType) || curve.Wind != wind ||
			curve.Planning == 0 {
			continue
		}

		final, err := curve.Final()
		if err != nil {
			return trackers.Curve{}, err
		}

		if !found {
			best, found = curve, true
			continue
		}

		bestFinal, _ := best.Final()
		if final > bestFinal || (final == bestFinal &&
			curve.Planning < best.Planning) {
			best = curve
		}
	}

	if !found {
		return trackers.Curve{}, fmt.Errorf("bestPlanning: no %v curves "+
			"with planning for wind %v", agentType, wind)
	}
	return best, nil
}

// Baseline returns the Q-learning curve on wind, which is the Dyna-Q
// curve with no planning
func Baseline(curves []trackers.Curve, wind float64) (trackers.Curve, error) {
	for _, curve := range curves {
		if curve.Type == string(agent.Dyna) && curve.Planning == 0 &&
			curve.Wind == wind {
			return curve, nil
		}
	}
	return trackers.Curve{}, fmt.Errorf("baseline: no %v curve without "+
		"planning for wind %v", agent.Dyna, wind)
}

// Filter returns the curves of agentType on wind
func Filter(curves []trackers.Curve, agentType agent.Type,
	wind float64) []trackers.Curve {
	var filtered []trackers.Curve
	for _, curve := range curves {
		if curve.Type == string(agentType) && curve.Wind == wind {
			filtered = append(filtered, curve)
		}
	}
	return filtered
}
