package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/mbrl/agent"
	"github.com/samuelfneumann/mbrl/agent/tabular/dyna"
	"github.com/samuelfneumann/mbrl/agent/tabular/modelbased"
	"github.com/samuelfneumann/mbrl/agent/tabular/planner"
	"github.com/samuelfneumann/mbrl/agent/tabular/prioritized"
	"github.com/samuelfneumann/mbrl/environment/envconfig"
	"github.com/samuelfneumann/mbrl/experiment"
	"github.com/samuelfneumann/mbrl/experiment/trackers"
)

// demoOptions are the flags of the demo command
type demoOptions struct {
	agentType    string
	planning     int
	steps        int
	wind         float64
	learningRate float64
	gamma        float64
	epsilon      float64
	seed         uint64
	colour       bool
}

func newDemoCmd(newLogger loggerFunc) *cobra.Command {
	var o demoOptions

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Train a single agent and render its greedy policy",
		Long: `Trains a single Dyna-Q or prioritized sweeping agent online on the
windy gridworld, then prints the mean return of its greedy policy and
renders the greedy action of each cell.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}

			envConfig := envconfig.Default()
			envConfig.WindProportion = o.wind
			if err := envConfig.Validate(); err != nil {
				return err
			}
			factory := envConfig.Factory()

			e, err := envConfig.Create(o.seed)
			if err != nil {
				return err
			}

			opt := modelbased.WithLogger(logger)
			var a *modelbased.Agent
			switch agent.Type(o.agentType) {
			case agent.Dyna:
				a, err = dyna.New(e.NumStates(), e.NumActions(), dyna.Config{
					LearningRate: o.learningRate,
					Gamma:        o.gamma,
				}, o.seed+1, opt)
			case agent.PrioritizedSweeping:
				a, err = prioritized.New(e.NumStates(), e.NumActions(),
					prioritized.Config{
						LearningRate:   o.learningRate,
						Gamma:          o.gamma,
						PriorityCutoff: planner.DefaultPriorityCutoff,
					}, o.seed+1, opt)
			default:
				err = fmt.Errorf("demo: %w: %q", agent.ErrUnknownType,
					o.agentType)
			}
			if err != nil {
				return err
			}

			settings := experiment.Settings{
				Timesteps:        o.steps,
				EvalInterval:     o.steps,
				EvalEpisodes:     experiment.DefaultEvalEpisodes,
				MaxEpisodeLength: experiment.DefaultMaxEpisodeLength,
				Epsilon:          o.epsilon,
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			lengths := trackers.NewEpisodeLength("")
			online := experiment.NewOnline(e, a, factory, settings,
				o.planning, o.seed+2, lengths)
			if err := online.Run(cmd.Context()); err != nil {
				return err
			}

			episodes := lengths.Lengths()
			logger.Info("trained", "agent", o.agentType,
				"planning", o.planning, "steps", o.steps,
				"episodes", len(episodes))
			if len(episodes) > 0 {
				logger.Info("episode length", "mean",
					stat.Mean(episodes, nil), "last", episodes[len(episodes)-1])
			}

			evalEnv, err := factory(o.seed + 3)
			if err != nil {
				return err
			}
			ret, err := a.Evaluate(evalEnv, experiment.DefaultEvalEpisodes,
				experiment.DefaultMaxEpisodeLength)
			if err != nil {
				return err
			}

			logger.Debug("action values", "q", a.QTable())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Mean greedy return: %.2f\n", ret)

			if _, err := e.Reset(); err != nil {
				return err
			}
			return e.Render(out, a.QTable(), o.colour)
		},
	}

	cmd.Flags().StringVarP(&o.agentType, "agent", "a", string(agent.Dyna),
		"agent to train (dyna, ps)")
	cmd.Flags().IntVarP(&o.planning, "planning", "k", 5,
		"planning updates per real step")
	cmd.Flags().IntVarP(&o.steps, "steps", "n", experiment.DefaultTimesteps,
		"number of real timesteps to train for")
	cmd.Flags().Float64Var(&o.wind, "wind", 0.9,
		"probability that wind is applied on each step")
	cmd.Flags().Float64Var(&o.learningRate, "learning-rate", 0.2,
		"learning rate of real and simulated updates")
	cmd.Flags().Float64Var(&o.gamma, "gamma", 1.0, "discount factor")
	cmd.Flags().Float64Var(&o.epsilon, "epsilon", experiment.DefaultEpsilon,
		"exploration probability of the behaviour policy")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "random seed")
	cmd.Flags().BoolVar(&o.colour, "colour", true,
		"render the policy with ANSI colours")

	return cmd
}
