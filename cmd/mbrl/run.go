package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/mbrl/agent"
	"github.com/samuelfneumann/mbrl/experiment"
	"github.com/samuelfneumann/mbrl/experiment/plot"
	"github.com/samuelfneumann/mbrl/experiment/trackers"
)

// CurvesFile is the name of the file in the output directory which
// holds the averaged learning curves of a run
const CurvesFile = "curves.bin"

func newRunCmd(newLogger loggerFunc) *cobra.Command {
	var (
		configFile string
		outDir     string
		window     int
		progress   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an experiment described by a YAML configuration file",
		Long: `Runs every configured agent with every planning budget on every
wind proportion, averaging learning curves over repetitions. The
averaged curves are saved to the output directory together with one
HTML page of plots per wind proportion.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}

			cfg, err := experiment.Load(configFile)
			if err != nil {
				return err
			}

			var bar io.Writer
			if progress {
				bar = cmd.ErrOrStderr()
			}
			runner, err := experiment.NewRunner(cfg, logger, bar)
			if err != nil {
				return err
			}

			curves, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("run: %w", err)
			}
			curvesFile := filepath.Join(outDir, CurvesFile)
			if err := trackers.SaveCurves(curvesFile, curves); err != nil {
				return err
			}
			logger.Info("saved curves", "file", curvesFile)

			for _, wind := range cfg.Winds() {
				page := filepath.Join(outDir, fmt.Sprintf("wind-%v.html", wind))
				if err := writePlots(page, curves, wind, window,
					logger); err != nil {
					return err
				}
				logger.Info("saved plots", "file", page)
			}

			fmt.Fprintln(cmd.OutOrStdout(), runtimeTable(curves))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "",
		"experiment configuration file")
	cmd.Flags().StringVarP(&outDir, "out", "o", "results",
		"directory to write curves and plots to")
	cmd.Flags().IntVar(&window, "window", plot.DefaultWindow,
		"moving average window used to smooth plotted curves")
	cmd.Flags().BoolVar(&progress, "progress", true,
		"display a progress bar")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// writePlots writes a page to filename with one chart per agent type
// and a chart comparing Q-learning with the best planning budget of
// each agent type
func writePlots(filename string, curves []trackers.Curve, wind float64,
	window int, logger *slog.Logger) error {
	baseline, err := experiment.Baseline(curves, wind)
	if err != nil {
		logger.Warn("no baseline curve", "wind", wind, "error", err)
	}

	var lines []*charts.Line
	comparison := []trackers.Curve{}
	if err == nil {
		comparison = append(comparison, baseline)
	}

	for _, t := range []agent.Type{agent.Dyna, agent.PrioritizedSweeping} {
		filtered := experiment.Filter(curves, t, wind)
		if t != agent.Dyna && err == nil {
			filtered = append([]trackers.Curve{baseline}, filtered...)
		}
		if len(filtered) == 0 {
			continue
		}

		line, lerr := plot.LearningCurves(fmt.Sprintf("%v (wind=%v)", t,
			wind), window, filtered...)
		if lerr != nil {
			return lerr
		}
		lines = append(lines, line)

		best, berr := experiment.BestPlanning(curves, t, wind)
		if berr != nil {
			logger.Debug("no planning curve", "type", t, "wind", wind)
			continue
		}
		best.Label = "best " + best.Label
		comparison = append(comparison, best)
	}

	if len(comparison) > 1 {
		line, err := plot.LearningCurves(fmt.Sprintf("Comparison (wind=%v)",
			wind), window, comparison...)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("writePlots: %w", err)
	}
	defer f.Close()

	if err := plot.Render(f, lines...); err != nil {
		return fmt.Errorf("writePlots: %w", err)
	}
	return f.Close()
}

// runtimeTable returns a table of the mean runtime and final return of
// each curve
func runtimeTable(curves []trackers.Curve) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Agent", "Wind", "Final return", "Runtime")

	for _, curve := range curves {
		final := "-"
		if v, err := curve.Final(); err == nil {
			final = strconv.FormatFloat(v, 'f', 2, 64)
		}
		t.Row(curve.Label, strconv.FormatFloat(curve.Wind, 'g', -1, 64),
			final, curve.Runtime.String())
	}

	return t.String()
}
