// Command mbrl runs tabular model-based reinforcement learning
// experiments on the windy gridworld.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	_ "github.com/samuelfneumann/mbrl/agent/tabular/dyna"
	_ "github.com/samuelfneumann/mbrl/agent/tabular/prioritized"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "mbrl",
		Short: "Tabular model-based reinforcement learning experiments",
		Long: `mbrl compares Q-learning, Dyna-Q and prioritized sweeping on the
windy gridworld across planning budgets and wind proportions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")

	logger := func(cmd *cobra.Command) (*slog.Logger, error) {
		lvl, err := parseLevel(logLevel)
		if err != nil {
			return nil, err
		}
		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
			&slog.HandlerOptions{Level: lvl})), nil
	}

	root.AddCommand(newRunCmd(logger), newDemoCmd(logger))
	return root
}

// loggerFunc builds the logger configured by the persistent flags
type loggerFunc func(*cobra.Command) (*slog.Logger, error)

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("parseLevel: unknown log level %q", s)
	}
	return lvl, nil
}
