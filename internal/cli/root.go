package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"memeticFlowShop/internal/config"
	"memeticFlowShop/internal/logging"
)

var (
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the flowshop CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "flowshop",
		Short: "Memetic solver for the permutation flowshop problem",
		Long: `flowshop searches for a job order that minimises the makespan of a
permutation flowshop, using a genetic algorithm with PMX crossover, swap
mutation, elitism and pairwise-swap local search.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(flagLogLevel), flagLogFormat, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging (one record per generation)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newSolveCmd(),
		newBenchCmd(),
	)

	return root
}

// useFileLogging rebuilds the logger from a run file's log settings.
// Flags given on the command line win.
func useFileLogging(cmd *cobra.Command, f config.File) {
	level, format := flagLogLevel, flagLogFormat
	if f.LogLevel != "" && !flagDebug && !cmd.Flag("log-level").Changed {
		level = f.LogLevel
	}
	if f.LogFormat != "" && !cmd.Flag("log-format").Changed {
		format = f.LogFormat
	}
	logger = logging.NewLoggerWithWriter(logging.ParseLevel(level), format, cmd.ErrOrStderr())
}
