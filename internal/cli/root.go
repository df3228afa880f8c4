package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Barritosaurus/schedsim/internal/config"
	"github.com/Barritosaurus/schedsim/internal/logging"
)

var (
	flagConfig    string
	flagDB        string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	cfg    config.Config
	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the schedsim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "schedsim",
		Short: "schedsim: CPU scheduling simulator",
		Long: "schedsim replays a process dataset under classic CPU scheduling policies " +
			"and reports Gantt charts, per-process timings and aggregate metrics.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			if flagLogLevel != "" {
				c.Log.Level = flagLogLevel
			}
			if flagLogFormat != "" {
				c.Log.Format = flagLogFormat
			}
			if flagDebug {
				c.Log.Level = "debug"
			}
			if flagDB != "" {
				c.Store.Path = flagDB
			}
			cfg = c
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format, cmd.ErrOrStderr())
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite results database (overrides store.path)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newCompareCmd(),
		newPoliciesCmd(),
		newServeCmd(),
		newRunsCmd(),
	)

	return root
}
