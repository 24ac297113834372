// Package tool implements the sailtool inspection commands: poke at mesh
// and checkpoint files, and browse the run history a driver left behind.
package tool

import (
	"log/slog"
	"os"

	"github.com/me/sailfish/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagDB        string
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for sailtool.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sailtool",
		Short: "sailtool — inspect sailfish meshes, checkpoints, and run history",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(flagLogLevel, flagLogFormat, os.Stderr)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagDB, "db", "history.db", "Run history database path")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newMeshCmd(),
		newRunsCmd(),
		newCheckpointsCmd(),
	)

	return root
}
