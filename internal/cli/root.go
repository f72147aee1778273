// openmotor - Motor Learning Dataset submission checker

// Package cli provides the Cobra-based command line interface for openmotor.
// It wires the check command, configuration inspection, and utility commands
// (history, version) under one root command.
package cli

import (
	"context"
	"fmt"

	"github.com/openmotor-dataset/openmotor/internal/cli/check"
	"github.com/openmotor-dataset/openmotor/internal/cli/config"
	"github.com/openmotor-dataset/openmotor/internal/cli/shared"
	"github.com/openmotor-dataset/openmotor/internal/cli/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupChecking      = shared.GroupChecking
	GroupConfiguration = shared.GroupConfiguration
)

var rootCmd = &cobra.Command{
	Use:   "openmotor",
	Short: "Motor Learning Dataset submission checker",
	Long: `openmotor checks a Motor Learning Dataset submission folder before upload.

It verifies that every dataset has a data file, a readme file, and a row in
the submission spreadsheet, that every data file has the required columns,
and that the subject and trial counts reported in the spreadsheet match the
data.`,
	Example: `  # Check a submission folder
  openmotor check ./my_submission

  # Show past checks
  openmotor history -n 10

  # Show the effective configuration
  openmotor config show`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		logger, err := shared.NewLogger(debug)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		shared.SetLogger(logger)
		logger.Debug("starting", zap.String("command", cmd.CommandPath()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = shared.Logger().Sync()
	},
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: GroupChecking, Title: "Checking:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	rootCmd.SetFlagErrorFunc(shared.FlagError)
	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", ".openmotor/config.json", "Path to config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	check.Register(rootCmd)
	config.Register(rootCmd)
	util.Register(rootCmd)
}
