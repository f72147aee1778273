// Package check provides the check command that validates a submission folder.
package check

import (
	"github.com/spf13/cobra"
)

// Register adds the check command to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(checkCmd)
}
