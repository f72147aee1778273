package shared

import (
	apperrors "github.com/openmotor-dataset/openmotor/internal/errors"
	"github.com/spf13/cobra"
)

// ExactArgs is cobra.ExactArgs with failures reported as Argument errors,
// so a wrong argument count exits with ExitInvalidArguments.
func ExactArgs(n int) cobra.PositionalArgs {
	check := cobra.ExactArgs(n)
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return apperrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
				"Run '"+cmd.CommandPath()+" --help' for usage")
		}
		return nil
	}
}

// FlagError converts a flag parsing error into an Argument error. Install it
// with SetFlagErrorFunc on the root command; subcommands inherit it.
func FlagError(cmd *cobra.Command, err error) error {
	return apperrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
		"Run '"+cmd.CommandPath()+" --help' for the list of flags")
}
