package cli

import (
	"github.com/openmotor-dataset/openmotor/internal/cli/shared"
)

// Exit codes for the openmotor CLI (re-exported from shared)
const (
	// ExitSuccess indicates the check passed, or the user declined the summary
	ExitSuccess = shared.ExitSuccess

	// ExitValidationFailed indicates the submission failed a check
	ExitValidationFailed = shared.ExitValidationFailed

	// ExitInvalidArguments indicates invalid command arguments or configuration
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitMissingInputFiles indicates a file family or dataset content is missing
	ExitMissingInputFiles = shared.ExitMissingInputFiles
)

// ExitCode returns the exit code for an error returned by Execute.
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
