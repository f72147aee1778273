// Package shared provides constants and helpers used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"errors"
	"fmt"

	apperrors "github.com/openmotor-dataset/openmotor/internal/errors"
)

// Command group IDs for organizing help output
const (
	GroupChecking      = "checking"
	GroupConfiguration = "configuration"
)

// Exit codes for CLI commands
const (
	ExitSuccess           = 0
	ExitValidationFailed  = 1
	ExitInvalidArguments  = 3
	ExitMissingInputFiles = 4
)

// exitError carries an exit code for an outcome that has already been
// reported to the user.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// IsExitError reports whether err only carries an exit code.
func IsExitError(err error) bool {
	var e *exitError
	return errors.As(err, &e)
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	if cliErr := apperrors.AsCLIError(err); cliErr != nil {
		return CategoryExitCode(cliErr.Category)
	}
	return ExitValidationFailed
}

// CategoryExitCode maps an error category to an exit code.
func CategoryExitCode(category apperrors.ErrorCategory) int {
	switch category {
	case apperrors.Argument, apperrors.Configuration:
		return ExitInvalidArguments
	case apperrors.Prerequisite:
		return ExitMissingInputFiles
	default:
		return ExitValidationFailed
	}
}
