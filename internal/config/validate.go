package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
}

// ValidateConfigValues checks cross-field constraints that struct tags cannot express.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	if !strings.Contains(cfg.DataPrefix, cfg.DataMarker) {
		return &ValidationError{
			FilePath: filePath,
			Field:    "data_prefix",
			Message:  fmt.Sprintf("must contain data_marker %q", cfg.DataMarker),
		}
	}
	if !strings.Contains(cfg.ReadmePrefix, cfg.ReadmeMarker) {
		return &ValidationError{
			FilePath: filePath,
			Field:    "readme_prefix",
			Message:  fmt.Sprintf("must contain readme_marker %q", cfg.ReadmeMarker),
		}
	}
	for field, name := range map[string]string{
		"success_report": cfg.SuccessReport,
		"error_report":   cfg.ErrorReport,
	} {
		if filepath.Base(name) != name {
			return &ValidationError{
				FilePath: filePath,
				Field:    field,
				Message:  "must be a file name, not a path",
			}
		}
	}
	if strings.EqualFold(cfg.DataExt, cfg.IndexExt) {
		return &ValidationError{
			FilePath: filePath,
			Field:    "index_ext",
			Message:  "must differ from data_ext",
		}
	}
	return nil
}
