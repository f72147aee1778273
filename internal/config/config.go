// Package config loads openmotor settings from defaults, JSON config files
// and OPENMOTOR_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "OPENMOTOR_"

// Configuration represents the openmotor CLI configuration
type Configuration struct {
	// File family naming
	DataMarker   string `koanf:"data_marker" yaml:"data_marker" validate:"required"`
	DataExt      string `koanf:"data_ext" yaml:"data_ext" validate:"required,startswith=."`
	DataPrefix   string `koanf:"data_prefix" yaml:"data_prefix" validate:"required"`
	ReadmeMarker string `koanf:"readme_marker" yaml:"readme_marker" validate:"required"`
	ReadmeExt    string `koanf:"readme_ext" yaml:"readme_ext" validate:"required,startswith=."`
	ReadmePrefix string `koanf:"readme_prefix" yaml:"readme_prefix" validate:"required"`
	IndexExt     string `koanf:"index_ext" yaml:"index_ext" validate:"required,startswith=."`
	IndexSheet   string `koanf:"index_sheet" yaml:"index_sheet"` // empty selects the first sheet

	// Report output
	SuccessReport string `koanf:"success_report" yaml:"success_report" validate:"required,nefield=ErrorReport"`
	ErrorReport   string `koanf:"error_report" yaml:"error_report" validate:"required"`

	PreviewRows       int    `koanf:"preview_rows" yaml:"preview_rows" validate:"min=0,max=1000"`
	SkipConfirmations bool   `koanf:"skip_confirmations" yaml:"skip_confirmations"` // also set by OPENMOTOR_YES
	ShowProgress      bool   `koanf:"show_progress" yaml:"show_progress"`
	StateDir          string `koanf:"state_dir" yaml:"state_dir" validate:"required"`
	MaxHistory        int    `koanf:"max_history" yaml:"max_history" validate:"min=0"`
	WatchDebounceMs   int    `koanf:"watch_debounce_ms" yaml:"watch_debounce_ms" validate:"min=10,max=60000"`
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	if globalPath, err := GlobalConfigPath(); err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := ValidateConfigValues(&cfg, localConfigPath); err != nil {
		return nil, err
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)

	if os.Getenv(EnvPrefix+"YES") != "" {
		cfg.SkipConfirmations = true
	}

	return &cfg, nil
}

// GlobalConfigPath returns ~/.openmotor/config.json.
func GlobalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".openmotor", "config.json"), nil
}

// envTransform converts environment variable names to config keys
// Example: OPENMOTOR_PREVIEW_ROWS -> preview_rows
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
