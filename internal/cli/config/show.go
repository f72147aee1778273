package config

import (
	"fmt"

	"github.com/openmotor-dataset/openmotor/internal/cli/shared"
	"github.com/openmotor-dataset/openmotor/internal/config"
	apperrors "github.com/openmotor-dataset/openmotor/internal/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect openmotor configuration",
	Long: `Inspect openmotor configuration.

Configuration is read from, in increasing priority:
  built-in defaults
  ~/.openmotor/config.json
  the file given by --config (default .openmotor/config.json)
  OPENMOTOR_* environment variables (e.g. OPENMOTOR_PREVIEW_ROWS=0)`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Example: `  openmotor config show
  OPENMOTOR_PREVIEW_ROWS=0 openmotor config show`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return apperrors.ConfigParseError(configPath, err)
		}
		return showConfig(cmd, cfg)
	},
}

func init() {
	configCmd.GroupID = shared.GroupConfiguration
	configCmd.AddCommand(configShowCmd)
}

func showConfig(cmd *cobra.Command, cfg *config.Configuration) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
