// Package config_test tests configuration loading, merging hierarchy, and environment variable overrides.
// Related: internal/config/config.go
// Tags: config, loading, merging, env-vars, json, precedence
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points HOME at an empty directory so a real ~/.openmotor
// config on the machine cannot leak into the test.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.DataMarker)
	assert.Equal(t, ".csv", cfg.DataExt)
	assert.Equal(t, "data_", cfg.DataPrefix)
	assert.Equal(t, "readme_", cfg.ReadmePrefix)
	assert.Equal(t, ".xlsx", cfg.IndexExt)
	assert.Equal(t, "Confirmation_Message.txt", cfg.SuccessReport)
	assert.Equal(t, "Error_Message.txt", cfg.ErrorReport)
	assert.Equal(t, 8, cfg.PreviewRows)
	assert.False(t, cfg.SkipConfirmations)
	assert.Equal(t, filepath.Join(home, ".openmotor", "state"), cfg.StateDir)
}

func TestLoad_LocalOverride(t *testing.T) {
	isolateHome(t)

	configPath := filepath.Join(t.TempDir(), "config.json")
	configContent := `{
		"preview_rows": 3,
		"index_sheet": "Datasets"
	}`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.PreviewRows)
	assert.Equal(t, "Datasets", cfg.IndexSheet)
	assert.Equal(t, "data_", cfg.DataPrefix)
}

func TestLoad_OverridePrecedence(t *testing.T) {
	home := isolateHome(t)

	globalDir := filepath.Join(home, ".openmotor")
	require.NoError(t, os.MkdirAll(globalDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config.json"),
		[]byte(`{"preview_rows": 2, "max_history": 10}`), 0644))

	localPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(localPath, []byte(`{"preview_rows": 4}`), 0644))

	t.Setenv("OPENMOTOR_MAX_HISTORY", "7")

	cfg, err := Load(localPath)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.PreviewRows, "local config overrides global")
	assert.Equal(t, 7, cfg.MaxHistory, "environment overrides global")
}

func TestLoad_EnvOverride(t *testing.T) {
	isolateHome(t)
	t.Setenv("OPENMOTOR_PREVIEW_ROWS", "12")
	t.Setenv("OPENMOTOR_ERROR_REPORT", "Errors.txt")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.PreviewRows)
	assert.Equal(t, "Errors.txt", cfg.ErrorReport)
}

func TestLoad_YesEnvSkipsConfirmations(t *testing.T) {
	isolateHome(t)
	t.Setenv("OPENMOTOR_YES", "1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.SkipConfirmations)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := map[string]struct {
		content string
		wantErr string
	}{
		"preview rows out of range": {
			content: `{"preview_rows": 5000}`,
			wantErr: "validation failed",
		},
		"extension without dot": {
			content: `{"data_ext": "csv"}`,
			wantErr: "validation failed",
		},
		"same report names": {
			content: `{"success_report": "report.txt", "error_report": "report.txt"}`,
			wantErr: "validation failed",
		},
		"prefix without marker": {
			content: `{"data_prefix": "tbl_"}`,
			wantErr: "data_prefix",
		},
		"report name is a path": {
			content: `{"error_report": "out/Error_Message.txt"}`,
			wantErr: "must be a file name",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			isolateHome(t)
			configPath := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(configPath, []byte(tc.content), 0644))

			_, err := Load(configPath)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	isolateHome(t)
	configPath := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"preview_rows": `), 0644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load local config")
}

func TestExpandHomePath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input    string
		contains string
	}{
		"tilde prefix": {
			input:    "~/.openmotor/state",
			contains: ".openmotor/state",
		},
		"absolute path": {
			input:    "/absolute/path",
			contains: "/absolute/path",
		},
		"relative path": {
			input:    "./relative/path",
			contains: "./relative/path",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			result := expandHomePath(tc.input)
			assert.Contains(t, result, tc.contains)
		})
	}
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "preview_rows", envTransform("OPENMOTOR_PREVIEW_ROWS"))
	assert.Equal(t, "skip_confirmations", envTransform("OPENMOTOR_SKIP_CONFIRMATIONS"))
}
