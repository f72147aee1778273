package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDefaults_CoversEveryKey(t *testing.T) {
	t.Parallel()

	defaults := GetDefaults()
	for _, key := range []string{
		"data_marker", "data_ext", "data_prefix",
		"readme_marker", "readme_ext", "readme_prefix",
		"index_ext", "index_sheet",
		"success_report", "error_report",
		"preview_rows", "skip_confirmations", "show_progress",
		"state_dir", "max_history", "watch_debounce_ms",
	} {
		assert.Contains(t, defaults, key)
	}
}

func TestGetDefaults_PrefixLengths(t *testing.T) {
	t.Parallel()

	defaults := GetDefaults()
	assert.Len(t, defaults["data_prefix"], 5)
	assert.Len(t, defaults["readme_prefix"], 7)
}
