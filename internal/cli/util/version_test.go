package util

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/openmotor-dataset/openmotor/internal/build"
	"github.com/stretchr/testify/assert"
)

func TestPrintPlainVersion(t *testing.T) {
	// Modifies build.Version; cannot run in parallel.
	orig := build.Version
	build.Version = "v1.2.3"
	defer func() { build.Version = orig }()

	var buf bytes.Buffer
	printPlainVersion(&buf)

	assert.Contains(t, buf.String(), "openmotor v1.2.3\n")
	assert.Contains(t, buf.String(), "go: "+runtime.Version())
}

func TestPrintPrettyVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printPrettyVersion(&buf)

	assert.Contains(t, buf.String(), "Version")
	assert.Contains(t, buf.String(), "Platform")
}

func TestTruncateCommit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit string
		want   string
	}{
		"long hash":  {commit: "0123456789abcdef", want: "01234567"},
		"short hash": {commit: "abc", want: "abc"},
		"unknown":    {commit: "unknown", want: "unknown"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateCommit(tt.commit))
		})
	}
}
