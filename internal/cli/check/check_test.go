// Package check tests the check command end to end against on-disk folders.
// Related: internal/cli/check/check.go, internal/cli/check/watch.go
// Tags: check, cli, report, history, watch

package check

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/openmotor-dataset/openmotor/internal/cli/shared"
	"github.com/openmotor-dataset/openmotor/internal/config"
	apperrors "github.com/openmotor-dataset/openmotor/internal/errors"
	"github.com/openmotor-dataset/openmotor/internal/history"
	"github.com/openmotor-dataset/openmotor/internal/submission"
	"github.com/openmotor-dataset/openmotor/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// isolate points HOME at a temp dir so no real config or history is used.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OPENMOTOR_YES", "")
	t.Setenv("COLUMNS", "")
	return home
}

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "openmotor", SilenceErrors: true, SilenceUsage: true}
	root.PersistentFlags().StringP("config", "c", filepath.Join(t.TempDir(), "config.json"), "")
	root.PersistentFlags().BoolP("verbose", "v", false, "")
	root.AddGroup(&cobra.Group{ID: shared.GroupChecking, Title: "Checking:"})
	root.SetFlagErrorFunc(shared.FlagError)
	root.AddCommand(newCheckCmd())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func loadHistory(t *testing.T, home string) []history.HistoryEntry {
	t.Helper()
	h, err := history.LoadHistory(filepath.Join(home, ".openmotor", "state"))
	require.NoError(t, err)
	return h.Entries
}

func TestCheck_PassingWithYes(t *testing.T) {
	home := isolate(t)
	dir := testutil.TempSubmission(t, testutil.Valid(2)...)

	out, err := execute(t, "", "check", dir, "--yes")
	require.NoError(t, err)

	assert.Contains(t, out, "Congratulations! Your data passed the quality check.")
	assert.Contains(t, out, "- Number of datasets: 2")
	assert.NotContains(t, out, confirmQuestion)

	content, err := os.ReadFile(filepath.Join(dir, "Confirmation_Message.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Congratulations!"))

	entries := loadHistory(t, home)
	require.Len(t, entries, 1)
	assert.Equal(t, history.StatusPassed, entries[0].Status)
	assert.Equal(t, 2, entries[0].Datasets)
	assert.Equal(t, filepath.Join(dir, "Confirmation_Message.txt"), entries[0].Report)
}

func TestCheck_Confirmation(t *testing.T) {
	tests := map[string]struct {
		input      string
		wantReport bool
		wantStatus string
	}{
		"confirmed": {input: "y\n", wantReport: true, wantStatus: history.StatusPassed},
		"declined":  {input: "n\n", wantStatus: history.StatusDeclined},
		"no input":  {input: "", wantStatus: history.StatusDeclined},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			home := isolate(t)
			dir := testutil.TempSubmission(t, testutil.Valid(1)...)

			out, err := execute(t, tt.input, "check", dir)
			require.NoError(t, err, "declining is not an error")

			assert.Contains(t, out, confirmQuestion+" [y/N]: ")
			_, statErr := os.Stat(filepath.Join(dir, "Confirmation_Message.txt"))
			assert.Equal(t, tt.wantReport, statErr == nil)
			if !tt.wantReport {
				assert.Contains(t, out, declinedMessage)
			}

			entries := loadHistory(t, home)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantStatus, entries[0].Status)
		})
	}
}

func TestCheck_Failing(t *testing.T) {
	home := isolate(t)
	datasets := testutil.Valid(3)
	datasets[1].SkipReadme = true
	dir := testutil.TempSubmission(t, datasets...)

	out, err := execute(t, "", "check", dir)
	require.Error(t, err)
	assert.Equal(t, shared.ExitValidationFailed, shared.ExitCode(err))

	assert.Contains(t, out, "ERROR encountered during quality check: Number of files doesn't match")
	assert.NotContains(t, out, confirmQuestion)

	content, err := os.ReadFile(filepath.Join(dir, "Error_Message.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "1. Ensure the data, readme, and spreadsheet files match")

	entries := loadHistory(t, home)
	require.Len(t, entries, 1)
	assert.Equal(t, history.StatusFailed, entries[0].Status)
	assert.Equal(t, "CountMismatch", entries[0].Kind)
}

func TestCheck_MissingFamilyExitCode(t *testing.T) {
	isolate(t)
	datasets := testutil.Valid(2)
	for i := range datasets {
		datasets[i].SkipData = true
	}
	dir := testutil.TempSubmission(t, datasets...)

	out, err := execute(t, "", "check", dir)
	require.Error(t, err)
	assert.Equal(t, shared.ExitMissingInputFiles, shared.ExitCode(err))
	assert.Contains(t, out, "No data files found")
}

func TestCheck_ReplacesStaleReport(t *testing.T) {
	isolate(t)
	dir := testutil.TempSubmission(t, testutil.Valid(1)...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Error_Message.txt"), []byte("old"), 0644))

	_, err := execute(t, "", "check", dir, "-y")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "Error_Message.txt"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "Confirmation_Message.txt"))
	assert.NoError(t, err)
}

func TestCheck_NoReport(t *testing.T) {
	isolate(t)
	datasets := testutil.Valid(1)
	datasets[0].Omit = []string{"hand_angle"}
	dir := testutil.TempSubmission(t, datasets...)

	out, err := execute(t, "", "check", dir, "--no-report")
	require.Error(t, err)
	assert.Contains(t, out, `No field "hand_angle" exists in dataset ds01.`)

	_, err = os.Stat(filepath.Join(dir, "Error_Message.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestCheck_VerboseAndPreview(t *testing.T) {
	isolate(t)
	dir := testutil.TempSubmission(t, testutil.Valid(1)...)

	out, err := execute(t, "", "check", dir, "-y", "--verbose", "--preview-rows", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "First 2 rows of ds01")
	assert.Contains(t, out, "- ds01: 15 rows, 3 subjects, 4-6 trials per subject")
}

func TestCheck_BadFolder(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	tests := map[string]struct {
		arg     string
		wantMsg string
	}{
		"missing": {arg: filepath.Join(t.TempDir(), "nope"), wantMsg: "submission folder not found"},
		"not dir": {arg: file, wantMsg: "not a directory"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, "", "check", tt.arg)
			require.Error(t, err)
			cliErr := apperrors.AsCLIError(err)
			require.NotNil(t, cliErr)
			assert.Equal(t, apperrors.Argument, cliErr.Category)
			assert.Contains(t, cliErr.Message, tt.wantMsg)
			assert.Equal(t, shared.ExitInvalidArguments, shared.ExitCode(err))
		})
	}
}

func TestCheck_InvalidArguments(t *testing.T) {
	tests := map[string]struct {
		args    []string
		wantMsg string
	}{
		"missing folder": {
			args:    []string{"check"},
			wantMsg: "accepts 1 arg(s), received 0",
		},
		"two folders": {
			args:    []string{"check", "a", "b"},
			wantMsg: "accepts 1 arg(s), received 2",
		},
		"unknown flag": {
			args:    []string{"check", "--frobnicate", "a"},
			wantMsg: "unknown flag: --frobnicate",
		},
		"bad flag value": {
			args:    []string{"check", "--preview-rows", "lots", "a"},
			wantMsg: "invalid argument",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)

			cliErr := apperrors.AsCLIError(err)
			require.NotNil(t, cliErr)
			assert.Equal(t, apperrors.Argument, cliErr.Category)
			assert.Contains(t, cliErr.Message, tt.wantMsg)
			assert.Contains(t, cliErr.Usage, "check <folder>")
			assert.Equal(t, shared.ExitInvalidArguments, shared.ExitCode(err))
		})
	}
}

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch_RerunsOnChangeAndStops(t *testing.T) {
	ignore := goleak.IgnoreCurrent()
	isolate(t)

	datasets := testutil.Valid(1)
	datasets[0].SkipReadme = true
	dir := testutil.TempSubmission(t, datasets...)

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.ShowProgress = false
	cfg.WatchDebounceMs = 20
	fs, err := submission.Open(dir)
	require.NoError(t, err)

	var out syncBuffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	c := newChecker(cmd, cfg, fs, dir)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.watch(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Watching")
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "No readme files found")

	// Fixing the folder triggers a passing run; the report written by the
	// failing run must not have triggered one on its own.
	testutil.WriteFile(t, fs, "readme_ds01.txt", "readme")

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Congratulations!")
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "Confirmation is not requested in watch mode")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	goleak.VerifyNone(t, ignore)
}
