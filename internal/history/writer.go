package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/openmotor-dataset/openmotor/internal/validation"
	"go.uber.org/zap"
)

// Writer appends entries to the history file and prunes old ones.
type Writer struct {
	// StateDir is the directory containing the history file.
	StateDir string
	// MaxEntries is the maximum number of entries to retain; zero keeps all.
	MaxEntries int
	// Logger receives warnings for failed writes.
	Logger *zap.Logger
}

// NewWriter creates a new history writer.
func NewWriter(stateDir string, maxEntries int, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		StateDir:   stateDir,
		MaxEntries: maxEntries,
		Logger:     logger,
	}
}

// LogEntry appends entry. Errors are logged, never returned: a broken
// history file must not change the outcome of a check.
func (w *Writer) LogEntry(entry HistoryEntry) {
	if err := w.append(entry); err != nil {
		w.Logger.Warn("failed to log history", zap.Error(err))
	}
}

func (w *Writer) append(entry HistoryEntry) error {
	history, err := LoadHistory(w.StateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	history.Entries = append(history.Entries, entry)

	if w.MaxEntries > 0 && len(history.Entries) > w.MaxEntries {
		excess := len(history.Entries) - w.MaxEntries
		history.Entries = history.Entries[excess:]
	}

	if err := SaveHistory(w.StateDir, history); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	return nil
}

// NewEntry builds the entry for a finished check of folder. declined marks a
// passing verdict the submitter did not confirm; report is the report path,
// empty when none was written.
func NewEntry(folder string, v *validation.Verdict, declined bool, report string, started time.Time) HistoryEntry {
	entry := HistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: started,
		Folder:    folder,
		Report:    report,
		Duration:  time.Since(started).Round(time.Millisecond).String(),
	}

	switch {
	case v.Failure != nil:
		entry.Status = StatusFailed
		entry.Kind = string(v.Failure.Kind)
		entry.Stage = string(v.Failure.Stage)
		entry.Detail = v.Failure.Detail
	case declined:
		entry.Status = StatusDeclined
	default:
		entry.Status = StatusPassed
	}
	if v.Summary != nil {
		entry.Datasets = v.Summary.DatasetCount
		entry.Subjects = v.Summary.TotalSubjects
	}
	return entry
}
