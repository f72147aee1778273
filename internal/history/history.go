// Package history keeps a log of past submission checks.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// HistoryFileName is the name of the history file.
	HistoryFileName = "history.yaml"
	// BackupSuffix is the suffix for backup files when corruption is detected.
	BackupSuffix = ".backup"
)

// Status constants for history entries.
const (
	// StatusPassed indicates the submission passed every check.
	StatusPassed = "passed"
	// StatusFailed indicates a check failed.
	StatusFailed = "failed"
	// StatusDeclined indicates the checks passed but the submitter did not
	// confirm the summary, so no report was written.
	StatusDeclined = "declined"
)

// HistoryEntry records one check of a submission folder.
type HistoryEntry struct {
	// ID is a random UUID.
	ID string `yaml:"id"`
	// Timestamp is when the check started.
	Timestamp time.Time `yaml:"timestamp"`
	// Folder is the absolute path of the checked folder.
	Folder string `yaml:"folder"`
	// Status is one of passed, failed, declined.
	Status string `yaml:"status"`
	// Kind is the failure kind; empty unless Status is failed.
	Kind string `yaml:"kind,omitempty"`
	// Stage is the stage that failed.
	Stage string `yaml:"stage,omitempty"`
	// Detail is the failure message.
	Detail string `yaml:"detail,omitempty"`
	// Datasets is the number of datasets in a passing submission.
	Datasets int `yaml:"datasets,omitempty"`
	// Subjects is the total number of subjects in a passing submission.
	Subjects int `yaml:"subjects,omitempty"`
	// Report is the path of the report file written, if any.
	Report string `yaml:"report,omitempty"`
	// Duration is the check duration in Go duration format.
	Duration string `yaml:"duration"`
}

// HistoryFile represents the YAML file containing all history entries.
type HistoryFile struct {
	// Entries is ordered oldest first.
	Entries []HistoryEntry `yaml:"entries"`
}

// Last returns the newest n entries, newest first. n <= 0 returns all.
func (h *HistoryFile) Last(n int) []HistoryEntry {
	if n <= 0 || n > len(h.Entries) {
		n = len(h.Entries)
	}
	out := make([]HistoryEntry, 0, n)
	for i := len(h.Entries) - 1; i >= len(h.Entries)-n; i-- {
		out = append(out, h.Entries[i])
	}
	return out
}

// LoadHistory loads the history file from the given state directory.
// Returns empty history if file doesn't exist.
// A corrupted file is moved aside with BackupSuffix and an empty history returned.
func LoadHistory(stateDir string) (*HistoryFile, error) {
	historyPath := filepath.Join(stateDir, HistoryFileName)

	data, err := os.ReadFile(historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &HistoryFile{Entries: []HistoryEntry{}}, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var history HistoryFile
	if err := yaml.Unmarshal(data, &history); err != nil {
		if backupErr := backupCorruptedFile(historyPath); backupErr != nil {
			return nil, fmt.Errorf("backing up corrupted history file: %w", backupErr)
		}
		return &HistoryFile{Entries: []HistoryEntry{}}, nil
	}

	if history.Entries == nil {
		history.Entries = []HistoryEntry{}
	}

	return &history, nil
}

func backupCorruptedFile(path string) error {
	if err := os.Rename(path, path+BackupSuffix); err != nil {
		return fmt.Errorf("renaming corrupted file to backup: %w", err)
	}
	return nil
}

// SaveHistory writes history atomically, creating stateDir if needed.
func SaveHistory(stateDir string, history *HistoryFile) error {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	historyPath := filepath.Join(stateDir, HistoryFileName)
	tmpPath := historyPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing temp history file: %w", err)
	}

	if err := os.Rename(tmpPath, historyPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp history file: %w", err)
	}

	return nil
}

// ClearHistory removes all entries from the history file.
func ClearHistory(stateDir string) error {
	return SaveHistory(stateDir, &HistoryFile{Entries: []HistoryEntry{}})
}
