package util

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/openmotor-dataset/openmotor/internal/cli/shared"
	"github.com/openmotor-dataset/openmotor/internal/config"
	apperrors "github.com/openmotor-dataset/openmotor/internal/errors"
	"github.com/openmotor-dataset/openmotor/internal/history"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:          "history",
	Short:        "View past submission checks",
	Long:         `View a log of past checks with timestamp, status, folder, and the failure or dataset count.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return apperrors.ConfigParseError(configPath, err)
		}
		return runHistoryWithStateDir(cmd, cfg.StateDir)
	},
}

func init() {
	historyCmd.GroupID = shared.GroupConfiguration
	historyCmd.Flags().IntP("limit", "n", 0, "Limit to last N entries (most recent)")
	historyCmd.Flags().Bool("clear", false, "Clear all history")
	historyCmd.Flags().String("status", "", "Filter by status (passed, failed, declined)")
}

// runHistoryWithStateDir runs the history command against stateDir.
func runHistoryWithStateDir(cmd *cobra.Command, stateDir string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	statusFilter, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	if limit < 0 {
		return apperrors.NewArgumentError(fmt.Sprintf("limit must be positive, got %d", limit))
	}

	if clearFlag {
		if err := history.ClearHistory(stateDir); err != nil {
			return apperrors.HistoryNotWritable(stateDir, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	histFile, err := history.LoadHistory(stateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	entries := filterEntries(histFile.Entries, statusFilter, limit)
	if len(entries) == 0 {
		if statusFilter != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No matching entries for status '%s'.\n", statusFilter)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No history available.")
		}
		return nil
	}

	displayEntries(cmd, entries)
	return nil
}

// filterEntries applies the status filter, then keeps the newest limit
// entries, newest first.
func filterEntries(entries []history.HistoryEntry, statusFilter string, limit int) []history.HistoryEntry {
	matched := &history.HistoryFile{}
	for _, entry := range entries {
		if statusFilter != "" && entry.Status != statusFilter {
			continue
		}
		matched.Entries = append(matched.Entries, entry)
	}
	return matched.Last(limit)
}

// displayEntries formats and displays history entries.
func displayEntries(cmd *cobra.Command, entries []history.HistoryEntry) {
	out := cmd.OutOrStdout()
	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, entry := range entries {
		timestamp := entry.Timestamp.Format("2006-01-02 15:04:05")
		fmt.Fprintf(out, "%s  %s  %s  %s  %s\n",
			cyan(timestamp),
			formatStatus(entry.Status),
			entry.Folder,
			describe(entry),
			dim(entry.Duration),
		)
	}
}

// formatStatus returns a color-coded, padded status.
func formatStatus(status string) string {
	padded := fmt.Sprintf("%-8s", status)
	switch status {
	case history.StatusPassed:
		return color.New(color.FgGreen).Sprint(padded)
	case history.StatusDeclined:
		return color.New(color.FgYellow).Sprint(padded)
	case history.StatusFailed:
		return color.New(color.FgRed).Sprint(padded)
	default:
		return padded
	}
}

// describe summarises the outcome of entry in a few words.
func describe(entry history.HistoryEntry) string {
	if entry.Status == history.StatusFailed {
		return entry.Kind
	}
	return fmt.Sprintf("%d datasets, %d subjects", entry.Datasets, entry.Subjects)
}
