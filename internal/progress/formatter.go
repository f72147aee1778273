package progress

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/openmotor-dataset/openmotor/internal/validation"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// stageLabels maps each stage to the label shown to submitters.
var stageLabels = map[validation.Stage]string{
	validation.StageDiscover:    "Find submission files",
	validation.StageIndex:       "Read dataset spreadsheet",
	validation.StageCardinality: "Compare file counts",
	validation.StageIdentity:    "Compare dataset names",
	validation.StageLoad:        "Load data files",
	validation.StageSchema:      "Check required fields",
	validation.StageSubjects:    "Check subject counts",
	validation.StageTrials:      "Check trial ranges",
}

// StageLabel returns the display label of stage.
func StageLabel(stage validation.Stage) string {
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return string(stage)
}

// stageInfo builds the display info for stage within a full run.
func stageInfo(stage validation.Stage, status StageStatus) StageInfo {
	number := 0
	for i, s := range validation.Stages {
		if s == stage {
			number = i + 1
			break
		}
	}
	return StageInfo{
		Label:       StageLabel(stage),
		Number:      number,
		TotalStages: len(validation.Stages),
		Status:      status,
	}
}

// formatStageCounter returns the [N/Total] stage counter string
func formatStageCounter(number, total int) string {
	return fmt.Sprintf("[%d/%d]", number, total)
}

func buildStageMessage(stage StageInfo) string {
	return fmt.Sprintf("%s %s", formatStageCounter(stage.Number, stage.TotalStages), stage.Label)
}

// checkmark returns the success symbol, colored when supported
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	if supportsColor {
		return okStyle.Render(symbols.Checkmark)
	}
	return symbols.Checkmark
}

// failureMark returns the failure symbol, colored when supported
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	if supportsColor {
		return failStyle.Render(symbols.Failure)
	}
	return symbols.Failure
}
