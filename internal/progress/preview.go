package progress

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/openmotor-dataset/openmotor/internal/submission"
)

// maxPreviewColumns bounds the preview width when the terminal width is unknown.
const maxPreviewColumns = 8

// NumericReminder follows every preview.
const NumericReminder = "Please check that columns that should be numeric are indeed numeric."

var (
	previewTitle  = lipgloss.NewStyle().Bold(true)
	previewHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	previewCell   = lipgloss.NewStyle().Padding(0, 1)
	previewMuted  = lipgloss.NewStyle().Faint(true)
)

// Preview renders the first rows of table as a bordered grid. Columns that do
// not fit into width are summarised in a trailing note; width <= 0 falls back
// to maxPreviewColumns columns.
func Preview(name string, table *submission.Table, rows, width int) string {
	head := table.Head(rows)
	widths := columnWidths(table.Header, head)
	shown := visibleColumns(widths, width)

	var sb strings.Builder
	sb.WriteString(previewTitle.Render(fmt.Sprintf("First %d rows of %s (%d rows total)", len(head), name, table.Len())))
	sb.WriteString("\n")

	for i := 0; i < shown; i++ {
		sb.WriteString(previewHeader.Width(widths[i]).Render(table.Header[i]))
		if i < shown-1 {
			sb.WriteString(previewMuted.Render("|"))
		}
	}
	sb.WriteString("\n")

	total := shown - 1
	for i := 0; i < shown; i++ {
		total += widths[i]
	}
	sb.WriteString(previewMuted.Render(strings.Repeat("-", max(total, 0))))
	sb.WriteString("\n")

	for _, row := range head {
		for i := 0; i < shown; i++ {
			sb.WriteString(previewCell.Width(widths[i]).Render(row[i]))
			if i < shown-1 {
				sb.WriteString(previewMuted.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	if hidden := len(table.Header) - shown; hidden > 0 {
		sb.WriteString(previewMuted.Render(fmt.Sprintf("... %d more columns", hidden)))
		sb.WriteString("\n")
	}
	sb.WriteString(NumericReminder)
	sb.WriteString("\n\n")
	return sb.String()
}

// columnWidths returns the padded width of every column.
func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}
	return widths
}

// visibleColumns returns how many leading columns fit into width.
func visibleColumns(widths []int, width int) int {
	if width <= 0 {
		return min(len(widths), maxPreviewColumns)
	}
	used := 0
	for i, w := range widths {
		used += w
		if i > 0 {
			used++
		}
		if used > width {
			return max(i, 1)
		}
	}
	return len(widths)
}
