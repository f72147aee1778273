package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// FormatError renders err as a heading, an optional usage block and the
// numbered remediation steps. colored highlights the heading and the
// "To fix this:" line.
func FormatError(err *CLIError, colored bool) string {
	if err == nil {
		return ""
	}

	heading := color.New(color.Bold, color.FgRed)
	fix := color.New(color.FgYellow)
	if colored {
		heading.EnableColor()
		fix.EnableColor()
	} else {
		heading.DisableColor()
		fix.DisableColor()
	}

	var sb strings.Builder
	sb.WriteString(heading.Sprint(err.Category.String()+":") + " ")
	sb.WriteString(err.Message)
	sb.WriteString("\n")

	if err.Usage != "" {
		sb.WriteString("\nUsage:\n  ")
		sb.WriteString(err.Usage)
		sb.WriteString("\n")
	}

	if len(err.Remediation) > 0 {
		sb.WriteString("\n" + fix.Sprint("To fix this:") + "\n")
		for i, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, step)
		}
	}

	return sb.String()
}

// FprintError writes err to w, coloured only when w is a terminal and
// NO_COLOR is unset.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err, supportsColor(w)))
}

func supportsColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
