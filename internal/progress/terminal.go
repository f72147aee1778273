package progress

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// DetectTerminalCapabilities inspects out, the writer stage lines and table
// previews go to. Only an *os.File attached to a terminal gets the spinner,
// colour and Unicode marks; TERM=dumb, NO_COLOR and OPENMOTOR_ASCII=1 turn
// them down further. COLUMNS overrides the measured width so that a piped
// run can still size the table preview; without either the preview falls
// back to a fixed number of columns.
func DetectTerminalCapabilities(out io.Writer) TerminalCapabilities {
	var caps TerminalCapabilities
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		caps.IsTTY = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			caps.Width = w
		}
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		caps.Width = n
	}

	plain := !caps.IsTTY || os.Getenv("TERM") == "dumb"
	caps.SupportsColor = !plain && os.Getenv("NO_COLOR") == ""
	caps.SupportsUnicode = !plain && os.Getenv("OPENMOTOR_ASCII") != "1"
	return caps
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14, // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9, // | / - \
	}
}
