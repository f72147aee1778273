package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/openmotor-dataset/openmotor/internal/submission"
	"github.com/openmotor-dataset/openmotor/internal/validation"
)

// Display prints validation progress. It implements validation.Observer.
type Display struct {
	capabilities TerminalCapabilities
	symbols      ProgressSymbols
	out          io.Writer
	spinner      *spinner.Spinner
	current      *StageInfo

	// PreviewRows is the number of rows shown for each loaded table; zero
	// disables the preview.
	PreviewRows int
}

var _ validation.Observer = (*Display)(nil)

// NewDisplay creates a display writing stage lines to out.
func NewDisplay(caps TerminalCapabilities, out io.Writer) *Display {
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
	}
}

// StageStarted begins displaying a stage
func (d *Display) StageStarted(stage validation.Stage) {
	info := stageInfo(stage, StageInProgress)
	if err := info.Validate(); err != nil {
		return
	}
	d.current = &info

	if !d.capabilities.IsTTY {
		return
	}
	// The spinner writes to stderr so stdout stays clean for pipes.
	d.spinner = spinner.New(
		spinner.CharSets[d.symbols.SpinnerSet],
		100*time.Millisecond,
	)
	d.spinner.Writer = os.Stderr
	d.spinner.Suffix = " " + buildStageMessage(info)
	d.spinner.Start()
}

// StageCompleted stops the spinner and prints the stage outcome
func (d *Display) StageCompleted(stage validation.Stage, message string) {
	d.StopSpinner()

	info := stageInfo(stage, StageCompleted)
	mark := checkmark(d.symbols, d.capabilities.SupportsColor)
	line := fmt.Sprintf("%s %s", mark, buildStageMessage(info))
	if message != "" {
		line += ": " + message
	}
	fmt.Fprintln(d.out, line)
	d.current = nil
}

// StageFailed stops the spinner and prints the failure detail
func (d *Display) StageFailed(stage validation.Stage, failure *validation.Failure) {
	d.StopSpinner()

	info := stageInfo(stage, StageFailed)
	mark := failureMark(d.symbols, d.capabilities.SupportsColor)
	fmt.Fprintf(d.out, "%s %s failed: %s\n", mark, buildStageMessage(info), failure.Detail)
	d.current = nil
}

// TableLoaded prints a preview of the first PreviewRows rows of table
func (d *Display) TableLoaded(ds validation.Dataset, table *submission.Table) {
	if d.PreviewRows <= 0 {
		return
	}
	d.StopSpinner()
	fmt.Fprint(d.out, Preview(ds.ID, table, d.PreviewRows, d.capabilities.Width))
	if d.capabilities.IsTTY && d.current != nil {
		d.spinner = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], 100*time.Millisecond)
		d.spinner.Writer = os.Stderr
		d.spinner.Suffix = " " + buildStageMessage(*d.current)
		d.spinner.Start()
	}
}

// StopSpinner stops the spinner without printing a status line.
// Call it before prompting so the prompt is not overwritten.
func (d *Display) StopSpinner() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}
