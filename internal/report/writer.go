package report

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/openmotor-dataset/openmotor/internal/validation"
)

// Writer places the report file in the submission folder.
type Writer struct {
	FS            billy.Filesystem
	SuccessReport string
	ErrorReport   string
}

// NewWriter creates a writer for the folder behind fs.
func NewWriter(fs billy.Filesystem, successReport, errorReport string) *Writer {
	return &Writer{FS: fs, SuccessReport: successReport, ErrorReport: errorReport}
}

// FileName returns the report name used for v.
func (w *Writer) FileName(v *validation.Verdict) string {
	if v.Passed() {
		return w.SuccessReport
	}
	return w.ErrorReport
}

// Write writes the report for v, replacing any earlier report of the same
// name and removing a stale report of the other kind so exactly one report
// is left in the folder. It returns the full path written.
func (w *Writer) Write(v *validation.Verdict) (string, error) {
	name := w.FileName(v)
	stale := w.ErrorReport
	if name == w.ErrorReport {
		stale = w.SuccessReport
	}

	if err := util.WriteFile(w.FS, name, []byte(Build(v)), 0644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", name, err)
	}
	if err := w.FS.Remove(stale); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("removing stale report %s: %w", stale, err)
	}
	return w.FS.Join(w.FS.Root(), name), nil
}
