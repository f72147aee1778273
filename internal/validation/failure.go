package validation

import (
	"fmt"

	apperrors "github.com/openmotor-dataset/openmotor/internal/errors"
)

// Kind names the reason a submission failed.
type Kind string

const (
	KindMissingFileFamily    Kind = "MissingFileFamily"
	KindCountMismatch        Kind = "CountMismatch"
	KindIdentityMismatch     Kind = "IdentityMismatch"
	KindMissingField         Kind = "MissingField"
	KindSubjectCountMismatch Kind = "SubjectCountMismatch"
	KindTrialRangeMismatch   Kind = "TrialRangeMismatch"
	KindEmptyDataset         Kind = "EmptyDataset"
	KindMalformedIndex       Kind = "MalformedIndex"
	KindUnreadableFile       Kind = "UnreadableFile"
)

// Failure is the first check a submission failed. Detail is the
// human-readable sentence written to the error report; the remaining fields
// carry the same facts in structured form for callers and tests.
type Failure struct {
	Kind     Kind
	Stage    Stage
	Detail   string
	Dataset  string // identifier of the offending dataset, if any
	Field    string // missing column, or "min"/"max" for trial ranges
	Position int    // 0-based pairing position for IdentityMismatch
	Expected string // declared value
	Actual   string // computed value
	Counts   map[string]int
	Err      error // underlying read error for UnreadableFile/MalformedIndex
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
}

// Unwrap returns the underlying read error, if any.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Category maps the failure onto a CLI error category.
func (f *Failure) Category() apperrors.ErrorCategory {
	switch f.Kind {
	case KindMissingFileFamily, KindEmptyDataset:
		return apperrors.Prerequisite
	case KindUnreadableFile:
		return apperrors.Runtime
	default:
		return apperrors.Validation
	}
}

// Remediation is the fixed checklist shown with every failure.
func Remediation() []string {
	return []string{
		"Ensure the data, readme, and spreadsheet files match in number and names.",
		"Check that all required fields are present in the dataset.",
		"Make sure the number of subjects and trials per subject match the spreadsheet report.",
	}
}
