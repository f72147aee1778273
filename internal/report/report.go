// Package report renders a validation verdict as the plain-text message
// submitters attach to their upload, and writes it into the submission folder.
package report

import (
	"fmt"
	"strings"

	"github.com/openmotor-dataset/openmotor/internal/validation"
)

// Build renders v. It performs no validation of its own.
func Build(v *validation.Verdict) string {
	if v.Passed() {
		return Success(v.Summary)
	}
	return Failure(v.Failure)
}

// Success renders the confirmation message for a passing submission.
func Success(s *validation.Summary) string {
	var sb strings.Builder
	sb.WriteString("Congratulations! Your data passed the quality check.\n")
	sb.WriteString("Please attach this confirmation message to your submission.\n")
	sb.WriteString("\nBelow is a summary of your submission:\n")
	fmt.Fprintf(&sb, "- Number of datasets: %d\n", s.DatasetCount)
	fmt.Fprintf(&sb, "- Number of readme files: %d\n", s.ReadmeCount)
	fmt.Fprintf(&sb, "- Number of spreadsheet files: %d\n", s.SpreadsheetCount)
	fmt.Fprintf(&sb, "- Total number of subjects: %d\n", s.TotalSubjects)
	fmt.Fprintf(&sb, "- Dataset names: %s\n", strings.Join(s.Names, ", "))
	sb.WriteString("\nPlease confirm that the information above is correct. If anything seems wrong, please make corrections before submitting.\n")
	return sb.String()
}

// Failure renders the error message and the fixed remediation checklist.
func Failure(f *validation.Failure) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ERROR encountered during quality check: %s\n", f.Detail)
	sb.WriteString("Please review the following guidelines to fix the issue:\n")
	for i, step := range validation.Remediation() {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}
	return sb.String()
}
