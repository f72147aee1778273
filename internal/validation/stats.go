package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/openmotor-dataset/openmotor/internal/submission"
)

// Stats are the aggregate numbers computed from one data table.
type Stats struct {
	Rows      int
	Subjects  int
	MinTrials int
	MaxTrials int
	// TrialsPerSubject maps the canonical subject key to its row count.
	TrialsPerSubject map[string]int
}

// ComputeStats counts distinct subjects and the rows per subject.
// Subject values that parse as numbers are compared numerically, so "1" and
// "1.0" are the same subject. Empty cells form a subject of their own.
// The table must have at least one row and a Subj_idx column.
func ComputeStats(table *submission.Table) Stats {
	subjects, _ := table.Column(submission.ColumnSubject)

	perSubject := make(map[string]int)
	for _, v := range subjects {
		perSubject[subjectKey(v)]++
	}

	st := Stats{
		Rows:             len(subjects),
		Subjects:         len(perSubject),
		TrialsPerSubject: perSubject,
	}
	first := true
	for _, n := range perSubject {
		if first || n < st.MinTrials {
			st.MinTrials = n
		}
		if first || n > st.MaxTrials {
			st.MaxTrials = n
		}
		first = false
	}
	return st
}

func subjectKey(v string) string {
	v = strings.TrimSpace(v)
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return v
}

// CheckNotEmpty rejects tables with no data rows; statistics are undefined for them.
func CheckNotEmpty(datasets []Dataset, tables []*submission.Table) *Failure {
	for i, ds := range datasets {
		if tables[i].Len() > 0 {
			continue
		}
		return &Failure{
			Kind:    KindEmptyDataset,
			Stage:   StageLoad,
			Dataset: ds.ID,
			Detail:  fmt.Sprintf("Data file %s for dataset %s contains no trials.", ds.DataFile, ds.ID),
		}
	}
	return nil
}

// CheckSubjectCounts compares the declared subject count of every dataset
// with the computed one.
func CheckSubjectCounts(datasets []Dataset, stats []Stats) *Failure {
	for i, ds := range datasets {
		declared, actual := ds.Declared.NumSubjects, stats[i].Subjects
		if declared == actual {
			continue
		}
		return &Failure{
			Kind:     KindSubjectCountMismatch,
			Stage:    StageSubjects,
			Dataset:  ds.ID,
			Expected: strconv.Itoa(declared),
			Actual:   strconv.Itoa(actual),
			Detail: fmt.Sprintf(
				"Number of subjects doesn't match between spreadsheet and actual data for dataset %s: spreadsheet reports %d, data contains %d.",
				ds.ID, declared, actual),
		}
	}
	return nil
}

// CheckTrialRanges compares declared min and max trials per subject with the
// computed ones. For each dataset the minimum is checked before the maximum.
func CheckTrialRanges(datasets []Dataset, stats []Stats) *Failure {
	for i, ds := range datasets {
		if f := compareBound(ds, "min", ds.Declared.MinTrials, stats[i].MinTrials); f != nil {
			return f
		}
		if f := compareBound(ds, "max", ds.Declared.MaxTrials, stats[i].MaxTrials); f != nil {
			return f
		}
	}
	return nil
}

func compareBound(ds Dataset, bound string, declared, actual int) *Failure {
	if declared == actual {
		return nil
	}
	return &Failure{
		Kind:     KindTrialRangeMismatch,
		Stage:    StageTrials,
		Dataset:  ds.ID,
		Field:    bound,
		Expected: strconv.Itoa(declared),
		Actual:   strconv.Itoa(actual),
		Detail: fmt.Sprintf(
			"The %s total trials per subject doesn't match between spreadsheet and actual data for dataset %s: spreadsheet reports %d, data contains %d.",
			bound, ds.ID, declared, actual),
	}
}
