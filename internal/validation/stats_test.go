package validation

import (
	"strconv"
	"testing"

	"github.com/openmotor-dataset/openmotor/internal/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subjectTable builds a two-column table with trials[i] rows for subject i+1.
func subjectTable(trials ...int) *submission.Table {
	var rows [][]string
	for s, n := range trials {
		for trial := 1; trial <= n; trial++ {
			rows = append(rows, []string{strconv.Itoa(s + 1), strconv.Itoa(trial)})
		}
	}
	return submission.NewTable("t.csv", []string{submission.ColumnSubject, submission.ColumnTrial}, rows)
}

func declared(subjects, minTrials, maxTrials int) Dataset {
	return Dataset{ID: "exp1", Declared: submission.IndexEntry{Name: "exp1", NumSubjects: subjects, MinTrials: minTrials, MaxTrials: maxTrials}}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	st := ComputeStats(subjectTable(5, 7, 5))
	assert.Equal(t, 17, st.Rows)
	assert.Equal(t, 3, st.Subjects)
	assert.Equal(t, 5, st.MinTrials)
	assert.Equal(t, 7, st.MaxTrials)
	assert.Equal(t, map[string]int{"1": 5, "2": 7, "3": 5}, st.TrialsPerSubject)
}

func TestComputeStats_SubjectKeys(t *testing.T) {
	t.Parallel()

	table := submission.NewTable("t.csv", []string{submission.ColumnSubject}, [][]string{
		{"1"}, {"1.0"}, {" 1 "}, {"S02"}, {"S02"}, {""}, {"s02"},
	})
	st := ComputeStats(table)
	assert.Equal(t, 4, st.Subjects)
	assert.Equal(t, 3, st.TrialsPerSubject["1"])
	assert.Equal(t, 2, st.TrialsPerSubject["S02"])
	assert.Equal(t, 1, st.MinTrials)
	assert.Equal(t, 3, st.MaxTrials)
}

func TestComputeStats_LongSubjectIDs(t *testing.T) {
	t.Parallel()

	table := submission.NewTable("t.csv", []string{submission.ColumnSubject}, [][]string{
		{"20230101000000001"}, {"20230101000000002"}, {"020230101000000002"}, {"-7"}, {"-7.0"},
	})
	st := ComputeStats(table)
	assert.Equal(t, 3, st.Subjects)
	assert.Equal(t, map[string]int{
		"20230101000000001": 1,
		"20230101000000002": 2,
		"-7":                2,
	}, st.TrialsPerSubject)
}

func TestCheckStatistics(t *testing.T) {
	t.Parallel()

	stats := []Stats{ComputeStats(subjectTable(5, 7, 5))}

	tests := map[string]struct {
		ds           Dataset
		wantKind     Kind
		wantField    string
		wantExpected string
		wantActual   string
	}{
		"matches declaration": {
			ds: declared(3, 5, 7),
		},
		"declared max too high": {
			ds:           declared(3, 5, 8),
			wantKind:     KindTrialRangeMismatch,
			wantField:    "max",
			wantExpected: "8",
			wantActual:   "7",
		},
		"min checked before max": {
			ds:           declared(3, 4, 8),
			wantKind:     KindTrialRangeMismatch,
			wantField:    "min",
			wantExpected: "4",
			wantActual:   "5",
		},
		"subject count wins over trial range": {
			ds:           declared(4, 1, 1),
			wantKind:     KindSubjectCountMismatch,
			wantExpected: "4",
			wantActual:   "3",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			datasets := []Dataset{tc.ds}
			f := CheckSubjectCounts(datasets, stats)
			if f == nil {
				f = CheckTrialRanges(datasets, stats)
			}
			if tc.wantKind == "" {
				assert.Nil(t, f)
				return
			}
			require.NotNil(t, f)
			assert.Equal(t, tc.wantKind, f.Kind)
			assert.Equal(t, tc.wantField, f.Field)
			assert.Equal(t, tc.wantExpected, f.Expected)
			assert.Equal(t, tc.wantActual, f.Actual)
			assert.Equal(t, "exp1", f.Dataset)
		})
	}
}

func TestCheckNotEmpty(t *testing.T) {
	t.Parallel()

	datasets := []Dataset{{ID: "a", DataFile: "data_a.csv"}, {ID: "b", DataFile: "data_b.csv"}}
	f := CheckNotEmpty(datasets, []*submission.Table{subjectTable(1), subjectTable()})
	require.NotNil(t, f)
	assert.Equal(t, KindEmptyDataset, f.Kind)
	assert.Equal(t, "b", f.Dataset)
	assert.Contains(t, f.Detail, "data_b.csv")

	assert.Nil(t, CheckNotEmpty(datasets[:1], []*submission.Table{subjectTable(2)}))
}
