// Package submission_test tests loading CSV data tables.
// Related: internal/submission/table.go
// Tags: submission, csv, table
package submission_test

import (
	"testing"

	"github.com/openmotor-dataset/openmotor/internal/submission"
	"github.com/openmotor-dataset/openmotor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTable(t *testing.T) {
	t.Parallel()

	fs := testutil.MemFS()
	testutil.WriteFile(t, fs, "data_a.csv", "\xEF\xBB\xBFSubj_idx,trial_number,hand_angle\n1,1,0.5\n1,2\n\n2,1,3\n")

	table, err := submission.LoadTable(fs, "data_a.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"Subj_idx", "trial_number", "hand_angle"}, table.Header)
	assert.True(t, table.HasColumn("Subj_idx"), "BOM must not stick to the first header cell")
	assert.Equal(t, 3, table.Len())

	subjects, ok := table.Column(submission.ColumnSubject)
	require.True(t, ok)
	assert.Equal(t, []string{"1", "1", "2"}, subjects)

	angles, _ := table.Column("hand_angle")
	assert.Equal(t, "", angles[1], "short rows are padded")

	_, ok = table.Column("missing")
	assert.False(t, ok)
}

func TestLoadTable_HeaderOnly(t *testing.T) {
	t.Parallel()

	fs := testutil.MemFS()
	testutil.WriteFile(t, fs, "data_a.csv", "Subj_idx,trial_number\n")

	table, err := submission.LoadTable(fs, "data_a.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Head(8))
}

func TestLoadTable_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		wantMsg string
	}{
		"empty file": {
			content: "",
			wantMsg: "missing header",
		},
		"too many fields": {
			content: "a,b\n1,2\n1,2,3\n",
			wantMsg: "expected 2 fields, saw 3",
		},
		"bad quoting": {
			content: "a,b\n\"1,2\n",
			wantMsg: "data_x.csv",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			fs := testutil.MemFS()
			testutil.WriteFile(t, fs, "data_x.csv", tc.content)

			_, err := submission.LoadTable(fs, "data_x.csv")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestLoadTable_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := submission.LoadTable(testutil.MemFS(), "data_none.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening data table")
}

func TestTable_Head(t *testing.T) {
	t.Parallel()

	table := submission.NewTable("t.csv", []string{"a"}, [][]string{{"1"}, {"2"}, {"3"}})
	assert.Len(t, table.Head(2), 2)
	assert.Len(t, table.Head(10), 3)
	assert.Empty(t, table.Head(-1))
}

func TestDataCSVFixtureHasEveryRequiredColumn(t *testing.T) {
	t.Parallel()

	fs := testutil.MemFS()
	testutil.WriteFile(t, fs, "data_a.csv", testutil.DataCSV(testutil.Dataset{Name: "a", TrialsPerSubject: []int{2}}))

	table, err := submission.LoadTable(fs, "data_a.csv")
	require.NoError(t, err)
	for _, col := range submission.RequiredColumns {
		assert.True(t, table.HasColumn(col), col)
	}
	assert.Equal(t, 2, table.Len())
}
