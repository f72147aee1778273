// Package testutil builds submission folders for tests.
package testutil

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/openmotor-dataset/openmotor/internal/submission"
	"github.com/xuri/excelize/v2"
)

// IndexFileName is the spreadsheet name WriteSubmission uses.
const IndexFileName = "datasets.xlsx"

// Declared overrides the statistics written to a dataset's index row.
type Declared struct {
	Subjects  int
	MinTrials int
	MaxTrials int
}

// Dataset describes one dataset of a fixture submission.
type Dataset struct {
	Name string
	// TrialsPerSubject[i] is the number of rows written for subject i+1.
	TrialsPerSubject []int
	// Declared replaces the statistics computed from TrialsPerSubject.
	Declared *Declared
	// Omit drops these required columns from the data table header.
	Omit []string

	SkipData     bool
	SkipReadme   bool
	SkipIndexRow bool
}

// Stats returns the subject count and min/max trials implied by TrialsPerSubject.
func (d Dataset) Stats() Declared {
	s := Declared{Subjects: len(d.TrialsPerSubject)}
	for i, n := range d.TrialsPerSubject {
		if i == 0 || n < s.MinTrials {
			s.MinTrials = n
		}
		if i == 0 || n > s.MaxTrials {
			s.MaxTrials = n
		}
	}
	return s
}

func (d Dataset) declared() Declared {
	if d.Declared != nil {
		return *d.Declared
	}
	return d.Stats()
}

// MemFS returns an empty in-memory filesystem.
func MemFS() billy.Filesystem {
	return memfs.New()
}

// TempSubmission writes datasets into a fresh temp directory and returns its path.
func TempSubmission(t testing.TB, datasets ...Dataset) string {
	t.Helper()
	dir := t.TempDir()
	WriteSubmission(t, osfs.New(dir), datasets...)
	return dir
}

// WriteSubmission writes data_<name>.csv, readme_<name>.txt and one index
// spreadsheet holding a row per dataset, in the order given.
func WriteSubmission(t testing.TB, fs billy.Filesystem, datasets ...Dataset) {
	t.Helper()

	rows := [][]interface{}{}
	for _, d := range datasets {
		if !d.SkipData {
			WriteFile(t, fs, "data_"+d.Name+".csv", DataCSV(d))
		}
		if !d.SkipReadme {
			WriteFile(t, fs, "readme_"+d.Name+".txt", "Dataset "+d.Name+"\n")
		}
		if !d.SkipIndexRow {
			decl := d.declared()
			rows = append(rows, []interface{}{d.Name, decl.Subjects, decl.MinTrials, decl.MaxTrials})
		}
	}
	WriteIndex(t, fs, IndexFileName, rows)
}

// DataCSV renders the data table for d. Every required column is present
// unless listed in d.Omit.
func DataCSV(d Dataset) string {
	omit := make(map[string]bool, len(d.Omit))
	for _, c := range d.Omit {
		omit[c] = true
	}
	var header []string
	for _, c := range submission.RequiredColumns {
		if !omit[c] {
			header = append(header, c)
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(header, ","))
	sb.WriteString("\n")
	for s, trials := range d.TrialsPerSubject {
		for trial := 1; trial <= trials; trial++ {
			cells := make([]string, len(header))
			for i, c := range header {
				switch c {
				case submission.ColumnSubject:
					cells[i] = strconv.Itoa(s + 1)
				case submission.ColumnTrial:
					cells[i] = strconv.Itoa(trial)
				default:
					cells[i] = "0"
				}
			}
			sb.WriteString(strings.Join(cells, ","))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// WriteIndex writes an index spreadsheet with the standard header followed by rows.
func WriteIndex(t testing.TB, fs billy.Filesystem, name string, rows [][]interface{}) {
	t.Helper()
	header := []interface{}{
		submission.ColumnName,
		submission.ColumnSubjects,
		submission.ColumnMinTrials,
		submission.ColumnMaxTrials,
	}
	WriteSheet(t, fs, name, append([][]interface{}{header}, rows...))
}

// WriteSheet writes rows verbatim into the first sheet of a new workbook.
func WriteSheet(t testing.TB, fs billy.Filesystem, name string, rows [][]interface{}) {
	t.Helper()

	book := excelize.NewFile()
	defer book.Close()

	sheet := book.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := book.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("writing row %d: %v", i+1, err)
		}
	}

	buf, err := book.WriteToBuffer()
	if err != nil {
		t.Fatalf("encoding workbook: %v", err)
	}
	if err := util.WriteFile(fs, name, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

// WriteFile writes content to name on fs.
func WriteFile(t testing.TB, fs billy.Filesystem, name, content string) {
	t.Helper()
	if err := util.WriteFile(fs, name, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

// Names returns the names of datasets, for building expectations.
func Names(datasets ...Dataset) []string {
	names := make([]string, len(datasets))
	for i, d := range datasets {
		names[i] = d.Name
	}
	return names
}

// Valid returns n well-formed datasets named ds01..dsNN.
func Valid(n int) []Dataset {
	datasets := make([]Dataset, n)
	for i := range datasets {
		datasets[i] = Dataset{
			Name:             fmt.Sprintf("ds%02d", i+1),
			TrialsPerSubject: []int{4 + i, 6, 5},
		}
	}
	return datasets
}
