package submission

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/xuri/excelize/v2"
)

// Index spreadsheet column names.
const (
	ColumnName      = "Name_in_database"
	ColumnSubjects  = "Num_subjects"
	ColumnMinTrials = "Min_trials_per_subject"
	ColumnMaxTrials = "Max_trials_per_subject"
)

// ErrMalformedIndex is wrapped by every error caused by the spreadsheet's
// content rather than by failing to read it.
var ErrMalformedIndex = errors.New("malformed index spreadsheet")

// IndexEntry is one row of the index spreadsheet.
type IndexEntry struct {
	Row         int // 1-based spreadsheet row, header is row 1
	Name        string
	NumSubjects int
	MinTrials   int
	MaxTrials   int
}

// Index is the parsed index spreadsheet.
type Index struct {
	Path    string
	Sheet   string
	Entries []IndexEntry
}

// Names returns the declared dataset names in spreadsheet order.
func (ix *Index) Names() []string {
	names := make([]string, len(ix.Entries))
	for i, e := range ix.Entries {
		names[i] = e.Name
	}
	return names
}

// ReadIndex parses the index spreadsheet at name. sheet selects a worksheet
// by name; empty selects the first one.
func ReadIndex(fs billy.Filesystem, name, sheet string) (*Index, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", name, err)
	}
	defer f.Close()

	book, err := excelize.OpenReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading index %s: %w", name, err)
	}
	defer book.Close()

	if sheet == "" {
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no worksheets", ErrMalformedIndex, name)
		}
		sheet = sheets[0]
	}

	// Raw values, so display formats such as "#,##0" do not reach the parser.
	rows, err := book.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q of %s: %v", ErrMalformedIndex, sheet, name, err)
	}

	entries, err := parseIndexRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &Index{
		Path:    fs.Join(fs.Root(), name),
		Sheet:   sheet,
		Entries: entries,
	}, nil
}

// parseIndexRows turns raw sheet rows (header first) into entries.
// Rows with every cell blank are skipped.
func parseIndexRows(rows [][]string) ([]IndexEntry, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet is empty", ErrMalformedIndex)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	for _, required := range []string{ColumnName, ColumnSubjects, ColumnMinTrials, ColumnMaxTrials} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedIndex, required)
		}
	}

	var entries []IndexEntry
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rowNum := i + 2
		entry := IndexEntry{Row: rowNum, Name: cell(row, cols[ColumnName])}

		var err error
		if entry.NumSubjects, err = intCell(row, cols, ColumnSubjects, rowNum); err != nil {
			return nil, err
		}
		if entry.MinTrials, err = intCell(row, cols, ColumnMinTrials, rowNum); err != nil {
			return nil, err
		}
		if entry.MaxTrials, err = intCell(row, cols, ColumnMaxTrials, rowNum); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func intCell(row []string, cols map[string]int, column string, rowNum int) (int, error) {
	raw := cell(row, cols[column])
	if raw == "" {
		return 0, fmt.Errorf("%w: row %d: %s is blank", ErrMalformedIndex, rowNum, column)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: row %d: %s %q is not a number", ErrMalformedIndex, rowNum, column, raw)
	}
	if v != math.Trunc(v) || v < 0 {
		return 0, fmt.Errorf("%w: row %d: %s %q is not a whole number", ErrMalformedIndex, rowNum, column, raw)
	}
	return int(v), nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
