package submission

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
)

// Data table column names the statistics are computed from.
const (
	ColumnSubject = "Subj_idx"
	ColumnTrial   = "trial_number"
)

// Table is a data table loaded into memory. Each row is one trial.
// Rows shorter than the header are padded with empty cells.
type Table struct {
	Path   string
	Header []string
	Rows   [][]string

	columns map[string]int
}

// NewTable builds a table from a header and rows. Used by the loader and by
// tests that need a table without a file behind it.
func NewTable(path string, header []string, rows [][]string) *Table {
	t := &Table{
		Path:    path,
		Header:  header,
		Rows:    rows,
		columns: make(map[string]int, len(header)),
	}
	for i, h := range header {
		if _, dup := t.columns[h]; !dup {
			t.columns[h] = i
		}
	}
	for i, row := range t.Rows {
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			t.Rows[i] = padded
		}
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether name is one of the table's header cells.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column returns every value of the named column in row order.
func (t *Table) Column(name string) ([]string, bool) {
	i, ok := t.columns[name]
	if !ok {
		return nil, false
	}
	values := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		values[r] = row[i]
	}
	return values, true
}

// Head returns at most n leading rows.
func (t *Table) Head(n int) [][]string {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	return t.Rows[:n]
}

// LoadTable reads the CSV data table at name.
func LoadTable(fs billy.Filesystem, name string) (*Table, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening data table %s: %w", name, err)
	}
	defer f.Close()

	header, rows, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading data table %s: %w", name, err)
	}
	return NewTable(fs.Join(fs.Root(), name), header, rows), nil
}

func readCSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(stripUTF8BOM(bufio.NewReader(r)))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("missing header")
		}
		return nil, nil, err
	}

	var rows [][]string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record))
		}
		rows = append(rows, record)
	}
	return header, rows, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}
