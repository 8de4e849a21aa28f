// Package dataset reads tabular team statistics and produces cleaned numeric
// frames. Nothing is cached: every call reads the file again.
package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Options controls how a dataset file is read and how cells are coerced.
type Options struct {
	// Delimiter for CSV. If 0, chosen by extension (',' or '\t' for .tsv).
	Delimiter rune
	// Sheet selects the XLSX worksheet; empty means the first sheet.
	Sheet string
	// DecimalSeparator defaults to '.' when 0.
	DecimalSeparator rune
	// ThousandsSeparator is stripped before parsing when set.
	ThousandsSeparator rune
	// AutoLocale detects decimal/thousands separators per value.
	AutoLocale bool
}

// Table is the raw content of a dataset: a header and string rows in source order.
type Table struct {
	Name   string
	Path   string
	Header []string
	Rows   [][]string

	opt   Options
	index map[string]int
}

// Frame is a cleaned, column-major numeric view over a Table. All columns have
// the same length and row i of every column comes from the same source row.
type Frame struct {
	Columns []string
	Values  [][]float64
	// Source is the number of data rows in the table; Dropped of them were
	// excluded for a missing or non-numeric required value.
	Source  int
	Dropped int
}

// Read loads the dataset at path using the reader registered for its extension.
func Read(path string, opt Options) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &DataUnavailableError{Path: path, Err: fmt.Errorf("could not find dataset: %w", err)}
		}
		return nil, &DataUnavailableError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &DataUnavailableError{Path: path, Err: errors.New("path is a directory")}
	}
	r := readerFor(path)
	header, rows, err := r.Read(path, opt)
	if err != nil {
		return nil, &DataUnavailableError{Path: path, Err: err}
	}
	return newTable(path, header, rows, opt), nil
}

// Load reads the dataset and returns the cleaned frame for the required columns.
func Load(path string, cols []string, opt Options) (*Frame, error) {
	t, err := Read(path, opt)
	if err != nil {
		return nil, err
	}
	return t.Require(cols...)
}

func newTable(path string, header []string, rows [][]string, opt Options) *Table {
	t := &Table{
		Name:  filepath.Base(path),
		Path:  path,
		Rows:  rows,
		opt:   opt,
		index: make(map[string]int, len(header)),
	}
	t.Header = make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		t.Header[i] = h
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	return t
}

// Has reports whether the header contains the named column.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Require restricts the table to cols, coerces every cell to a number and
// drops rows where any of them is missing or non-numeric.
func (t *Table) Require(cols ...string) (*Frame, error) {
	idx := make([]int, len(cols))
	var missing []string
	for i, c := range cols {
		j, ok := t.index[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		idx[i] = j
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Column: missing[0], Missing: missing}
	}

	f := &Frame{
		Columns: append([]string(nil), cols...),
		Values:  make([][]float64, len(cols)),
		Source:  len(t.Rows),
	}
	row := make([]float64, len(cols))
	for _, rec := range t.Rows {
		ok := true
		for i, j := range idx {
			if j >= len(rec) {
				ok = false
				break
			}
			x, valid := parseNumeric(rec[j], t.opt)
			if !valid {
				ok = false
				break
			}
			row[i] = x
		}
		if !ok {
			f.Dropped++
			continue
		}
		for i := range cols {
			f.Values[i] = append(f.Values[i], row[i])
		}
	}
	return f, nil
}

// Numeric returns every numeric value in col, independent of other columns,
// along with the count of missing or non-numeric cells.
func (t *Table) Numeric(col string) ([]float64, int, error) {
	j, ok := t.index[col]
	if !ok {
		return nil, 0, &SchemaError{Column: col, Missing: []string{col}}
	}
	var vals []float64
	missing := 0
	for _, rec := range t.Rows {
		if j >= len(rec) {
			missing++
			continue
		}
		x, valid := parseNumeric(rec[j], t.opt)
		if !valid {
			missing++
			continue
		}
		vals = append(vals, x)
	}
	return vals, missing, nil
}

// NumericColumns returns, in header order, the columns whose non-null cells all
// parse as numbers. Columns with no value at all are excluded. Duplicate header
// names are reported once.
func (t *Table) NumericColumns() []string {
	var out []string
	for i, h := range t.Header {
		if t.index[h] != i {
			continue
		}
		seen := 0
		numeric := true
		for _, rec := range t.Rows {
			if i >= len(rec) || isNullToken(rec[i]) {
				continue
			}
			if _, ok := parseNumeric(rec[i], t.opt); !ok {
				numeric = false
				break
			}
			seen++
		}
		if numeric && seen > 0 {
			out = append(out, h)
		}
	}
	return out
}

// Len returns the number of retained rows.
func (f *Frame) Len() int {
	if len(f.Values) == 0 {
		return 0
	}
	return len(f.Values[0])
}

// Column returns the values of the named column, or nil if the frame does not hold it.
func (f *Frame) Column(name string) []float64 {
	for i, c := range f.Columns {
		if c == name {
			return f.Values[i]
		}
	}
	return nil
}
