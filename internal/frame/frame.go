// Package frame provides a small immutable, column-labelled table of string cells.
//
// Cells are kept as the raw text read from the source file. Typed access
// (Float, Strings) converts on demand so that a table can carry numeric score
// columns, residue labels and yes/no flag columns side by side.
package frame

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrColumnNotFound is returned when a requested column label does not exist.
var ErrColumnNotFound = errors.New("column not found")

// Frame is an immutable table. Columns are addressed by label; rows by index.
type Frame struct {
	columns []string
	index   map[string]int
	records [][]string
}

// New creates a frame from a header and row-major records.
// Every record must have exactly len(columns) cells and column labels must be unique.
func New(columns []string, records [][]string) (*Frame, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		index[c] = i
	}
	for i, rec := range records {
		if len(rec) != len(columns) {
			return nil, fmt.Errorf("row %d: got %d cells, want %d", i, len(rec), len(columns))
		}
	}
	return &Frame{
		columns: append([]string(nil), columns...),
		index:   index,
		records: records,
	}, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.records) }

// Columns returns a copy of the column labels in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Has reports whether the frame has a column with the given label.
func (f *Frame) Has(col string) bool {
	_, ok := f.index[col]
	return ok
}

// Cell returns the raw text at row i, column col.
func (f *Frame) Cell(i int, col string) (string, error) {
	j, ok := f.index[col]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrColumnNotFound, col)
	}
	return f.records[i][j], nil
}

// Row returns a copy of row i in column order.
func (f *Frame) Row(i int) []string {
	return append([]string(nil), f.records[i]...)
}

// Strings returns the raw text of a column.
func (f *Frame) Strings(col string) ([]string, error) {
	j, ok := f.index[col]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, col)
	}
	out := make([]string, len(f.records))
	for i, rec := range f.records {
		out[i] = rec[j]
	}
	return out, nil
}

// Float returns a column parsed as float64. Missing values become NaN.
func (f *Frame) Float(col string) ([]float64, error) {
	vals, err := f.Strings(col)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vals))
	for i, s := range vals {
		v, err := ParseFloat(s)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", col, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Range returns the labels from `from` through `to` inclusive, in column order.
// It addresses a contiguous block of columns by label, the way a score block
// "A" through "Y" is selected.
func (f *Frame) Range(from, to string) ([]string, error) {
	i, ok := f.index[from]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, from)
	}
	j, ok := f.index[to]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, to)
	}
	if j < i {
		return nil, nil
	}
	return append([]string(nil), f.columns[i:j+1]...), nil
}

// WithColumn returns a new frame with col set to values. An existing column
// of the same label is replaced; otherwise the column is appended.
func (f *Frame) WithColumn(col string, values []string) (*Frame, error) {
	if len(values) != len(f.records) {
		return nil, fmt.Errorf("column %q: got %d values, want %d", col, len(values), len(f.records))
	}
	columns := f.Columns()
	j, replace := f.index[col]
	if !replace {
		j = len(columns)
		columns = append(columns, col)
	}
	records := make([][]string, len(f.records))
	for i, rec := range f.records {
		row := make([]string, len(columns))
		copy(row, rec)
		row[j] = values[i]
		records[i] = row
	}
	return New(columns, records)
}

// missing lists the cell spellings read as a missing numeric value.
var missing = map[string]bool{
	"": true, "NA": true, "N/A": true, "NaN": true, "nan": true,
	"-nan": true, "null": true, "NULL": true, "None": true,
}

// ParseFloat parses a numeric cell. Missing-value spellings yield NaN.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if missing[s] {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q as number: %w", s, err)
	}
	return v, nil
}
