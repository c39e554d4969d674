// Package output provides merged-view output formatters.
package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/inodb/vibe-dms/internal/frame"
)

// RowWriter writes a table one row at a time.
type RowWriter interface {
	WriteHeader(columns []string) error
	Write(row []string) error
	Flush() error
}

// WriteFrame writes the header and every row of f, then flushes.
func WriteFrame(w RowWriter, f *frame.Frame) error {
	if err := w.WriteHeader(f.Columns()); err != nil {
		return err
	}
	for i := 0; i < f.Len(); i++ {
		if err := w.Write(f.Row(i)); err != nil {
			return err
		}
	}
	return w.Flush()
}

// TabWriter writes rows in tab-delimited format.
type TabWriter struct {
	w *bufio.Writer
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader(columns []string) error {
	_, err := tw.w.WriteString(strings.Join(columns, "\t") + "\n")
	return err
}

// Write writes a single row. Empty cells are written as "-".
func (tw *TabWriter) Write(row []string) error {
	values := make([]string, len(row))
	for i, v := range row {
		if v == "" {
			v = "-"
		}
		values[i] = v
	}
	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
