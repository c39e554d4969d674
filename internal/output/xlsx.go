package output

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/inodb/vibe-dms/internal/frame"
)

// SheetName is the worksheet the XLSX writer fills.
const SheetName = "merged"

// XLSXWriter writes rows into a single-sheet Excel workbook. Numeric cells are
// stored as numbers; everything else as text. The workbook is written to the
// underlying writer on Flush.
type XLSXWriter struct {
	out  io.Writer
	file *excelize.File
	row  int
}

// NewXLSXWriter creates a workbook writer that emits to w.
func NewXLSXWriter(w io.Writer) (*XLSXWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	return &XLSXWriter{out: w, file: f, row: 1}, nil
}

// WriteHeader writes the header row and freezes it.
func (xw *XLSXWriter) WriteHeader(columns []string) error {
	cells := make([]any, len(columns))
	for i, c := range columns {
		cells[i] = c
	}
	if err := xw.setRow(cells); err != nil {
		return err
	}
	return xw.file.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// Write writes a single row.
func (xw *XLSXWriter) Write(row []string) error {
	cells := make([]any, len(row))
	for i, v := range row {
		cells[i] = v
		if v == "" {
			continue
		}
		if n, err := frame.ParseFloat(v); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			cells[i] = n
		}
	}
	return xw.setRow(cells)
}

func (xw *XLSXWriter) setRow(cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, xw.row)
	if err != nil {
		return err
	}
	if err := xw.file.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", xw.row, err)
	}
	xw.row++
	return nil
}

// Flush writes the workbook and releases it. The writer cannot be used after.
func (xw *XLSXWriter) Flush() error {
	defer xw.file.Close()
	if err := xw.file.Write(xw.out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
