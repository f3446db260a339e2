// Package xlsx writes the expense mirror as a local Excel workbook.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"fintrack/internal/export"
)

// Ensure interface conformance
var _ export.Sink = (*Sink)(nil)

// colWidths are applied to columns A..E in header order.
var colWidths = []float64{12, 20, 30, 12, 40}

// Sink replaces the workbook at path on every write. The file holds a single
// sheet named sheet.
type Sink struct {
	path  string
	sheet string
}

func New(path, sheet string) (*Sink, error) {
	if path == "" {
		return nil, errors.New("xlsx: missing export path")
	}
	if sheet == "" {
		sheet = "Expenses"
	}
	return &Sink{path: path, sheet: sheet}, nil
}

func (s *Sink) Name() string { return "xlsx" }

// Path returns the workbook location.
func (s *Sink) Path() string { return s.path }

// Write builds a fresh workbook and moves it over the previous one, so a
// reader never observes a half written file.
func (s *Sink) Write(ctx context.Context, t export.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", s.sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(s.sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(s.sheet, cell, &r); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := s.styleHeader(f, len(t.Header)); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".fintrack-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close workbook: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace workbook: %w", err)
	}
	return nil
}

func (s *Sink) styleHeader(f *excelize.File, cols int) error {
	if cols == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.sheet, "A1", last, style); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	for i := 0; i < cols && i < len(colWidths); i++ {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.sheet, col, col, colWidths[i]); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}
