// Package xlsxexport writes a Record as an Excel workbook.
//
// The "Record" sheet mirrors the CSV layout. "Ratings" breaks the ratings out
// one criterion per row, and "Staff" lists the employee names for variants
// that collect them.
package xlsxexport

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/okian/scorecard/internal/adapters/export"
	"github.com/okian/scorecard/internal/adapters/export/csvexport"
	"github.com/okian/scorecard/internal/domain/model"
)

// MIME is the content type offered with workbook downloads.
const MIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names.
const (
	RecordSheet  = "Record"
	RatingsSheet = "Ratings"
	StaffSheet   = "Staff"
)

const defaultSheet = "Sheet1"

// Exporter implements export.Exporter for XLSX.
type Exporter struct{}

// New returns an XLSX exporter.
func New() *Exporter { return &Exporter{} }

// Format implements export.Exporter.
func (e *Exporter) Format() export.Format { return export.XLSX }

// Export implements export.Exporter.
func (e *Exporter) Export(_ context.Context, v model.Variant, rec model.Record) (export.Artifact, error) {
	data, err := Encode(v, rec)
	if err != nil {
		return export.Artifact{}, err
	}
	return export.Artifact{FileName: v.FileName("xlsx"), MIME: MIME, Data: data}, nil
}

// Encode builds the workbook and returns its bytes.
func Encode(v model.Variant, rec model.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("%w: style: %w", ErrWorkbook, err)
	}

	if err := f.SetSheetName(defaultSheet, RecordSheet); err != nil {
		return nil, fmt.Errorf("%w: rename sheet: %w", ErrWorkbook, err)
	}
	header := csvexport.Header(v)
	row := toCells(csvexport.Row(rec))
	row[0] = rec.OverallRating
	if err := writeTable(f, RecordSheet, bold, header, [][]any{row}); err != nil {
		return nil, err
	}

	ratings := make([][]any, len(rec.Ratings))
	for i, r := range rec.Ratings {
		ratings[i] = []any{r.Criterion, r.Score}
	}
	if err := addSheet(f, RatingsSheet, bold, []string{"Criterion", "Score"}, ratings); err != nil {
		return nil, err
	}

	if v.CollectsNames {
		staff := make([][]any, len(rec.EmployeeNames))
		for i, name := range rec.EmployeeNames {
			staff[i] = []any{name}
		}
		if err := addSheet(f, StaffSheet, bold, []string{model.EmployeeNamesTitle}, staff); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: write: %w", ErrWorkbook, err)
	}
	return buf.Bytes(), nil
}

func addSheet(f *excelize.File, name string, headerStyle int, header []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("%w: new sheet %s: %w", ErrWorkbook, name, err)
	}
	return writeTable(f, name, headerStyle, header, rows)
}

// writeTable writes a bold header on row 1 followed by rows.
func writeTable(f *excelize.File, sheet string, headerStyle int, header []string, rows [][]any) error {
	if err := setRow(f, sheet, 1, toCells(header)); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("%w: %s header style: %w", ErrWorkbook, sheet, err)
	}
	for i, row := range rows {
		if err := checkCells(sheet, header, row); err != nil {
			return err
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// checkCells rejects text excelize would truncate.
func checkCells(sheet string, header []string, row []any) error {
	for j, cell := range row {
		s, ok := cell.(string)
		if !ok {
			continue
		}
		if n := utf8.RuneCountInString(s); n > excelize.TotalCellChars {
			col := ""
			if j < len(header) {
				col = header[j]
			}
			return fmt.Errorf("%w: %s %q has %d characters", ErrCellTooLong, sheet, col, n)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, n int, cells []any) error {
	axis, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("%w: %s row %d: %w", ErrWorkbook, sheet, n, err)
	}
	if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
		return fmt.Errorf("%w: %s row %d: %w", ErrWorkbook, sheet, n, err)
	}
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
