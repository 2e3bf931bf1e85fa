// Package export renders a user's activity log as CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"beachtrack/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

const sheetName = "Activities"

var columns = []string{
	"Date",
	"Category",
	"Description",
	"Logged At",
}

// CSVWriter wraps csv.Writer for exporting activities.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteActivities writes one row per activity.
func (w *CSVWriter) WriteActivities(activities []domain.Activity) error {
	for i := range activities {
		if err := w.csv.Write(activityToRow(&activities[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func activityToRow(a *domain.Activity) []string {
	return []string{
		a.Date,
		a.Category,
		a.Description,
		a.Timestamp.UTC().Format(time.RFC3339),
	}
}

// WriteCSV writes a BOM, the header and all activities as CSV.
func WriteCSV(w io.Writer, activities []domain.Activity) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteActivities(activities); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook with the header and all activities.
func WriteXLSX(w io.Writer, activities []domain.Activity) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range activities {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := activityToRow(&activities[i])
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "B", 14)
	_ = f.SetColWidth(sheetName, "C", "C", 60)
	_ = f.SetColWidth(sheetName, "D", "D", 22)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Write renders activities in format.
func Write(w io.Writer, format domain.ExportFormat, activities []domain.Activity) error {
	switch format {
	case domain.ExportFormatCSV:
		return WriteCSV(w, activities)
	case domain.ExportFormatXLSX:
		return WriteXLSX(w, activities)
	default:
		return domain.ErrUnsupportedExportFormat
	}
}

// ContentType returns the MIME type for format.
func ContentType(format domain.ExportFormat) string {
	if format == domain.ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName returns the attachment name for an export taken at now.
func FileName(format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("activities-%s.%s", now.UTC().Format("20060102"), format)
}
