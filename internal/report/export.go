package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rollbook-dev/rollbook/internal/model"
)

// DateFormat is the timestamp layout used in exported files.
const DateFormat = "2006-01-02 15:04:05"

// Supported export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// RecordHeaders are the column titles of the record export.
var RecordHeaders = []string{"Course Code", "Course Name", "Date", "Status"}

// Sheet names in the Excel export.
const (
	SheetAttendance = "Attendance"
	SheetStatistics = "Statistics"
)

// MarshalRecord converts a stored record into an export row.
func MarshalRecord(r model.Record) []string {
	return []string{r.CourseCode, r.CourseName, r.RecordedAt.Format(DateFormat), string(r.Status)}
}

// WriteCSV writes records, with a header row, to w.
func WriteCSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RecordHeaders); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(MarshalRecord(r)); err != nil {
			return fmt.Errorf("writing record %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes an Excel workbook with the records on an Attendance sheet
// and the per-course statistics on a Statistics sheet.
func WriteXLSX(w io.Writer, records []model.Record, stats []model.CourseStats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetAttendance); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, MarshalRecord(r))
	}
	if err := writeSheet(f, SheetAttendance, RecordHeaders, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetStatistics); err != nil {
		return fmt.Errorf("adding sheet: %w", err)
	}
	if err := writeStatsSheet(f, stats); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	if err := setRow(f, sheet, 1, headers); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// writeStatsSheet stores counts as numbers so they stay usable in formulas.
func writeStatsSheet(f *excelize.File, stats []model.CourseStats) error {
	if err := setRow(f, SheetStatistics, 1, StatsHeaders); err != nil {
		return err
	}
	for i, s := range stats {
		pct, _ := s.Percentage.Float64()
		row := []any{s.Code, s.Name, s.Present, s.Absent, s.Total, pct}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("stats row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetStatistics, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", SheetStatistics, i+2, err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, n int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, n, err)
	}
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, n, err)
	}
	return nil
}
