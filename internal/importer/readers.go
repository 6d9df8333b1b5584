package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// cellSeparator joins spreadsheet cells into one roster line. The parser
// treats a run of tabs as a single delimiter, so empty cells collapse.
const cellSeparator = "\t"

// TextReader passes plain text and tab-separated rosters through unchanged.
type TextReader struct{}

// Format returns the reader name.
func (r *TextReader) Format() string { return "text" }

// Extensions returns the file extensions handled by the reader.
func (r *TextReader) Extensions() []string { return []string{".txt", ".tsv"} }

// ReadText returns the file contents as-is.
func (r *TextReader) ReadText(in io.Reader) (string, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading text: %w", err)
	}
	return string(data), nil
}

// CSVReader converts a comma-separated roster into tab-separated lines.
type CSVReader struct{}

// Format returns the reader name.
func (r *CSVReader) Format() string { return "csv" }

// Extensions returns the file extensions handled by the reader.
func (r *CSVReader) Extensions() []string { return []string{".csv"} }

// ReadText reads every row and joins its fields with tabs.
func (r *CSVReader) ReadText(in io.Reader) (string, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return "", fmt.Errorf("reading roster CSV: %w", err)
	}
	return joinRows(records), nil
}

// XLSXReader converts the first worksheet of an Excel workbook into
// tab-separated lines.
type XLSXReader struct{}

// Format returns the reader name.
func (r *XLSXReader) Format() string { return "xlsx" }

// Extensions returns the file extensions handled by the reader.
func (r *XLSXReader) Extensions() []string { return []string{".xlsx"} }

// ReadText reads the rows of the first sheet.
func (r *XLSXReader) ReadText(in io.Reader) (string, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return "", fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return joinRows(rows), nil
}

func joinRows(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, cellSeparator))
		b.WriteByte('\n')
	}
	return b.String()
}
