// Package report renders attendance statistics for the terminal and exports
// stored records to CSV and Excel files.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/rollbook-dev/rollbook/internal/model"
)

// StatsHeaders are the column titles of the statistics table.
var StatsHeaders = []string{"Course Code", "Course Name", "Present", "Absent", "Total", "Percentage"}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	lowStyle    = numberStyle.Foreground(lipgloss.Color("196"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// lowAttendance marks percentages rendered in the warning colour.
var lowAttendance = decimal.NewFromInt(75)

// FormatPercentage renders a percentage with one decimal place, e.g. "66.7%".
func FormatPercentage(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}

// StatsRows converts stats into table rows in the order given.
func StatsRows(stats []model.CourseStats) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Code,
			s.Name,
			strconv.Itoa(s.Present),
			strconv.Itoa(s.Absent),
			strconv.Itoa(s.Total),
			FormatPercentage(s.Percentage),
		})
	}
	return rows
}

// RenderStats writes the statistics table to w.
func RenderStats(w io.Writer, stats []model.CourseStats) error {
	t := newTable(StatsHeaders).
		Rows(StatsRows(stats)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col < 2:
				return cellStyle
			case col == 5 && row < len(stats) && stats[row].Total > 0 &&
				stats[row].Percentage.LessThan(lowAttendance):
				return lowStyle
			default:
				return numberStyle
			}
		})

	return render(w, t)
}

func newTable(headers []string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...)
}

func plainStyle(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return headerStyle
	}
	return cellStyle
}

func render(w io.Writer, t *table.Table) error {
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}
