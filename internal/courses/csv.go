package courses

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rollbook-dev/rollbook/internal/model"
)

const (
	numFields = 2
	colCode   = 0
	colName   = 1
)

// Header is the CSV header for courses.csv.
const Header = "course_code,course_name"

// ReadCourses reads courses.csv.
func ReadCourses(r io.Reader) ([]model.Course, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading courses CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var courses []model.Course
	for i, rec := range records[1:] {
		c, err := UnmarshalCourse(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// WriteCourses writes courses.csv.
func WriteCourses(w io.Writer, courses []model.Course) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range courses {
		if err := cw.Write(MarshalCourse(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalCourse converts a Course to a CSV row.
func MarshalCourse(c model.Course) []string {
	row := make([]string, numFields)
	row[colCode] = c.Code
	row[colName] = c.Name
	return row
}

// UnmarshalCourse converts a CSV row to a Course.
func UnmarshalCourse(record []string) (model.Course, error) {
	if len(record) != numFields {
		return model.Course{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	c := model.Course{
		Code: strings.TrimSpace(record[colCode]),
		Name: strings.TrimSpace(record[colName]),
	}
	if err := Validate(c); err != nil {
		return model.Course{}, err
	}
	return c, nil
}
