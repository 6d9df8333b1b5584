package courses

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/rollbook-dev/rollbook/internal/model"
)

// FileName is the course table file in a workspace root.
const FileName = "courses.csv"

// Table is the known course table. Codes keep their declared order, which is
// the tie-break order for any lookup that scans the whole table.
type Table struct {
	courses []model.Course
	byCode  map[string]model.Course
}

// NewTable builds a Table, rejecting invalid courses and duplicate codes.
func NewTable(courses []model.Course) (*Table, error) {
	byCode := make(map[string]model.Course, len(courses))
	for _, c := range courses {
		if err := Validate(c); err != nil {
			return nil, err
		}
		if _, dup := byCode[c.Code]; dup {
			return nil, fmt.Errorf("duplicate course code %q", c.Code)
		}
		byCode[c.Code] = c
	}
	return &Table{courses: slices.Clone(courses), byCode: byCode}, nil
}

// Default returns a Table over DefaultTable.
func Default() *Table {
	t, err := NewTable(DefaultTable())
	if err != nil {
		panic("invalid default course table: " + err.Error())
	}
	return t
}

// ErrEmptyTable is returned by Load when courses.csv lists no courses.
var ErrEmptyTable = errors.New("course table is empty")

// Load reads courses.csv from a workspace root.
func Load(root string) (*Table, error) {
	path := filepath.Join(root, FileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening course table: %w", err)
	}
	defer f.Close()

	cs, err := ReadCourses(f)
	if err != nil {
		return nil, fmt.Errorf("reading course table: %w", err)
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("%w: add courses to %s", ErrEmptyTable, path)
	}
	return NewTable(cs)
}

// All returns a copy of every course in declared order.
func (t *Table) All() []model.Course {
	return slices.Clone(t.courses)
}

// Codes returns every course code in declared order.
func (t *Table) Codes() []string {
	codes := make([]string, len(t.courses))
	for i, c := range t.courses {
		codes[i] = c.Code
	}
	return codes
}

// Lookup returns the course for code.
func (t *Table) Lookup(code string) (model.Course, bool) {
	c, ok := t.byCode[code]
	return c, ok
}

// Exists reports whether code is a known course.
func (t *Table) Exists(code string) bool {
	_, ok := t.byCode[code]
	return ok
}

// Len returns the number of courses.
func (t *Table) Len() int {
	return len(t.courses)
}

// Save writes the table to courses.csv in root.
func (t *Table) Save(root string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("creating workspace dir: %w", err)
	}

	f, err := os.Create(filepath.Join(root, FileName))
	if err != nil {
		return fmt.Errorf("creating course table file: %w", err)
	}
	defer f.Close()

	if err := WriteCourses(f, t.courses); err != nil {
		return fmt.Errorf("writing course table: %w", err)
	}
	return nil
}
