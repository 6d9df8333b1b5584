package attendance

import (
	"fmt"

	"github.com/rollbook-dev/rollbook/internal/model"
)

// ValidationError describes one entry that must not be stored.
type ValidationError struct {
	Line       int // 1-based position among parsed entries
	CourseCode string
	Reason     string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("entry %d [%s]: %s", e.Line, e.CourseCode, e.Reason)
}

// CourseChecker tests whether a course code is in the known course table.
type CourseChecker interface {
	Exists(code string) bool
}

// ValidateEntries checks every entry names a known course and carries a
// known status.
func ValidateEntries(entries []model.Entry, courses CourseChecker) []ValidationError {
	var errs []ValidationError
	for i, e := range entries {
		if !courses.Exists(e.CourseCode) {
			errs = append(errs, ValidationError{
				Line:       i + 1,
				CourseCode: e.CourseCode,
				Reason:     "unknown course code",
			})
		}
		if !e.Status.Valid() {
			errs = append(errs, ValidationError{
				Line:       i + 1,
				CourseCode: e.CourseCode,
				Reason:     fmt.Sprintf("invalid status %q", e.Status),
			})
		}
	}
	return errs
}
