package report

import (
	"io"
	"strconv"

	"github.com/rollbook-dev/rollbook/internal/history"
	"github.com/rollbook-dev/rollbook/internal/model"
)

// RenderCourses writes the course table to w.
func RenderCourses(w io.Writer, courses []model.Course) error {
	t := newTable([]string{"Course Code", "Course Name"}).StyleFunc(plainStyle)
	for _, c := range courses {
		t.Row(c.Code, c.Name)
	}
	return render(w, t)
}

// RenderHistory writes upload history rows to w, oldest first.
func RenderHistory(w io.Writer, entries []history.Entry) error {
	t := newTable([]string{"Uploaded", "Batch", "Source", "Records", "Dropped"}).StyleFunc(plainStyle)
	for _, e := range entries {
		t.Row(
			e.Timestamp.Local().Format(DateFormat),
			e.BatchID,
			e.Source,
			strconv.Itoa(e.Entries),
			strconv.Itoa(e.Dropped),
		)
	}
	return render(w, t)
}
