package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the attendance mark for one course on one upload.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Entry is a parsed attendance line, not yet stored.
type Entry struct {
	CourseCode string
	CourseName string
	Status     Status
}

// Record is a stored attendance row.
type Record struct {
	ID         int64
	BatchID    string
	CourseCode string
	CourseName string
	RecordedAt time.Time
	Status     Status
}

// CourseStats aggregates all records for one course.
type CourseStats struct {
	Code       string
	Name       string
	Present    int
	Absent     int
	Total      int
	Percentage decimal.Decimal // present / total * 100, one decimal place
}

// PercentageOf returns present/total*100 rounded to one place, half to even,
// or zero when total is zero.
func PercentageOf(present, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(present)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		RoundBank(1)
}
