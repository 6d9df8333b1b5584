package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dayFormat = "2006-01-02"

// FormatBatchID returns an upload batch ID like "2025-01-15-001".
func FormatBatchID(day time.Time, seq int) string {
	return fmt.Sprintf("%s-%03d", day.Format(dayFormat), seq)
}

// ParseBatchID parses "2025-01-15-001" into its day and sequence.
func ParseBatchID(id string) (day time.Time, seq int, err error) {
	i := strings.LastIndex(id, "-")
	if i <= 0 || i == len(id)-1 {
		return time.Time{}, 0, fmt.Errorf("invalid batch ID format: %q", id)
	}

	day, err = time.Parse(dayFormat, id[:i])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid day in batch ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(id[i+1:])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid sequence in batch ID %q: %w", id, err)
	}
	if seq < 1 {
		return time.Time{}, 0, fmt.Errorf("invalid sequence in batch ID %q: must be positive", id)
	}

	return day, seq, nil
}

// DayPrefix returns the prefix shared by every batch ID on day, e.g. "2025-01-15-".
func DayPrefix(day time.Time) string {
	return day.Format(dayFormat) + "-"
}
