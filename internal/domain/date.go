package domain

import (
	"fmt"
	"time"
)

// DateLayout is the storage and wire format for date-only values.
const DateLayout = "2006-01-02"

// Date returns the civil date y-m-d. Date-only values are always held at
// midnight UTC so that day arithmetic never crosses a DST boundary.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the time-of-day, keeping the calendar date as seen in t's
// own location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// Today returns the current local calendar date.
func Today(now time.Time) time.Time {
	return Truncate(now.Local())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts a date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return Truncate(t).AddDate(0, 0, n)
}

// InclusiveDays counts the calendar days from start to end, both included.
func InclusiveDays(start, end time.Time) int {
	diff := Truncate(end).Sub(Truncate(start))
	return int(diff.Hours()/24) + 1
}
