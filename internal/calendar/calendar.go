// Package calendar decides which dates are working days and does
// working-day arithmetic on top of that decision.
//
// All stepping over calendar days for business purposes lives here; callers
// never walk dates themselves.
package calendar

import (
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
)

// Calendar is an immutable holiday set. The zero value has no holidays.
type Calendar struct {
	holidays map[string]struct{}
}

// New builds a Calendar from YYYY-MM-DD holiday strings. Malformed entries
// never match a date, so they are harmless.
func New(holidays []string) Calendar {
	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[strings.TrimSpace(h)] = struct{}{}
	}
	return Calendar{holidays: set}
}

// IsHoliday reports whether t's calendar date is in the holiday set.
func (c Calendar) IsHoliday(t time.Time) bool {
	_, ok := c.holidays[domain.FormatDate(t)]
	return ok
}

// IsWorkingDay is false on Saturdays, Sundays and holidays.
func (c Calendar) IsWorkingDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !c.IsHoliday(t)
}

// AddWorkingDays steps forward until n working days have been passed.
// n <= 0 returns t unchanged, even when t is not itself a working day.
func (c Calendar) AddWorkingDays(t time.Time, n int) time.Time {
	return c.step(t, n, 1)
}

// SubWorkingDays is AddWorkingDays stepping backward.
func (c Calendar) SubWorkingDays(t time.Time, n int) time.Time {
	return c.step(t, n, -1)
}

func (c Calendar) step(t time.Time, n, dir int) time.Time {
	d := domain.Truncate(t)
	for n > 0 {
		d = d.AddDate(0, 0, dir)
		if c.IsWorkingDay(d) {
			n--
		}
	}
	return d
}

// SnapForward returns t if it is a working day, otherwise the next one.
func (c Calendar) SnapForward(t time.Time) time.Time {
	return c.snap(t, 1)
}

// SnapBackward returns t if it is a working day, otherwise the previous one.
func (c Calendar) SnapBackward(t time.Time) time.Time {
	return c.snap(t, -1)
}

func (c Calendar) snap(t time.Time, dir int) time.Time {
	d := domain.Truncate(t)
	for !c.IsWorkingDay(d) {
		d = d.AddDate(0, 0, dir)
	}
	return d
}

// WorkingDaysBetween counts working days strictly between a and b, in either
// order.
func (c Calendar) WorkingDaysBetween(a, b time.Time) int {
	a, b = domain.Truncate(a), domain.Truncate(b)
	if b.Before(a) {
		a, b = b, a
	}
	n := 0
	for d := a.AddDate(0, 0, 1); d.Before(b); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			n++
		}
	}
	return n
}

// WorkingDaysIn counts working days in [start, end].
func (c Calendar) WorkingDaysIn(start, end time.Time) int {
	start, end = domain.Truncate(start), domain.Truncate(end)
	if end.Before(start) {
		return 0
	}
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			n++
		}
	}
	return n
}
