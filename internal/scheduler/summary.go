package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
)

// Summary describes the overall extent of a computed schedule.
type Summary struct {
	Start        time.Time
	End          time.Time
	CalendarDays int
	PhaseCount   int
	Parallel     int
}

// Summarize returns the earliest start and latest end across rows. The zero
// Summary is returned for an empty schedule.
func Summarize(rows []ScheduledPhase) Summary {
	var s Summary
	for i, r := range rows {
		if i == 0 || r.Start.Before(s.Start) {
			s.Start = r.Start
		}
		if i == 0 || r.End.After(s.End) {
			s.End = r.End
		}
		if r.IsParallel() {
			s.Parallel++
		}
	}
	s.PhaseCount = len(rows)
	if len(rows) > 0 {
		s.CalendarDays = domain.InclusiveDays(s.Start, s.End)
	}
	return s
}

// Sorted returns rows in display order by start date. Ties keep list order.
// The input is not modified.
func Sorted(rows []ScheduledPhase, order domain.SortOrder) []ScheduledPhase {
	out := make([]ScheduledPhase, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		if order == domain.SortDesc {
			return out[i].Start.After(out[j].Start)
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
