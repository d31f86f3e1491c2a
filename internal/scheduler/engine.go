package scheduler

import (
	"time"

	"github.com/alexanderramin/gantry/internal/calendar"
	"github.com/alexanderramin/gantry/internal/domain"
)

// ScheduledPhase is a phase with its resolved dates. For parallel phases the
// embedded Days is recomputed from the resolved span.
type ScheduledPhase struct {
	domain.Phase
	Start       time.Time
	End         time.Time
	IsAnchor    bool
	WorkingDays int
}

// RepairAnchor repoints a stale anchor at the first phase. It reports whether
// the data was changed. An empty phase list is left alone.
func RepairAnchor(data *domain.TimelineData) bool {
	if len(data.Phases) == 0 {
		return false
	}
	if data.IndexOf(data.AnchorPhaseID) >= 0 {
		return false
	}
	data.AnchorPhaseID = data.Phases[0].ID
	return true
}

// Run repairs the anchor in place and then computes the schedule.
func Run(data *domain.TimelineData, cal calendar.Calendar) ([]ScheduledPhase, bool) {
	repaired := RepairAnchor(data)
	return Compute(*data, cal), repaired
}

// Compute resolves start and end dates for every phase, in list order.
//
// Sequential phases chain outward from the anchor: backward from the anchor's
// start and forward from its end, one working day apart. Parallel phases take
// their manual range and never move the chain. Compute does not modify data;
// a stale anchor id is treated as the first phase.
func Compute(data domain.TimelineData, cal calendar.Calendar) []ScheduledPhase {
	rows := make([]ScheduledPhase, len(data.Phases))
	if len(data.Phases) == 0 {
		return rows
	}
	for i, p := range data.Phases {
		rows[i] = ScheduledPhase{Phase: p.Clone()}
	}

	anchorIdx := data.IndexOf(data.AnchorPhaseID)
	if anchorIdx < 0 {
		anchorIdx = 0
	}

	anchorStart, anchorEnd := anchorSpan(data, anchorIdx, cal)
	rows[anchorIdx].Start = anchorStart
	rows[anchorIdx].End = anchorEnd
	rows[anchorIdx].IsAnchor = true

	ref := anchorStart
	for i := anchorIdx - 1; i >= 0; i-- {
		p := &data.Phases[i]
		if p.IsParallel() {
			rows[i].Start, rows[i].End = manualSpan(p, data.AnchorDate)
			continue
		}
		end := cal.SubWorkingDays(ref, 1)
		start := cal.SubWorkingDays(end, extraDays(p))
		rows[i].Start, rows[i].End = start, end
		ref = start
	}

	ref = anchorEnd
	for i := anchorIdx + 1; i < len(data.Phases); i++ {
		p := &data.Phases[i]
		if p.IsParallel() {
			rows[i].Start, rows[i].End = manualSpan(p, data.AnchorDate)
			continue
		}
		start := cal.AddWorkingDays(ref, 1)
		end := cal.AddWorkingDays(start, extraDays(p))
		rows[i].Start, rows[i].End = start, end
		ref = end
	}

	for i := range rows {
		r := &rows[i]
		if r.IsParallel() && !r.IsAnchor {
			r.Days = domain.InclusiveDays(r.Start, r.End)
		}
		r.WorkingDays = cal.WorkingDaysIn(r.Start, r.End)
	}
	return rows
}

// anchorSpan places the anchor phase. The anchor is always chained as a
// sequential phase.
func anchorSpan(data domain.TimelineData, idx int, cal calendar.Calendar) (time.Time, time.Time) {
	extra := extraDays(&data.Phases[idx])
	if data.AnchorType == domain.AnchorEnd {
		end := cal.SnapBackward(data.AnchorDate)
		return cal.SubWorkingDays(end, extra), end
	}
	start := cal.SnapForward(data.AnchorDate)
	return start, cal.AddWorkingDays(start, extra)
}

// extraDays is the number of working days a phase occupies beyond its first.
func extraDays(p *domain.Phase) int {
	if p.Days <= 1 {
		return 0
	}
	return p.Days - 1
}

// manualSpan falls back to the anchor date for a missing manual bound.
func manualSpan(p *domain.Phase, anchorDate time.Time) (time.Time, time.Time) {
	start, end := domain.Truncate(anchorDate), domain.Truncate(anchorDate)
	if p.ManualStart != nil {
		start = domain.Truncate(*p.ManualStart)
	}
	if p.ManualEnd != nil {
		end = domain.Truncate(*p.ManualEnd)
	}
	return start, end
}

// Overlaps is the closed-interval test s1 <= e2 && e1 >= s2.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !e1.Before(s2)
}

// Find returns the row for a phase id.
func Find(rows []ScheduledPhase, id string) (ScheduledPhase, bool) {
	for _, r := range rows {
		if r.ID == id {
			return r, true
		}
	}
	return ScheduledPhase{}, false
}
