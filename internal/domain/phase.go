package domain

import "time"

// Phase is one unit of work on a timeline.
//
// Days is authoritative only for sequential phases. For parallel phases it is
// a projection of the manual range and is recomputed whenever the range
// changes. ManualStart and ManualEnd may linger on a sequential phase after it
// leaves parallel mode; they are ignored in that case.
type Phase struct {
	ID          string
	Name        string
	Days        int
	Mode        PhaseMode
	ManualStart *time.Time
	ManualEnd   *time.Time
}

// IsParallel reports whether the phase is manually dated and excluded from
// the chain.
func (p Phase) IsParallel() bool {
	return p.Mode == ModeParallel
}

// Duration returns the sequential duration in working days, floored at 1.
func (p Phase) Duration() int {
	if p.Days < 1 {
		return 1
	}
	return p.Days
}

// SetManualRange stores a manual date range and refreshes the derived Days.
func (p *Phase) SetManualRange(start, end time.Time) {
	s, e := Truncate(start), Truncate(end)
	p.ManualStart = &s
	p.ManualEnd = &e
	p.Days = InclusiveDays(s, e)
}

// Promote converts the phase to parallel mode with the given manual range.
func (p *Phase) Promote(start, end time.Time) {
	p.Mode = ModeParallel
	p.SetManualRange(start, end)
}

// Clone returns a deep copy of the phase.
func (p Phase) Clone() Phase {
	c := p
	if p.ManualStart != nil {
		s := *p.ManualStart
		c.ManualStart = &s
	}
	if p.ManualEnd != nil {
		e := *p.ManualEnd
		c.ManualEnd = &e
	}
	return c
}
