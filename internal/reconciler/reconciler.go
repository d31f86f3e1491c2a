// Package reconciler turns the outcome of a chart drag into a validated
// change to a timeline.
package reconciler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/calendar"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/scheduler"
)

type DragKind string

const (
	DragMove   DragKind = "move"
	DragResize DragKind = "resize"
)

// Request is a completed drag: phase PhaseID was moved or resized by
// DeltaDays chart days. InitialDays is the duration captured when the drag
// started; zero means "use the phase's current duration".
type Request struct {
	PhaseID     string
	Kind        DragKind
	DeltaDays   int
	InitialDays int
}

// Result describes what a committed drag changed.
type Result struct {
	Changed     bool
	AnchorMoved bool
	Promoted    bool
	Start       time.Time
	End         time.Time
	Days        int
}

// Reconcile applies req to data. On error data is left untouched.
//
// A zero delta is a no-op. Moving the anchor shifts the anchor date. Moving
// any other phase is rejected with domain.ErrCollision when the shifted span
// overlaps another sequential, non-anchor phase; otherwise the phase becomes
// parallel with the shifted span as its manual range.
func Reconcile(data *domain.TimelineData, cal calendar.Calendar, req Request) (Result, error) {
	if req.DeltaDays == 0 {
		return Result{}, nil
	}
	if data.IndexOf(req.PhaseID) < 0 {
		return Result{}, fmt.Errorf("%w: %s", domain.ErrPhaseNotFound, req.PhaseID)
	}

	switch req.Kind {
	case DragResize:
		return resize(data, cal, req)
	case DragMove:
		return move(data, cal, req)
	default:
		return Result{}, fmt.Errorf("unknown drag kind %q", req.Kind)
	}
}

// resize changes the duration. Parallel phases step their manual end in
// calendar days from the manual start, unlike the working-day chain.
func resize(data *domain.TimelineData, cal calendar.Calendar, req Request) (Result, error) {
	p, _ := data.Phase(req.PhaseID)
	initial := req.InitialDays
	if initial == 0 {
		initial = p.Days
	}
	newDays := initial + req.DeltaDays
	if newDays < 1 {
		newDays = 1
	}

	if !p.IsParallel() {
		p.Days = newDays
		return Result{Changed: true, Days: newDays}, nil
	}

	start := data.AnchorDate
	if p.ManualStart != nil {
		start = *p.ManualStart
	} else if row, ok := scheduler.Find(scheduler.Compute(*data, cal), p.ID); ok {
		start = row.Start
	}
	end := domain.AddDays(start, newDays)
	p.SetManualRange(start, end)
	return Result{Changed: true, Start: *p.ManualStart, End: *p.ManualEnd, Days: p.Days}, nil
}

func move(data *domain.TimelineData, cal calendar.Calendar, req Request) (Result, error) {
	rows := scheduler.Compute(*data, cal)
	current, _ := scheduler.Find(rows, req.PhaseID)

	if current.IsAnchor {
		data.AnchorDate = domain.AddDays(data.AnchorDate, req.DeltaDays)
		return Result{Changed: true, AnchorMoved: true}, nil
	}

	start := domain.AddDays(current.Start, req.DeltaDays)
	end := domain.AddDays(current.End, req.DeltaDays)

	for _, other := range rows {
		if other.ID == req.PhaseID || other.IsAnchor || other.IsParallel() {
			continue
		}
		if scheduler.Overlaps(start, end, other.Start, other.End) {
			return Result{}, fmt.Errorf("%w: %q (%s..%s)", domain.ErrCollision, other.Name,
				domain.FormatDate(other.Start), domain.FormatDate(other.End))
		}
	}

	p, _ := data.Phase(req.PhaseID)
	promoted := !p.IsParallel()
	p.Promote(start, end)
	return Result{Changed: true, Promoted: promoted, Start: start, End: end, Days: p.Days}, nil
}
