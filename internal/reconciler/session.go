package reconciler

import (
	"math"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/scheduler"
)

// Session is the transient state of one drag gesture. Moving it only changes
// the visual offset; nothing is committed until the session ends.
type Session struct {
	PhaseID     string
	Kind        DragKind
	InitialDays int
	OriginX     int
	OffsetX     int
}

// Begin captures the dragged phase and its current effective duration.
func Begin(row scheduler.ScheduledPhase, kind DragKind, originX int) Session {
	return Session{
		PhaseID:     row.ID,
		Kind:        kind,
		InitialDays: row.Days,
		OriginX:     originX,
	}
}

// Move records the pointer position x.
func (s *Session) Move(x int) {
	s.OffsetX = x - s.OriginX
}

// DayDelta converts the pixel offset to whole days, rounding to the nearest.
func (s Session) DayDelta(cellWidth int) int {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	return int(math.Round(float64(s.OffsetX) / float64(cellWidth)))
}

// Request turns the finished gesture into a reconcile request.
func (s Session) Request(cellWidth int) Request {
	return Request{
		PhaseID:     s.PhaseID,
		Kind:        s.Kind,
		DeltaDays:   s.DayDelta(cellWidth),
		InitialDays: s.InitialDays,
	}
}

// Tracker holds at most one active session.
type Tracker struct {
	active *Session
}

// Start opens a session. A second concurrent session is refused.
func (t *Tracker) Start(s Session) error {
	if t.active != nil {
		return domain.ErrDragActive
	}
	t.active = &s
	return nil
}

// Active returns the open session, if any.
func (t *Tracker) Active() (Session, bool) {
	if t.active == nil {
		return Session{}, false
	}
	return *t.active, true
}

// Move updates the visual offset of the open session.
func (t *Tracker) Move(x int) error {
	if t.active == nil {
		return domain.ErrNoDrag
	}
	t.active.Move(x)
	return nil
}

// End closes the open session and returns it for committing.
func (t *Tracker) End() (Session, error) {
	if t.active == nil {
		return Session{}, domain.ErrNoDrag
	}
	s := *t.active
	t.active = nil
	return s, nil
}

// Cancel drops the open session without committing.
func (t *Tracker) Cancel() {
	t.active = nil
}
