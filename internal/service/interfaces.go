package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gantry/internal/document"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/reconciler"
	"github.com/alexanderramin/gantry/internal/scheduler"
)

// TimelineSchedule is a timeline together with its resolved dates.
type TimelineSchedule struct {
	Timeline *domain.Timeline
	Active   bool
	Rows     []scheduler.ScheduledPhase
	Summary  scheduler.Summary
}

// Ordered returns the rows in the timeline's display order.
func (s *TimelineSchedule) Ordered() []scheduler.ScheduledPhase {
	return scheduler.Sorted(s.Rows, s.Timeline.Data.SortOrder)
}

// DragOutcome is the result of a committed drag and the schedule after it.
type DragOutcome struct {
	Result   reconciler.Result
	Schedule *TimelineSchedule
}

// ImportResult describes what an import did to the stored state.
type ImportResult struct {
	Shape     document.Shape
	Appended  bool
	Timelines int
	Holidays  int
}

// PlannerService owns every state-changing command. Phase commands act on
// the active timeline.
type PlannerService interface {
	State(ctx context.Context) (*domain.AppState, error)
	Schedule(ctx context.Context, timelineID string) (*TimelineSchedule, error)
	ScheduleAll(ctx context.Context) ([]*TimelineSchedule, error)

	AddPhase(ctx context.Context, name string, days int) (*domain.Phase, error)
	DeletePhase(ctx context.Context, phaseID string) error
	ReorderPhase(ctx context.Context, from, to int) error
	RenamePhase(ctx context.Context, phaseID, name string) error
	SetPhaseDays(ctx context.Context, phaseID string, days int) error
	SetPhaseParallel(ctx context.Context, phaseID string, on bool) error
	SetManualStart(ctx context.Context, phaseID string, date time.Time) error
	SetManualEnd(ctx context.Context, phaseID string, date time.Time) error

	SetAnchor(ctx context.Context, phaseID string) error
	SetAnchorType(ctx context.Context, anchorType domain.AnchorType) error
	SetAnchorDate(ctx context.Context, date time.Time) error
	SetSortOrder(ctx context.Context, order domain.SortOrder) error
	SetHolidays(ctx context.Context, text string) ([]string, error)

	SelectTimeline(ctx context.Context, timelineID string) error
	AddTimeline(ctx context.Context, name string) (*domain.Timeline, error)
	RenameTimeline(ctx context.Context, timelineID, name string) error
	DeleteTimeline(ctx context.Context, timelineID string) error

	Drag(ctx context.Context, req reconciler.Request) (*DragOutcome, error)

	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, raw []byte) (*ImportResult, error)
}
