package testutil

import (
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/google/uuid"
)

// FixedNow is the clock used by fixtures: a Wednesday.
var FixedNow = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

// Phase options
type PhaseOption func(*domain.Phase)

func WithPhaseID(id string) PhaseOption {
	return func(p *domain.Phase) {
		p.ID = id
	}
}

// WithManualRange makes the phase parallel with the given inclusive range.
func WithManualRange(start, end time.Time) PhaseOption {
	return func(p *domain.Phase) {
		p.Promote(start, end)
	}
}

func NewTestPhase(name string, days int, opts ...PhaseOption) domain.Phase {
	p := domain.Phase{
		ID:   uuid.New().String(),
		Name: name,
		Days: days,
		Mode: domain.ModeSequential,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Timeline options
type TimelineOption func(*domain.Timeline)

func WithTimelineID(id string) TimelineOption {
	return func(t *domain.Timeline) {
		t.ID = id
	}
}

func WithPhases(phases ...domain.Phase) TimelineOption {
	return func(t *domain.Timeline) {
		t.Data.Phases = phases
		if len(phases) > 0 && t.Data.AnchorPhaseID == "" {
			t.Data.AnchorPhaseID = phases[0].ID
		}
	}
}

func WithAnchor(phaseID string) TimelineOption {
	return func(t *domain.Timeline) {
		t.Data.AnchorPhaseID = phaseID
	}
}

func WithAnchorDate(d time.Time) TimelineOption {
	return func(t *domain.Timeline) {
		t.Data.AnchorDate = d
	}
}

func WithAnchorType(a domain.AnchorType) TimelineOption {
	return func(t *domain.Timeline) {
		t.Data.AnchorType = a
	}
}

// NewTestTimeline returns an empty timeline anchored on FixedNow's date.
// Options run in order, so WithAnchor after WithPhases overrides the default
// first-phase anchor.
func NewTestTimeline(name string, opts ...TimelineOption) *domain.Timeline {
	t := &domain.Timeline{
		ID:   uuid.New().String(),
		Name: name,
		Data: domain.TimelineData{
			AnchorDate: domain.Truncate(FixedNow),
			AnchorType: domain.AnchorStart,
			SortOrder:  domain.SortAsc,
			Phases:     []domain.Phase{},
		},
		CreatedAt: FixedNow,
		UpdatedAt: FixedNow,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestState bundles timelines into a state whose first timeline is active.
func NewTestState(timelines ...*domain.Timeline) *domain.AppState {
	s := &domain.AppState{Holidays: []string{}, Timelines: timelines}
	if len(timelines) > 0 {
		s.ActiveTimelineID = timelines[0].ID
	}
	return s
}
