package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppState is everything the planner persists: the shared holiday list and
// the ordered set of timelines.
type AppState struct {
	ActiveTimelineID string
	Holidays         []string
	Timelines        []*Timeline
}

// Active resolves the active timeline. A stale ActiveTimelineID falls back to
// the first timeline. Returns nil only when there are no timelines.
func (s *AppState) Active() *Timeline {
	for _, t := range s.Timelines {
		if t.ID == s.ActiveTimelineID {
			return t
		}
	}
	if len(s.Timelines) > 0 {
		return s.Timelines[0]
	}
	return nil
}

// Timeline looks a timeline up by id. An empty id resolves to the active one.
func (s *AppState) Timeline(id string) (*Timeline, error) {
	if id == "" {
		if t := s.Active(); t != nil {
			return t, nil
		}
		return nil, ErrTimelineNotFound
	}
	for _, t := range s.Timelines {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTimelineNotFound, id)
}

// DefaultPhases mirrors a typical waterfall plan.
var DefaultPhases = []struct {
	Name string
	Days int
}{
	{"Requirements", 5},
	{"Design", 10},
	{"Development", 20},
	{"Testing", 10},
	{"UAT", 5},
	{"Deployment", 2},
	{"Hypercare", 5},
	{"Closure", 2},
}

// defaultAnchorIndex points at Development.
const defaultAnchorIndex = 2

// NewDefaultTimeline builds a timeline populated with DefaultPhases, anchored
// at the start of development on today's date.
func NewDefaultTimeline(name string, now time.Time) *Timeline {
	phases := make([]Phase, len(DefaultPhases))
	for i, dp := range DefaultPhases {
		phases[i] = Phase{
			ID:   uuid.New().String(),
			Name: dp.Name,
			Days: dp.Days,
			Mode: ModeSequential,
		}
	}
	return &Timeline{
		ID:   uuid.New().String(),
		Name: name,
		Data: TimelineData{
			AnchorDate:    Today(now),
			AnchorPhaseID: phases[defaultAnchorIndex].ID,
			AnchorType:    AnchorStart,
			SortOrder:     SortAsc,
			Phases:        phases,
		},
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

// NewDefaultState is the first-run state: one default timeline and no
// holidays.
func NewDefaultState(now time.Time) *AppState {
	t := NewDefaultTimeline("Main timeline", now)
	return &AppState{
		ActiveTimelineID: t.ID,
		Holidays:         []string{},
		Timelines:        []*Timeline{t},
	}
}
