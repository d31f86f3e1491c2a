package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

func TestNewDefaultState(t *testing.T) {
	s := NewDefaultState(testNow)

	require.Len(t, s.Timelines, 1)
	tl := s.Timelines[0]
	assert.Equal(t, tl.ID, s.ActiveTimelineID)
	assert.Empty(t, s.Holidays)
	require.Len(t, tl.Data.Phases, 8)
	assert.Equal(t, "Development", tl.Data.Phases[2].Name)
	assert.Equal(t, tl.Data.Phases[2].ID, tl.Data.AnchorPhaseID)
	assert.Equal(t, AnchorStart, tl.Data.AnchorType)
	assert.Equal(t, SortAsc, tl.Data.SortOrder)

	seen := map[string]bool{}
	for _, p := range tl.Data.Phases {
		assert.False(t, p.IsParallel())
		assert.False(t, seen[p.ID], "phase ids are unique")
		seen[p.ID] = true
	}
}

func TestAppState_Active_FallsBackToFirst(t *testing.T) {
	a := &Timeline{ID: "a"}
	b := &Timeline{ID: "b"}
	s := &AppState{ActiveTimelineID: "b", Timelines: []*Timeline{a, b}}
	assert.Same(t, b, s.Active())

	s.ActiveTimelineID = "stale"
	assert.Same(t, a, s.Active())

	s.Timelines = nil
	assert.Nil(t, s.Active())
}

func TestAppState_Timeline(t *testing.T) {
	a := &Timeline{ID: "a"}
	s := &AppState{ActiveTimelineID: "a", Timelines: []*Timeline{a}}

	got, err := s.Timeline("")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = s.Timeline("nope")
	assert.ErrorIs(t, err, ErrTimelineNotFound)
}
