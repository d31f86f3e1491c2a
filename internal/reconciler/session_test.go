package reconciler

import (
	"testing"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_DayDelta(t *testing.T) {
	row := scheduler.ScheduledPhase{Phase: domain.Phase{ID: "A", Days: 4}}
	s := Begin(row, DragMove, 100)
	assert.Equal(t, 4, s.InitialDays)

	cases := []struct {
		x, cell, want int
	}{
		{100, 3, 0},
		{107, 3, 2},
		{108, 3, 3},
		{95, 2, -3},
		{104, 0, 4},
	}
	for _, tc := range cases {
		s.Move(tc.x)
		assert.Equal(t, tc.want, s.DayDelta(tc.cell), "x=%d cell=%d", tc.x, tc.cell)
	}
}

func TestSession_Request(t *testing.T) {
	row := scheduler.ScheduledPhase{Phase: domain.Phase{ID: "A", Days: 2}}
	s := Begin(row, DragResize, 10)
	s.Move(30)

	req := s.Request(10)
	assert.Equal(t, Request{PhaseID: "A", Kind: DragResize, DeltaDays: 2, InitialDays: 2}, req)
}

func TestTracker_SingleSession(t *testing.T) {
	var tr Tracker
	_, ok := tr.Active()
	assert.False(t, ok)

	require.NoError(t, tr.Start(Session{PhaseID: "A", OriginX: 5}))
	assert.ErrorIs(t, tr.Start(Session{PhaseID: "B"}), domain.ErrDragActive)

	require.NoError(t, tr.Move(9))
	active, ok := tr.Active()
	require.True(t, ok)
	assert.Equal(t, "A", active.PhaseID)
	assert.Equal(t, 4, active.OffsetX)

	ended, err := tr.End()
	require.NoError(t, err)
	assert.Equal(t, 4, ended.OffsetX)

	_, err = tr.End()
	assert.ErrorIs(t, err, domain.ErrNoDrag)
	assert.ErrorIs(t, tr.Move(1), domain.ErrNoDrag)
}

func TestTracker_Cancel(t *testing.T) {
	var tr Tracker
	require.NoError(t, tr.Start(Session{PhaseID: "A"}))
	tr.Cancel()
	_, ok := tr.Active()
	assert.False(t, ok)
	require.NoError(t, tr.Start(Session{PhaseID: "B"}))
}
