package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainDoc is Alpha(3) Beta(3) Gamma(2) anchored at the start of Alpha on
// Monday 2024-01-08: Alpha Jan 8-10, Beta Jan 11-15, Gamma Jan 16-17.
const chainDoc = `{
  "activeTimelineId": "t1",
  "globalHolidays": [],
  "timelines": [
    {"id": "t1", "name": "Plan", "data": {
      "anchorDate": "2024-01-08", "anchorPhaseId": "aaaa1111",
      "anchorType": "start", "sortOrder": "asc",
      "phases": [
        {"id": "aaaa1111", "name": "Alpha", "days": 3},
        {"id": "bbbb2222", "name": "Beta", "days": 3},
        {"id": "cccc3333", "name": "Gamma", "days": 2}
      ]}}
  ]
}`

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := func() time.Time { return testutil.FixedNow }
	return &App{
		Planner:       service.NewPlannerService(testutil.NewTestUoW(database), service.PlannerOptions{Now: clock}),
		CellWidth:     2,
		ChartMaxDays:  120,
		Now:           clock,
		IsInteractive: func() bool { return false },
	}
}

// chainApp is testApp seeded with chainDoc.
func chainApp(t *testing.T) *App {
	t.Helper()
	app := testApp(t)
	_, err := app.Planner.Import(context.Background(), []byte(chainDoc))
	require.NoError(t, err)
	return app
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, app, nil, args...)
}

func executeCmdWithInput(t *testing.T, app *App, in io.Reader, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	if in != nil {
		root.SetIn(in)
	}
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

func activeTimeline(t *testing.T, app *App) *domain.Timeline {
	t.Helper()
	state, err := app.Planner.State(context.Background())
	require.NoError(t, err)
	return state.Active()
}

func phaseByID(t *testing.T, app *App, id string) domain.Phase {
	t.Helper()
	p, err := activeTimeline(t, app).Data.Phase(id)
	require.NoError(t, err)
	return *p
}

func phaseNames(t *testing.T, app *App) []string {
	t.Helper()
	var names []string
	for _, p := range activeTimeline(t, app).Data.Phases {
		names = append(names, p.Name)
	}
	return names
}

// --- schedule ---

func TestScheduleCmd_ShowsChainDates(t *testing.T) {
	app := chainApp(t)

	out, err := executeCmd(t, app, "schedule")
	require.NoError(t, err)
	assert.Contains(t, out, "PLAN (ACTIVE)")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Jan 11")
	assert.Contains(t, out, "Span    Jan 08 → Jan 17")
}

func TestScheduleCmd_SortOverrideIsNotStored(t *testing.T) {
	app := chainApp(t)

	out, err := executeCmd(t, app, "schedule", "--sort", "desc")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Gamma"), strings.Index(out, "Alpha"))
	assert.Equal(t, domain.SortAsc, activeTimeline(t, app).Data.SortOrder)

	_, err = executeCmd(t, app, "schedule", "--sort", "sideways")
	assert.ErrorIs(t, err, domain.ErrInvalidOption)
}

func TestScheduleCmd_AllAndByTimeline(t *testing.T) {
	app := chainApp(t)
	_, err := executeCmd(t, app, "timeline", "add", "Second")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "schedule", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "PLAN")
	assert.Contains(t, out, "SECOND (ACTIVE)")

	out, err = executeCmd(t, app, "schedule", "--timeline", "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "PLAN")
	assert.NotContains(t, out, "SECOND")
}

// --- timeline ---

func TestTimelineCmd_Lifecycle(t *testing.T) {
	app := chainApp(t)

	out, err := executeCmd(t, app, "timeline", "add", "Second", "--anchor-date", "2024-03-04")
	require.NoError(t, err)
	assert.Contains(t, out, "Created timeline Second")
	second := activeTimeline(t, app)
	assert.Equal(t, "Second", second.Name)
	assert.Equal(t, domain.Date(2024, 3, 4), second.Data.AnchorDate)

	out, err = executeCmd(t, app, "timeline", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Plan")
	assert.Contains(t, out, "Second")

	_, err = executeCmd(t, app, "timeline", "select", "plan")
	require.NoError(t, err)
	assert.Equal(t, "t1", activeTimeline(t, app).ID)

	_, err = executeCmd(t, app, "timeline", "rename", "t1", "Launch")
	require.NoError(t, err)
	assert.Equal(t, "Launch", activeTimeline(t, app).Name)

	_, err = executeCmd(t, app, "timeline", "rm", second.ID[:8])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without --yes")

	_, err = executeCmd(t, app, "timeline", "rm", second.ID[:8], "--yes")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "timeline", "rm", "t1", "--yes")
	assert.ErrorIs(t, err, domain.ErrLastTimeline)
}

func TestTimelineCmd_UnknownID(t *testing.T) {
	app := chainApp(t)

	_, err := executeCmd(t, app, "timeline", "select", "nope")
	assert.ErrorIs(t, err, domain.ErrTimelineNotFound)
}

// --- phase ---

func TestPhaseCmd_AddAndList(t *testing.T) {
	app := chainApp(t)

	out, err := executeCmd(t, app, "phase", "add", "Review", "--days", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Added phase Review (4 days)")

	out, err = executeCmd(t, app, "phase", "add")
	require.NoError(t, err)
	assert.Contains(t, out, "Added phase Phase 5 (5 days)")

	out, err = executeCmd(t, app, "phase", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Review")
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma", "Review", "Phase 5"}, phaseNames(t, app))
}

func TestPhaseCmd_RemoveByPrefix(t *testing.T) {
	app := chainApp(t)

	_, err := executeCmd(t, app, "phase", "rm", "bbbb")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Gamma"}, phaseNames(t, app))

	_, err = executeCmd(t, app, "phase", "rm", "bbbb")
	assert.ErrorIs(t, err, domain.ErrPhaseNotFound)
}

func TestPhaseCmd_MoveRenameDays(t *testing.T) {
	app := chainApp(t)

	_, err := executeCmd(t, app, "phase", "move", "0", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Gamma", "Alpha"}, phaseNames(t, app))

	_, err = executeCmd(t, app, "phase", "move", "0", "9")
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	_, err = executeCmd(t, app, "phase", "move", "x", "1")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "phase", "rename", "Beta", "Build")
	require.NoError(t, err)
	assert.Equal(t, "Build", phaseByID(t, app, "bbbb2222").Name)

	_, err = executeCmd(t, app, "phase", "days", "bbbb2222", "5")
	require.NoError(t, err)
	assert.Equal(t, 5, phaseByID(t, app, "bbbb2222").Days)
}

func TestPhaseCmd_ParallelAndManualDates(t *testing.T) {
	app := chainApp(t)

	_, err := executeCmd(t, app, "phase", "parallel", "alpha", "on")
	assert.ErrorIs(t, err, domain.ErrAnchorParallel)

	_, err = executeCmd(t, app, "phase", "parallel", "gamma", "maybe")
	assert.ErrorIs(t, err, domain.ErrInvalidOption)

	out, err := executeCmd(t, app, "phase", "parallel", "gamma", "on")
	require.NoError(t, err)
	assert.Contains(t, out, "now parallel")

	_, err = executeCmd(t, app, "phase", "end", "gamma", "2024-01-19")
	require.NoError(t, err)
	g := phaseByID(t, app, "cccc3333")
	assert.True(t, g.IsParallel())
	require.NotNil(t, g.ManualStart)
	assert.Equal(t, domain.Date(2024, 1, 16), *g.ManualStart)
	assert.Equal(t, domain.Date(2024, 1, 19), *g.ManualEnd)
	assert.Equal(t, 4, g.Days)

	_, err = executeCmd(t, app, "phase", "start", "gamma", "01/20/2024")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

// --- anchor ---

func TestAnchorCmd(t *testing.T) {
	app := chainApp(t)

	_, err := executeCmd(t, app, "anchor", "phase", "gamma")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "anchor", "type", "end")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "anchor", "date", "2024-02-01")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "anchor", "sort", "desc")
	require.NoError(t, err)

	data := activeTimeline(t, app).Data
	assert.Equal(t, "cccc3333", data.AnchorPhaseID)
	assert.Equal(t, domain.AnchorEnd, data.AnchorType)
	assert.Equal(t, domain.Date(2024, 2, 1), data.AnchorDate)
	assert.Equal(t, domain.SortDesc, data.SortOrder)

	_, err = executeCmd(t, app, "anchor", "type", "middle")
	assert.ErrorIs(t, err, domain.ErrInvalidOption)
}

// --- drag ---

func TestDragCmd_CollisionIsRejected(t *testing.T) {
	app := chainApp(t)

	_, err := executeCmd(t, app, "drag", "move", "beta", "1")
	assert.ErrorIs(t, err, domain.ErrCollision)
	assert.False(t, phaseByID(t, app, "bbbb2222").IsParallel())
}

func TestDragCmd_MovePromotes(t *testing.T) {
	app := chainApp(t)

	out, err := executeCmd(t, app, "drag", "move", "gamma", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Phase is now parallel: Jan 18 → Jan 19 (2 days)")
	assert.True(t, phaseByID(t, app, "cccc3333").IsParallel())
}

func TestDragCmd_AnchorMoveShiftsDate(t *testing.T) {
	app := chainApp(t)

	out, err := executeCmd(t, app, "drag", "move", "alpha", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Anchor moved; chain now starts Jan 15")
	assert.Equal(t, domain.Date(2024, 1, 15), activeTimeline(t, app).Data.AnchorDate)
}

func TestDragCmd_ResizeAndNoop(t *testing.T) {
	app := chainApp(t)

	out, err := executeCmd(t, app, "drag", "resize", "beta", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Phase now spans Jan 11 → Jan 17 (5 days)")

	out, err = executeCmd(t, app, "drag", "move", "beta", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing changed.")
}

// --- holidays ---

func TestHolidaysCmd_SetFromStdinAndList(t *testing.T) {
	app := chainApp(t)

	in := strings.NewReader("2024-01-09\nnot a date\n2024-01-09\n")
	out, err := executeCmdWithInput(t, app, in, "holidays", "set")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 1 holidays")

	out, err = executeCmd(t, app, "holidays", "list")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-09  Tue\n", out)

	out, err = executeCmd(t, app, "schedule")
	require.NoError(t, err)
	assert.Contains(t, out, "Span    Jan 08 → Jan 18")
}

func TestHolidaysCmd_SetFromFile(t *testing.T) {
	app := chainApp(t)
	path := filepath.Join(t.TempDir(), "holidays.txt")
	require.NoError(t, os.WriteFile(path, []byte("2024-12-25\n2024-12-26\n"), 0o644))

	out, err := executeCmd(t, app, "holidays", "set", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 2 holidays")

	_, err = executeCmd(t, app, "holidays", "set", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

// --- export / import ---

func TestExportImport_RoundTrip(t *testing.T) {
	app := chainApp(t)

	out, err := executeCmd(t, app, "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"activeTimelineId": "t1"`)
	assert.Contains(t, out, `"globalHolidays": []`)

	path := filepath.Join(t.TempDir(), "plan.json")
	_, err = executeCmd(t, app, "export", path)
	require.NoError(t, err)

	other := testApp(t)
	out, err = executeCmd(t, other, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Replaced state from a v3 document: 1 timelines, 0 holidays")
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, phaseNames(t, other))
}

func TestImportCmd_LegacySingleTimelineIsAppended(t *testing.T) {
	app := chainApp(t)
	legacy := `{"anchorDate": "2024-06-03", "anchorPhaseId": 1, "holidays": ["2024-05-01"],
	  "phases": [{"id": 1, "name": "Design", "days": 5}]}`
	path := filepath.Join(t.TempDir(), "old.json")
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Added 1 timeline from a v1 document (1 holidays merged)")

	state, err := app.Planner.State(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.Timelines, 2)
	assert.Equal(t, "Imported timeline 2", state.Active().Name)
	assert.Equal(t, []string{"2024-05-01"}, state.Holidays)
}

func TestImportCmd_Unrecognized(t *testing.T) {
	app := chainApp(t)

	_, err := executeCmdWithInput(t, app, strings.NewReader(`{"hello": 1}`), "import", "-")
	assert.ErrorIs(t, err, domain.ErrUnrecognizedDocument)
}

// --- chart ---

func TestChartCmd_RequiresTerminal(t *testing.T) {
	app := chainApp(t)

	_, err := executeCmd(t, app, "chart")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
