package cli

import (
	"context"
	"regexp"
	"testing"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// chartDriver wraps teatest.Driver with access to the chart's internals.
type chartDriver struct {
	*teatest.Driver
}

func newChartDriver(t *testing.T, app *App) *chartDriver {
	t.Helper()
	d := teatest.New(t, newChartView(app), teatest.WithSize(120, 40))
	d.DrainInit()
	return &chartDriver{Driver: d}
}

func (d *chartDriver) chart() *chartView {
	return d.Model.(*chartView)
}

func (d *chartDriver) Screen() string {
	return stripANSI(d.View())
}

// drag selects row, starts a gesture with key and nudges it right n cells.
func (d *chartDriver) drag(row int, kind rune, n int) {
	d.T.Helper()
	for d.chart().cursor < row {
		d.PressKey('j')
	}
	d.PressKey(kind)
	for range n {
		d.PressKey('l')
	}
}

func TestChartView_RendersActiveTimeline(t *testing.T) {
	d := newChartDriver(t, chainApp(t))

	screen := d.Screen()
	assert.Contains(t, screen, "PLAN")
	assert.Contains(t, screen, "timeline 1 of 1")
	assert.Contains(t, screen, "▸ Alpha")
	assert.Contains(t, screen, "Jan 08")
	assert.Contains(t, screen, "move")
}

func TestChartView_CursorNavigation(t *testing.T) {
	d := newChartDriver(t, chainApp(t))

	d.PressKey('j')
	d.PressDown()
	assert.Contains(t, d.Screen(), "▸ Gamma")

	d.PressDown()
	assert.Equal(t, 2, d.chart().cursor, "cursor stops at the last row")

	d.PressKey('k')
	d.PressUp()
	d.PressUp()
	assert.Equal(t, 0, d.chart().cursor)
}

func TestChartView_DragShowsGhostAndDelta(t *testing.T) {
	d := newChartDriver(t, chainApp(t))

	d.drag(1, 'm', 1)
	screen := d.Screen()
	assert.Contains(t, screen, "▒▒▒▒▒▒▒▒▒▒")
	assert.Contains(t, screen, "+1 days")
	assert.Contains(t, screen, "commit")
}

func TestChartView_CollisionIsRejected(t *testing.T) {
	app := chainApp(t)
	d := newChartDriver(t, app)

	d.drag(1, 'm', 1)
	d.PressEnter()

	assert.Contains(t, d.Screen(), "move rejected")
	_, dragging := d.chart().tracker.Active()
	assert.False(t, dragging)
	assert.False(t, phaseByID(t, app, "bbbb2222").IsParallel())
}

func TestChartView_MovePromotesToParallel(t *testing.T) {
	app := chainApp(t)
	d := newChartDriver(t, app)

	d.drag(2, 'm', 2)
	d.PressEnter()

	assert.Contains(t, d.Screen(), "now parallel Jan 18 → Jan 19")
	g := phaseByID(t, app, "cccc3333")
	assert.True(t, g.IsParallel())
	assert.Equal(t, domain.Date(2024, 1, 18), *g.ManualStart)
	assert.Equal(t, 2, d.chart().cursor, "selection follows the moved phase")
}

func TestChartView_ResizeCommits(t *testing.T) {
	app := chainApp(t)
	d := newChartDriver(t, app)

	d.drag(1, 'r', 1)
	d.PressEnter()

	assert.Contains(t, d.Screen(), "saved")
	assert.Equal(t, 4, phaseByID(t, app, "bbbb2222").Days)
}

func TestChartView_MoveBackAndForthIsNoop(t *testing.T) {
	app := chainApp(t)
	d := newChartDriver(t, app)

	d.drag(2, 'm', 1)
	d.PressKey('h')
	d.PressEnter()

	assert.Contains(t, d.Screen(), "no change")
	assert.False(t, phaseByID(t, app, "cccc3333").IsParallel())
}

func TestChartView_EscCancels(t *testing.T) {
	app := chainApp(t)
	d := newChartDriver(t, app)

	d.drag(0, 'm', 3)
	d.PressEsc()

	assert.Contains(t, d.Screen(), "drag cancelled")
	assert.Equal(t, domain.Date(2024, 1, 8), activeTimeline(t, app).Data.AnchorDate)
}

func TestChartView_AnchorMove(t *testing.T) {
	app := chainApp(t)
	d := newChartDriver(t, app)

	d.drag(0, 'm', 7)
	d.PressEnter()

	assert.Contains(t, d.Screen(), "anchor moved")
	assert.Equal(t, domain.Date(2024, 1, 15), activeTimeline(t, app).Data.AnchorDate)
}

func TestChartView_TabSwitchesTimeline(t *testing.T) {
	app := chainApp(t)
	ctx := context.Background()
	_, err := app.Planner.AddTimeline(ctx, "Second")
	require.NoError(t, err)
	require.NoError(t, app.Planner.SelectTimeline(ctx, "t1"))

	d := newChartDriver(t, app)
	assert.Contains(t, d.Screen(), "timeline 1 of 2")

	d.PressTab()
	screen := d.Screen()
	assert.Contains(t, screen, "SECOND")
	assert.Contains(t, screen, "timeline 2 of 2")
	assert.Equal(t, "Second", activeTimeline(t, app).Name)
}

func TestChartView_TabIgnoredWhileDragging(t *testing.T) {
	app := chainApp(t)
	_, err := app.Planner.AddTimeline(context.Background(), "Second")
	require.NoError(t, err)
	require.NoError(t, app.Planner.SelectTimeline(context.Background(), "t1"))
	d := newChartDriver(t, app)

	d.drag(0, 'm', 0)
	d.PressTab()

	assert.Equal(t, "t1", activeTimeline(t, app).ID)
}

func TestChartView_Quit(t *testing.T) {
	d := newChartDriver(t, chainApp(t))

	d.PressKey('q')
	assert.True(t, d.Quitting)
}
