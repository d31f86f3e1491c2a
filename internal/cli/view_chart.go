package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/reconciler"
	"github.com/alexanderramin/gantry/internal/scheduler"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// schedulesLoadedMsg carries every timeline's schedule after a (re)load.
type schedulesLoadedMsg struct {
	schedules []*service.TimelineSchedule
	err       error
}

// dragDoneMsg reports a committed drag.
type dragDoneMsg struct {
	outcome *service.DragOutcome
	err     error
}

type chartKeys struct {
	Up, Down, Next       key.Binding
	Move, Resize         key.Binding
	Left, Right          key.Binding
	Commit, Cancel, Quit key.Binding
}

func newChartKeys() chartKeys {
	return chartKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next timeline")),
		Move:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Resize: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resize")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "earlier")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "later")),
		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// chartView is the interactive Gantt chart. Bars can be dragged with the
// keyboard; a drag is only committed on enter.
type chartView struct {
	app       *App
	schedules []*service.TimelineSchedule
	active    int
	cursor    int
	loading   bool
	err       error
	status    string

	tracker reconciler.Tracker
	pointer int

	keys chartKeys
	help help.Model
}

func newChartView(app *App) *chartView {
	return &chartView{
		app:     app,
		loading: true,
		keys:    newChartKeys(),
		help:    help.New(),
	}
}

func (v *chartView) Title() string { return "Chart" }

func (v *chartView) ShortHelp() []key.Binding {
	if _, dragging := v.tracker.Active(); dragging {
		return []key.Binding{v.keys.Left, v.keys.Right, v.keys.Commit, v.keys.Cancel}
	}
	return []key.Binding{v.keys.Up, v.keys.Down, v.keys.Next, v.keys.Move, v.keys.Resize, v.keys.Quit}
}

func (v *chartView) FullHelp() [][]key.Binding {
	return [][]key.Binding{v.ShortHelp()}
}

func (v *chartView) Init() tea.Cmd {
	return v.loadSchedules()
}

func (v *chartView) loadSchedules() tea.Cmd {
	app := v.app
	return func() tea.Msg {
		schedules, err := app.Planner.ScheduleAll(context.Background())
		return schedulesLoadedMsg{schedules: schedules, err: err}
	}
}

func (v *chartView) commit(req reconciler.Request) tea.Cmd {
	app := v.app
	return func() tea.Msg {
		outcome, err := app.Planner.Drag(context.Background(), req)
		return dragDoneMsg{outcome: outcome, err: err}
	}
}

func (v *chartView) selectTimeline(id string) tea.Cmd {
	app := v.app
	return func() tea.Msg {
		if err := app.Planner.SelectTimeline(context.Background(), id); err != nil {
			return schedulesLoadedMsg{err: err}
		}
		schedules, err := app.Planner.ScheduleAll(context.Background())
		return schedulesLoadedMsg{schedules: schedules, err: err}
	}
}

func (v *chartView) current() *service.TimelineSchedule {
	if v.active < len(v.schedules) {
		return v.schedules[v.active]
	}
	return nil
}

// rows returns the active timeline's rows in display order.
func (v *chartView) rows() []scheduler.ScheduledPhase {
	if s := v.current(); s != nil {
		return s.Ordered()
	}
	return nil
}

func (v *chartView) selectedID() string {
	rows := v.rows()
	if v.cursor < len(rows) {
		return rows[v.cursor].ID
	}
	return ""
}

func (v *chartView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case schedulesLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		keep := v.selectedID()
		v.schedules = msg.schedules
		v.active = 0
		for i, s := range v.schedules {
			if s.Active {
				v.active = i
			}
		}
		v.cursor = 0
		for i, r := range v.rows() {
			if r.ID == keep {
				v.cursor = i
			}
		}
		return v, nil

	case dragDoneMsg:
		if msg.err != nil {
			if errors.Is(msg.err, domain.ErrCollision) {
				v.status = formatter.StyleRed.Render("move rejected") + " " + formatter.Dim(collisionDetail(msg.err))
			} else {
				v.status = formatter.StyleRed.Render(msg.err.Error())
			}
			return v, nil
		}
		v.status = dragStatus(msg.outcome)
		return v, v.loadSchedules()

	case tea.WindowSizeMsg:
		v.help.Width = msg.Width
		return v, nil

	case tea.KeyMsg:
		if _, dragging := v.tracker.Active(); dragging {
			return v.updateDragging(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *chartView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := v.rows()
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(rows)-1 {
			v.cursor++
		}
	case key.Matches(msg, v.keys.Next):
		if len(v.schedules) > 1 {
			next := v.schedules[(v.active+1)%len(v.schedules)]
			v.cursor = 0
			v.status = ""
			return v, v.selectTimeline(next.Timeline.ID)
		}
	case key.Matches(msg, v.keys.Move):
		v.begin(rows, reconciler.DragMove)
	case key.Matches(msg, v.keys.Resize):
		v.begin(rows, reconciler.DragResize)
	}
	return v, nil
}

// begin opens a drag session on the selected row. The pointer starts at the
// bar's leading edge for a move and its trailing edge for a resize.
func (v *chartView) begin(rows []scheduler.ScheduledPhase, kind reconciler.DragKind) {
	if v.cursor >= len(rows) {
		return
	}
	row := rows[v.cursor]
	cw := v.app.cellWidth()
	origin := formatter.ChartOrigin(rows)
	x := formatter.DayColumn(origin, row.Start, cw)
	if kind == reconciler.DragResize {
		x = formatter.DayColumn(origin, row.End, cw) + cw
	}
	if err := v.tracker.Start(reconciler.Begin(row, kind, x)); err != nil {
		v.status = formatter.StyleRed.Render(err.Error())
		return
	}
	v.pointer = x
	v.status = fmt.Sprintf("%s %s", kind, formatter.Bold(row.Name))
}

func (v *chartView) updateDragging(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cw := v.app.cellWidth()
	switch {
	case key.Matches(msg, v.keys.Quit):
		v.tracker.Cancel()
		return v, tea.Quit
	case key.Matches(msg, v.keys.Left):
		v.pointer -= cw
		_ = v.tracker.Move(v.pointer)
	case key.Matches(msg, v.keys.Right):
		v.pointer += cw
		_ = v.tracker.Move(v.pointer)
	case key.Matches(msg, v.keys.Cancel):
		v.tracker.Cancel()
		v.status = formatter.Dim("drag cancelled")
	case key.Matches(msg, v.keys.Commit):
		s, err := v.tracker.End()
		if err != nil {
			return v, nil
		}
		req := s.Request(cw)
		if req.DeltaDays == 0 {
			v.status = formatter.Dim("no change")
			return v, nil
		}
		return v, v.commit(req)
	}
	return v, nil
}

func (v *chartView) View() string {
	if v.loading {
		return formatter.Dim("Loading...")
	}
	if v.err != nil {
		return formatter.StyleRed.Render("Error: "+v.err.Error()) + "\n"
	}
	s := v.current()
	if s == nil {
		return formatter.Dim("No timelines.") + "\n"
	}

	var b strings.Builder
	b.WriteString(formatter.Header(s.Timeline.Name))
	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("timeline %d of %d", v.active+1, len(v.schedules))))
	b.WriteString("\n\n")

	g := formatter.Gantt{
		Rows:      s.Ordered(),
		CellWidth: v.app.cellWidth(),
		MaxDays:   v.app.ChartMaxDays,
		Cursor:    v.cursor,
	}
	if sess, ok := v.tracker.Active(); ok {
		g.Ghost = &formatter.Ghost{
			PhaseID: sess.PhaseID,
			Resize:  sess.Kind == reconciler.DragResize,
			Offset:  sess.OffsetX,
		}
	}
	b.WriteString(g.Render())
	b.WriteString("\n")

	if sess, ok := v.tracker.Active(); ok {
		b.WriteString(fmt.Sprintf("%s  %+d days\n", v.status, sess.DayDelta(v.app.cellWidth())))
	} else if v.status != "" {
		b.WriteString(v.status + "\n")
	}
	b.WriteString(v.help.View(v))
	return b.String()
}

func dragStatus(o *service.DragOutcome) string {
	r := o.Result
	switch {
	case r.AnchorMoved:
		return formatter.StyleGreen.Render("anchor moved")
	case r.Promoted:
		return formatter.StylePurple.Render(fmt.Sprintf("now parallel %s → %s",
			formatter.ShortDate(r.Start), formatter.ShortDate(r.End)))
	default:
		return formatter.StyleGreen.Render("saved")
	}
}

// collisionDetail strips the wrapping so the status line names the blocker.
func collisionDetail(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrCollision.Error()); i >= 0 {
		return strings.TrimPrefix(msg[i+len(domain.ErrCollision.Error()):], ": ")
	}
	return msg
}
