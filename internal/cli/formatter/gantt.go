package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
)

const (
	barRune   = "█"
	ghostRune = "▒"
	rulerStep = 7
)

// Ghost is the transient position of a bar being dragged. Offset is in
// columns, not days; a resize ghost stretches the end instead of shifting
// the whole bar.
type Ghost struct {
	PhaseID string
	Resize  bool
	Offset  int
}

// Gantt renders scheduled rows as horizontal bars on a day grid. Rows are
// drawn in the given order.
type Gantt struct {
	Rows      []scheduler.ScheduledPhase
	CellWidth int
	MaxDays   int
	NameWidth int
	// Cursor is the selected row index; -1 hides the marker.
	Cursor int
	Ghost  *Ghost
}

// ChartOrigin is the earliest start across rows, the date of column zero.
func ChartOrigin(rows []scheduler.ScheduledPhase) time.Time {
	return scheduler.Summarize(rows).Start
}

// DayColumn returns the first column of date t on a chart starting at origin.
func DayColumn(origin, t time.Time, cellWidth int) int {
	return (domain.InclusiveDays(origin, t) - 1) * max(cellWidth, 1)
}

func (g Gantt) cellWidth() int {
	return max(g.CellWidth, 1)
}

func (g Gantt) nameWidth() int {
	if g.NameWidth > 0 {
		return g.NameWidth
	}
	w := 4
	for _, r := range g.Rows {
		w = max(w, lipgloss.Width(r.Name))
	}
	return min(w, 24)
}

// width is the grid width in columns, capped at MaxDays days.
func (g Gantt) width() int {
	if len(g.Rows) == 0 {
		return 0
	}
	sum := scheduler.Summarize(g.Rows)
	days := sum.CalendarDays
	if g.MaxDays > 0 {
		days = min(days, g.MaxDays)
	}
	return days * g.cellWidth()
}

// Render draws the ruler followed by one line per row.
func (g Gantt) Render() string {
	if len(g.Rows) == 0 {
		return Dim("No phases to chart.")
	}
	origin := ChartOrigin(g.Rows)
	nameW := g.nameWidth()
	width := g.width()

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", nameW+3))
	b.WriteString(Dim(g.ruler(origin, width)))
	b.WriteString("\n")

	for i, row := range g.Rows {
		marker := "  "
		if i == g.Cursor {
			marker = StyleHeader.Render("▸ ")
		}
		name := padRight(Truncate(row.Name, nameW), nameW)
		if i == g.Cursor {
			name = Bold(name)
		}
		b.WriteString(marker)
		b.WriteString(name)
		b.WriteString(" ")
		b.WriteString(g.bar(row, origin, width))
		b.WriteString("\n")
	}
	return b.String()
}

func (g Gantt) bar(row scheduler.ScheduledPhase, origin time.Time, width int) string {
	cw := g.cellWidth()
	start := DayColumn(origin, row.Start, cw)
	end := DayColumn(origin, row.End, cw) + cw
	fill, style := barRune, PhaseStyle(row)

	if g.Ghost != nil && g.Ghost.PhaseID == row.ID {
		fill, style = ghostRune, StyleYellow
		if g.Ghost.Resize {
			end = max(end+g.Ghost.Offset, start+cw)
		} else {
			start += g.Ghost.Offset
			end += g.Ghost.Offset
		}
	}

	start = clamp(start, 0, width)
	end = clamp(end, start, width)
	lead := strings.Repeat(" ", start)
	if end == start {
		return lead
	}
	return lead + style.Render(strings.Repeat(fill, end-start))
}

// ruler labels every seventh day starting at the origin.
func (g Gantt) ruler(origin time.Time, width int) string {
	line := []rune(strings.Repeat(" ", width))
	cw := g.cellWidth()
	for day := 0; day*cw < width; day += rulerStep {
		label := []rune(ShortDate(domain.AddDays(origin, day)))
		col := day * cw
		if col+len(label) > width {
			break
		}
		copy(line[col:], label)
	}
	return string(line)
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
