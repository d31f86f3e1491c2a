package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/scheduler"
	"github.com/alexanderramin/gantry/internal/service"
)

// FormatSchedule renders one timeline's computed schedule in display order,
// followed by its anchor and overall span.
func FormatSchedule(s *service.TimelineSchedule, now time.Time) string {
	title := s.Timeline.Name
	if s.Active {
		title += " (active)"
	}
	if len(s.Rows) == 0 {
		return RenderBox(title, Dim("No phases yet. Add one with 'gantry phase add NAME'."))
	}

	headers := []string{"ID", "PHASE", "MODE", "START", "END", "DAYS", "WORKING"}
	ordered := s.Ordered()
	rows := make([][]string, 0, len(ordered))
	for _, r := range ordered {
		rows = append(rows, []string{
			TruncID(r.ID),
			Bold(r.Name),
			ModeBadge(r),
			ShortDate(r.Start),
			ShortDate(r.End),
			strconv.Itoa(r.Days),
			strconv.Itoa(r.WorkingDays),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	b.WriteString(anchorLine(s.Timeline, s.Rows, now))
	b.WriteString("\n")
	b.WriteString(summaryLine(s.Summary))
	b.WriteString("\n")
	b.WriteString("Today   " + RenderProgress(Elapsed(s.Summary, domain.Today(now)), 20))
	return RenderBox(title, b.String())
}

// FormatSchedules renders several schedules one after another.
func FormatSchedules(all []*service.TimelineSchedule, now time.Time) string {
	parts := make([]string, 0, len(all))
	for _, s := range all {
		parts = append(parts, FormatSchedule(s, now))
	}
	return strings.Join(parts, "\n")
}

// FormatPhaseList shows phases in chain order with their list positions,
// which is what 'phase move' takes.
func FormatPhaseList(s *service.TimelineSchedule) string {
	if len(s.Rows) == 0 {
		return Dim("No phases.")
	}
	headers := []string{"#", "ID", "NAME", "DAYS", "MODE", "MANUAL RANGE"}
	rows := make([][]string, 0, len(s.Rows))
	for i, r := range s.Rows {
		manual := Dim("--")
		if r.ManualStart != nil && r.ManualEnd != nil {
			manual = domain.FormatDate(*r.ManualStart) + " → " + domain.FormatDate(*r.ManualEnd)
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			TruncID(r.ID),
			r.Name,
			strconv.Itoa(r.Days),
			ModeBadge(r),
			manual,
		})
	}
	return RenderTable(headers, rows)
}

func anchorLine(t *domain.Timeline, rows []scheduler.ScheduledPhase, now time.Time) string {
	name := Dim("(none)")
	for _, r := range rows {
		if r.IsAnchor {
			name = Bold(r.Name)
			break
		}
	}
	edge := "start"
	if t.Data.AnchorType == domain.AnchorEnd {
		edge = "end"
	}
	return fmt.Sprintf("Anchor  %s of %s on %s",
		edge, name, HumanDate(t.Data.AnchorDate, now))
}

func summaryLine(sum scheduler.Summary) string {
	return fmt.Sprintf("Span    %s → %s  %s  %s",
		ShortDate(sum.Start), ShortDate(sum.End),
		Dim(Days(sum.CalendarDays)),
		Dim(fmt.Sprintf("%d phases, %d parallel", sum.PhaseCount, sum.Parallel)))
}
