package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
)

// FormatTimelineList renders every timeline with the active one marked.
func FormatTimelineList(state *domain.AppState, now time.Time) string {
	headers := []string{"", "ID", "NAME", "PHASES", "ANCHOR DATE", "UPDATED"}
	active := state.Active()
	rows := make([][]string, 0, len(state.Timelines))
	for _, t := range state.Timelines {
		marker := " "
		if active != nil && t.ID == active.ID {
			marker = StyleGreen.Render("●")
		}
		rows = append(rows, []string{
			marker,
			TruncID(t.ID),
			Bold(t.Name),
			strconv.Itoa(len(t.Data.Phases)),
			HumanDate(t.Data.AnchorDate, now),
			Dim(t.UpdatedAt.Local().Format("2006-01-02 15:04")),
		})
	}
	return RenderBox("Timelines", RenderTable(headers, rows))
}

// FormatHolidays lists holiday dates with their weekday.
func FormatHolidays(holidays []string) string {
	if len(holidays) == 0 {
		return Dim("No holidays configured.")
	}
	var b strings.Builder
	for _, h := range holidays {
		b.WriteString(h)
		if d, err := domain.ParseDate(h); err == nil {
			b.WriteString("  ")
			b.WriteString(Dim(d.Format("Mon")))
		}
		b.WriteString("\n")
	}
	return b.String()
}
