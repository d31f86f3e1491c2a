package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/scheduler"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// Elapsed reports how far today is through the schedule span, counted in
// calendar days and clamped to [0, 1].
func Elapsed(sum scheduler.Summary, today time.Time) float64 {
	if sum.CalendarDays == 0 || today.Before(sum.Start) {
		return 0
	}
	pct := float64(domain.InclusiveDays(sum.Start, today)) / float64(sum.CalendarDays)
	return min(pct, 1)
}

// RenderProgress renders a bar like [████░░░░]  45%. A finished span turns
// green.
func RenderProgress(pct float64, width int) string {
	pct = max(0, min(pct, 1))
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleBlue
	if pct >= 1 {
		style = StyleGreen
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
