package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// HumanDate renders a civil date as "Mon Jan 2, 2006", or "Today" when it
// falls on the local date of now.
func HumanDate(t, now time.Time) string {
	if t.IsZero() {
		return "--"
	}
	if domain.Truncate(t).Equal(domain.Today(now)) {
		return "Today"
	}
	return t.Format("Mon Jan 2, 2006")
}

// ShortDate is the compact form used in tables and chart rulers.
func ShortDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	return t.Format("Jan 02")
}

// Days pluralizes a day count.
func Days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	return StyleDim.Render(ShortID(id))
}

// ShortID returns the first 8 characters of an ID.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Truncate shortens s to at most n visible runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
