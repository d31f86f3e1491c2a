package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantry/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PhaseStyle picks the bar color for a scheduled row: the anchor is orange,
// parallel phases purple and the rest of the chain blue.
func PhaseStyle(row scheduler.ScheduledPhase) lipgloss.Style {
	switch {
	case row.IsAnchor:
		return StyleHeader
	case row.IsParallel():
		return StylePurple
	default:
		return StyleBlue
	}
}

// ModeBadge labels a scheduled row for tables.
func ModeBadge(row scheduler.ScheduledPhase) string {
	switch {
	case row.IsAnchor:
		return StyleHeader.Render("⚓ anchor")
	case row.IsParallel():
		return StylePurple.Render("∥ parallel")
	default:
		return StyleDim.Render("→ chain")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
