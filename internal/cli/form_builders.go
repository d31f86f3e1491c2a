package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// gantryHuhTheme styles huh forms with the formatter palette.
func gantryHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// phaseDraft collects the fields of a new phase as text.
type phaseDraft struct {
	Name string
	Days string
}

func (d phaseDraft) days() int {
	v, err := strconv.Atoi(strings.TrimSpace(d.Days))
	if err != nil {
		return 0
	}
	return v
}

// phaseForm asks for a name and an optional duration. A blank duration uses
// the planner default.
func phaseForm(draft *phaseDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Phase name").
				Value(&draft.Name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Working days").
				Description("Blank for the default").
				Placeholder("5").
				Value(&draft.Days).
				Validate(validatePositiveInt),
		),
	).WithTheme(gantryHuhTheme()).WithShowHelp(false)
}

func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(gantryHuhTheme()).WithShowHelp(false)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return domain.ErrEmptyName
	}
	return nil
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}
