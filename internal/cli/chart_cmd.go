package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Open the interactive Gantt chart",
		Long: "Open the active timeline as a Gantt chart. Select a bar with j/k,\n" +
			"press m to move or r to resize it, shift it with h/l and commit\n" +
			"with enter. Moves that would overlap the chain are rejected.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("chart needs an interactive terminal; use 'gantry schedule' instead")
			}
			p := tea.NewProgram(newChartView(app),
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err := p.Run()
			return err
		},
	}
}
