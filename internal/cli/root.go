package cli

import (
	"time"

	"github.com/alexanderramin/gantry/internal/service"
	"github.com/spf13/cobra"
)

// App holds what CLI commands need: the planner and a few display settings.
type App struct {
	Planner service.PlannerService

	// CellWidth is the number of terminal columns per chart day.
	CellWidth    int
	ChartMaxDays int

	Now           func() time.Time
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) cellWidth() int {
	if a.CellWidth < 1 {
		return 2
	}
	return a.CellWidth
}

// NewRootCmd creates the top-level "gantry" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gantry",
		Short:         "Business-day project timeline planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newScheduleCmd(app),
		newChartCmd(app),
		newTimelineCmd(app),
		newPhaseCmd(app),
		newAnchorCmd(app),
		newDragCmd(app),
		newHolidaysCmd(app),
		newExportCmd(app),
		newImportCmd(app),
	)

	return root
}
