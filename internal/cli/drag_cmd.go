package cli

import (
	"fmt"
	"io"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/reconciler"
	"github.com/alexanderramin/gantry/internal/scheduler"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/spf13/cobra"
)

func newDragCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drag",
		Short: "Commit a chart drag without the interactive chart",
	}

	cmd.AddCommand(
		newDragKindCmd(app, reconciler.DragMove, "Shift a phase by DELTA calendar days"),
		newDragKindCmd(app, reconciler.DragResize, "Grow or shrink a phase by DELTA days"),
	)

	return cmd
}

func newDragKindCmd(app *App, kind reconciler.DragKind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind) + " ID DELTA",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePhaseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			delta, err := parseInt("DELTA", args[1])
			if err != nil {
				return err
			}
			outcome, err := app.Planner.Drag(ctx, reconciler.Request{
				PhaseID:   id,
				Kind:      kind,
				DeltaDays: delta,
			})
			if err != nil {
				return err
			}
			printDragOutcome(cmd.OutOrStdout(), id, outcome)
			return nil
		},
	}
}

func printDragOutcome(w io.Writer, phaseID string, o *service.DragOutcome) {
	r := o.Result
	row, _ := scheduler.Find(o.Schedule.Rows, phaseID)
	switch {
	case !r.Changed:
		fmt.Fprintln(w, formatter.Dim("Nothing changed."))
	case r.AnchorMoved:
		fmt.Fprintf(w, "Anchor moved; chain now starts %s\n", formatter.ShortDate(o.Schedule.Summary.Start))
	case r.Promoted:
		fmt.Fprintf(w, "Phase is now parallel: %s → %s (%s)\n",
			formatter.ShortDate(r.Start), formatter.ShortDate(r.End), formatter.Days(r.Days))
	default:
		fmt.Fprintf(w, "Phase now spans %s → %s (%s)\n",
			formatter.ShortDate(row.Start), formatter.ShortDate(row.End), formatter.Days(row.Days))
	}
}
