package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Edit phases of the active timeline",
	}

	cmd.AddCommand(
		newPhaseListCmd(app),
		newPhaseAddCmd(app),
		newPhaseRemoveCmd(app),
		newPhaseMoveCmd(app),
		newPhaseRenameCmd(app),
		newPhaseDaysCmd(app),
		newPhaseParallelCmd(app),
		newPhaseDateCmd(app, "start"),
		newPhaseDateCmd(app, "end"),
	)

	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List phases in chain order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Planner.Schedule(cmd.Context(), "")
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPhaseList(s))
			return nil
		},
	}
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Append a phase to the chain",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			} else if app.interactive() {
				draft := phaseDraft{}
				if err := phaseForm(&draft).Run(); err != nil {
					return err
				}
				name = draft.Name
				if !cmd.Flags().Changed("days") {
					days = draft.days()
				}
			}

			p, err := app.Planner.AddPhase(cmd.Context(), name, days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added phase %s (%s) %s\n",
				formatter.Bold(p.Name), formatter.Days(p.Duration()), formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "Working days (default from config)")

	return cmd
}

// phaseAction builds a command that resolves its first argument to a phase
// id and hands the rest to fn.
func phaseAction(app *App, use, short string, nargs int, fn func(ctx context.Context, cmd *cobra.Command, id string, rest []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePhaseID(ctx, app, args[0])
			if err != nil {
				return err
			}
			return fn(ctx, cmd, id, args[1:])
		},
	}
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	cmd := phaseAction(app, "rm ID", "Delete a phase", 1,
		func(ctx context.Context, cmd *cobra.Command, id string, _ []string) error {
			if err := app.Planner.DeletePhase(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted phase %s\n", formatter.TruncID(id))
			return nil
		})
	cmd.Aliases = []string{"delete"}
	return cmd
}

func newPhaseMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move FROM TO",
		Short: "Move the phase at list position FROM to position TO",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseInt("FROM", args[0])
			if err != nil {
				return err
			}
			to, err := parseInt("TO", args[1])
			if err != nil {
				return err
			}
			if err := app.Planner.ReorderPhase(cmd.Context(), from, to); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved phase %d to position %d\n", from, to)
			return nil
		},
	}
}

func newPhaseRenameCmd(app *App) *cobra.Command {
	return phaseAction(app, "rename ID NAME", "Rename a phase", 2,
		func(ctx context.Context, cmd *cobra.Command, id string, rest []string) error {
			if err := app.Planner.RenamePhase(ctx, id, rest[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed phase %s to %s\n",
				formatter.TruncID(id), formatter.Bold(rest[0]))
			return nil
		})
}

func newPhaseDaysCmd(app *App) *cobra.Command {
	return phaseAction(app, "days ID N", "Set a phase's duration in working days", 2,
		func(ctx context.Context, cmd *cobra.Command, id string, rest []string) error {
			n, err := parseInt("N", rest[0])
			if err != nil {
				return err
			}
			if err := app.Planner.SetPhaseDays(ctx, id, n); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Phase %s now lasts %s\n",
				formatter.TruncID(id), formatter.Days(max(n, 1)))
			return nil
		})
}

func newPhaseParallelCmd(app *App) *cobra.Command {
	return phaseAction(app, "parallel ID on|off", "Take a phase out of the chain or put it back", 2,
		func(ctx context.Context, cmd *cobra.Command, id string, rest []string) error {
			on, err := parseSwitch(rest[0])
			if err != nil {
				return err
			}
			if err := app.Planner.SetPhaseParallel(ctx, id, on); err != nil {
				return err
			}
			mode := "sequential"
			if on {
				mode = "parallel"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Phase %s is now %s\n", formatter.TruncID(id), mode)
			return nil
		})
}

// newPhaseDateCmd sets the manual start or end of a phase.
func newPhaseDateCmd(app *App, edge string) *cobra.Command {
	return phaseAction(app, edge+" ID DATE", "Set a phase's manual "+edge+" date", 2,
		func(ctx context.Context, cmd *cobra.Command, id string, rest []string) error {
			var date time.Time
			if err := newDateValue(&date, app.now).Set(rest[0]); err != nil {
				return err
			}
			set := app.Planner.SetManualStart
			if edge == "end" {
				set = app.Planner.SetManualEnd
			}
			if err := set(ctx, id, date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Phase %s manual %s set to %s\n",
				formatter.TruncID(id), edge, formatter.ShortDate(date))
			return nil
		})
}
