package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "timeline",
		Aliases: []string{"tl"},
		Short:   "Manage timelines",
	}

	cmd.AddCommand(
		newTimelineListCmd(app),
		newTimelineAddCmd(app),
		newTimelineRenameCmd(app),
		newTimelineRemoveCmd(app),
		newTimelineSelectCmd(app),
	)

	return cmd
}

func newTimelineListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List timelines",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := app.Planner.State(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimelineList(state, app.now()))
			return nil
		},
	}
}

func newTimelineAddCmd(app *App) *cobra.Command {
	var anchorDate time.Time

	cmd := &cobra.Command{
		Use:   "add [NAME]",
		Short: "Create a timeline with the default phases and make it active",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			t, err := app.Planner.AddTimeline(ctx, name)
			if err != nil {
				return err
			}
			if !anchorDate.IsZero() {
				if err := app.Planner.SetAnchorDate(ctx, anchorDate); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created timeline %s %s\n",
				formatter.Bold(t.Name), formatter.TruncID(t.ID))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&anchorDate, app.now), "anchor-date", "Anchor date (YYYY-MM-DD, default today)")

	return cmd
}

func newTimelineRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a timeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTimelineID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Planner.RenameTimeline(ctx, id, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed timeline %s to %s\n",
				formatter.TruncID(id), formatter.Bold(args[1]))
			return nil
		},
	}
}

func newTimelineRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a timeline",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTimelineID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete timeline %s without --yes", formatter.ShortID(id))
				}
				confirmed := false
				title := fmt.Sprintf("Delete timeline %s?", formatter.ShortID(id))
				if err := confirmForm(title, &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Planner.DeleteTimeline(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted timeline %s\n", formatter.TruncID(id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newTimelineSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "select ID",
		Aliases: []string{"use"},
		Short:   "Make a timeline active",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTimelineID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Planner.SelectTimeline(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active timeline is now %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
