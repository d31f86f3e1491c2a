package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/spf13/cobra"
)

func newAnchorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anchor",
		Short: "Configure where the active timeline is pinned",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "phase ID",
			Short: "Pin the chain to a phase",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				id, err := resolvePhaseID(ctx, app, args[0])
				if err != nil {
					return err
				}
				if err := app.Planner.SetAnchor(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Anchor phase is now %s\n", formatter.TruncID(id))
				return nil
			},
		},
		&cobra.Command{
			Use:       "type start|end",
			Short:     "Pin the anchor phase by its start or end date",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(domain.AnchorStart), string(domain.AnchorEnd)},
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Planner.SetAnchorType(cmd.Context(), domain.AnchorType(args[0])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Anchor type is now %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "date DATE",
			Short: "Set the anchor date",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var date time.Time
				if err := newDateValue(&date, app.now).Set(args[0]); err != nil {
					return err
				}
				if err := app.Planner.SetAnchorDate(cmd.Context(), date); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Anchor date is now %s\n", formatter.HumanDate(date, app.now()))
				return nil
			},
		},
		&cobra.Command{
			Use:       "sort asc|desc",
			Short:     "Set the display order of the active timeline",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(domain.SortAsc), string(domain.SortDesc)},
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Planner.SetSortOrder(cmd.Context(), domain.SortOrder(args[0])); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Sort order is now %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
