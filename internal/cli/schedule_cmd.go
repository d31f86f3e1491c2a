package cli

import (
	"fmt"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var (
		timelineRef string
		sortFlag    string
		all         bool
	)

	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"show"},
		Short:   "Show computed phase dates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var order domain.SortOrder
			if sortFlag != "" {
				order = domain.SortOrder(sortFlag)
				if !order.Valid() {
					return fmt.Errorf("%w: sort must be asc or desc, got %q", domain.ErrInvalidOption, sortFlag)
				}
			}

			var schedules []*service.TimelineSchedule
			if all {
				list, err := app.Planner.ScheduleAll(ctx)
				if err != nil {
					return err
				}
				schedules = list
			} else {
				id := ""
				if timelineRef != "" {
					resolved, err := resolveTimelineID(ctx, app, timelineRef)
					if err != nil {
						return err
					}
					id = resolved
				}
				s, err := app.Planner.Schedule(ctx, id)
				if err != nil {
					return err
				}
				schedules = []*service.TimelineSchedule{s}
			}

			// --sort only changes this rendering, not the stored preference.
			if order != "" {
				for _, s := range schedules {
					s.Timeline.Data.SortOrder = order
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSchedules(schedules, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&timelineRef, "timeline", "t", "", "Timeline ID, prefix or name (default: active)")
	cmd.Flags().StringVar(&sortFlag, "sort", "", "Display order: asc or desc")
	cmd.Flags().BoolVar(&all, "all", false, "Show every timeline")
	cmd.MarkFlagsMutuallyExclusive("timeline", "all")

	return cmd
}
