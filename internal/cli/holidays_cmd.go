package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHolidaysCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Manage the shared holiday list",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List holidays",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				state, err := app.Planner.State(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHolidays(state.Holidays))
				return nil
			},
		},
		&cobra.Command{
			Use:   "set [FILE|-]",
			Short: "Replace holidays with dates read from FILE or stdin, one per line",
			Long: "Replace the holiday list. Each line holds one YYYY-MM-DD date;\n" +
				"blank or malformed lines are skipped and duplicates collapse.",
			Args: cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path := "-"
				if len(args) == 1 {
					path = args[0]
				}
				text, err := readInput(cmd, path)
				if err != nil {
					return err
				}
				holidays, err := app.Planner.SetHolidays(cmd.Context(), string(text))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d holidays\n", len(holidays))
				return nil
			},
		},
	)

	return cmd
}

// readInput reads a named file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
