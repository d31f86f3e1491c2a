package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/gantry/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write every timeline and holiday as a JSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.Planner.Export(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 || args[0] == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", args[0])
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load a JSON document, replacing or extending the stored timelines",
		Long: "Import a document written by 'gantry export' or by an older version.\n" +
			"Multi-timeline documents replace everything; a single-timeline\n" +
			"document is added as a new active timeline.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := app.Planner.Import(cmd.Context(), raw)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Appended {
				fmt.Fprintf(out, "Added 1 timeline from a %s document (%d holidays merged)\n",
					res.Shape, res.Holidays)
				return nil
			}
			fmt.Fprintf(out, "Replaced state from a %s document: %d timelines, %d holidays\n",
				res.Shape, res.Timelines, res.Holidays)
			fmt.Fprintln(out, formatter.Dim("Run 'gantry timeline list' to review."))
			return nil
		},
	}
}
