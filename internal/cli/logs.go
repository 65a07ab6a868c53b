package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cahaseler/cc-track/internal/app"
	"github.com/cahaseler/cc-track/internal/usecase"
)

// newLogsCommand creates the logs command.
func newLogsCommand(c *app.Container) *cobra.Command {
	var opts usecase.ShowLogsInput

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the pipeline log",
		Long: `Show the pipeline log.

Every line carries the run ID of the invocation that wrote it; use --run to
show a single run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}

			out, err := c.ShowLogsUseCase().Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if out.Content == "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "No log entries in %s\n", out.LogPath)
				return nil
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.RunID, "run", "", "Only show lines of this run ID")
	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", 0, "Number of lines to show from the end (0 = all)")

	return cmd
}
