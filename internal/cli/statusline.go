package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cahaseler/cc-track/internal/app"
	"github.com/cahaseler/cc-track/internal/tui"
	"github.com/cahaseler/cc-track/internal/usecase"
)

// newStatuslineCommand creates the statusline command.
func newStatuslineCommand(c *app.Container) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "statusline",
		Short: "Print the last review status as one line",
		Long: `Print the last published review status as one styled line:
verdict icon, message, age and current branch.

Intended for the assistant's status line command. Prints nothing outside a
git repository.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil {
				return nil
			}

			out, err := c.ShowStatusUseCase().Execute(cmd.Context(), usecase.ShowStatusInput{})
			if err != nil {
				return err
			}

			line := tui.NewStatusLine(width, tui.DefaultStyles())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), line.Render(tui.StatusLineInfo{
				Artifact: out.Artifact,
				Branch:   out.Branch,
				Age:      out.Age,
			}))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Maximum line width (0 = unlimited)")

	return cmd
}
