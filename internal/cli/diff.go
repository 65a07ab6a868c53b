package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cahaseler/cc-track/internal/app"
	"github.com/cahaseler/cc-track/internal/usecase"
)

// newDiffCommand creates the diff command.
func newDiffCommand(c *app.Container) *cobra.Command {
	var opts usecase.ShowDiffInput

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show the diff the review would send to the oracles",
		Long: `Show the working-tree diff the review pipeline would send to the oracles,
after documentation and generated paths are filtered out.

Use --raw for the unfiltered diff and --chunks to see how a large diff would
be split for compression (printed to stderr).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}

			out, err := c.ShowDiffUseCase().Execute(cmd.Context(), opts)
			if err != nil {
				return err
			}

			errW := cmd.ErrOrStderr()
			for _, p := range out.Excluded {
				_, _ = fmt.Fprintf(errW, "excluded: %s\n", p)
			}
			for _, chunk := range out.Chunks {
				oversized := ""
				if chunk.Oversized {
					oversized = ", oversized"
				}
				_, _ = fmt.Fprintf(errW, "%s: %s%s\n", chunk.Label(), humanize.Bytes(uint64(chunk.ByteSize)), oversized)
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Diff)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Show the unfiltered diff")
	cmd.Flags().BoolVar(&opts.Chunks, "chunks", false, "Report compression chunks on stderr")

	return cmd
}
