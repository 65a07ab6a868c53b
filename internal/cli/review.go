package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cahaseler/cc-track/internal/app"
	"github.com/cahaseler/cc-track/internal/usecase"
)

// newReviewCommand creates the review command.
func newReviewCommand(c *app.Container) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Run the stop review pipeline from a terminal",
		Long: `Run the same pipeline as the Stop hook and print a summary.

With --dry-run, the working tree is reviewed but nothing is committed and no
status is published.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}

			out, err := c.StopReviewUseCase().Execute(cmd.Context(), usecase.StopReviewInput{DryRun: dryRun})
			if err != nil {
				return err
			}

			printReview(cmd.OutOrStdout(), out, dryRun)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Review without committing")

	return cmd
}

// printReview writes the human summary of a pipeline run.
func printReview(w io.Writer, out *usecase.StopReviewOutput, dryRun bool) {
	if out.Skipped {
		_, _ = fmt.Fprintf(w, "%s\n", out.Result.Message)
		return
	}

	_, _ = fmt.Fprintf(w, "Run:      %s\n", out.RunID)

	changed := 0
	if out.Changes != nil {
		changed = len(out.Changes.Paths)
	}
	_, _ = fmt.Fprintf(w, "Changes:  %d path(s)\n", changed)

	if out.Task != nil {
		_, _ = fmt.Fprintf(w, "Task:     %s %s\n", out.Task.ID, out.Task.Title)
	} else {
		_, _ = fmt.Fprintln(w, "Task:     none")
	}

	if d := out.Compressed; d.Text != "" {
		switch {
		case d.Compressed:
			_, _ = fmt.Fprintf(w, "Diff:     %s, %d chunk(s) summarized (%d failed), ratio %.1f%%\n",
				humanize.Bytes(uint64(len(d.Text))), d.TotalChunks, d.FailedChunks, d.Ratio*100)
		case d.Truncated:
			_, _ = fmt.Fprintf(w, "Diff:     %s raw (truncated)\n", humanize.Bytes(uint64(len(d.Text))))
		default:
			_, _ = fmt.Fprintf(w, "Diff:     %s raw\n", humanize.Bytes(uint64(len(d.Text))))
		}
	}

	_, _ = fmt.Fprintf(w, "Verdict:  %s %s\n", out.Verdict.Status.Icon(), out.Verdict.Status.Display())

	switch {
	case dryRun:
		_, _ = fmt.Fprintln(w, "Commit:   skipped (dry run)")
	case out.Commit.Committed:
		_, _ = fmt.Fprintf(w, "Commit:   %s %s\n", shortHash(out.Commit.Record.Hash), firstLine(out.Commit.Record.Message))
	default:
		_, _ = fmt.Fprintln(w, "Commit:   none")
	}

	_, _ = fmt.Fprintf(w, "Decision: %s\n", out.Result.Decision)
	if out.Result.Message != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", out.Result.Message)
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
