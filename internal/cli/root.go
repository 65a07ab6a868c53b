// Package cli provides the command-line interface for cc-track.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cahaseler/cc-track/internal/app"
)

// Command group IDs.
const (
	groupHooks  = "hooks"
	groupReview = "review"
	groupSetup  = "setup"
)

// NewRootCommand creates the root command for cc-track.
// It receives the container for dependency injection and version for display.
// c is nil when the working directory is not inside a git repository.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "cc-track",
		Short: "Review and auto-commit AI assistant work at every stop",
		Long: `cc-track runs inside an AI coding assistant's hook lifecycle.
At the end of every agent turn it inspects the working tree, compresses large
diffs, classifies the change against the active task and auto-commits it.

Install it as a Stop hook:

  cc-track hook stop-review`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Skip if container is nil (outside a repository, or in tests)
			if c == nil || c.AppConfig == nil {
				return
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupHooks, Title: "Hook Commands:"},
		&cobra.Group{ID: groupReview, Title: "Review Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	hookCmd := newHookCommand(c)
	hookCmd.GroupID = groupHooks

	reviewCmd := newReviewCommand(c)
	reviewCmd.GroupID = groupReview

	statuslineCmd := newStatuslineCommand(c)
	statuslineCmd.GroupID = groupReview

	diffCmd := newDiffCommand(c)
	diffCmd.GroupID = groupReview

	logsCmd := newLogsCommand(c)
	logsCmd.GroupID = groupReview

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		hookCmd,
		reviewCmd,
		statuslineCmd,
		diffCmd,
		logsCmd,
		configCmd,
	)

	return root
}

// requireContainer returns an error when the command runs outside a repository.
func requireContainer(c *app.Container) error {
	if c == nil {
		return errNotInRepository
	}
	return nil
}
