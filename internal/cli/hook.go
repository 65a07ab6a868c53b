package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cahaseler/cc-track/internal/app"
	"github.com/cahaseler/cc-track/internal/domain"
	"github.com/cahaseler/cc-track/internal/usecase"
)

// Hook output formats.
const (
	formatResult = "result" // domain.HookResult JSON
	formatClaude = "claude" // Claude Code hook output JSON
)

var errNotInRepository = fmt.Errorf("cc-track must run inside a git repository: %w", domain.ErrNotGitRepository)

// newContainerFunc builds a container for the hook's working directory,
// allowing it to be replaced in tests.
var newContainerFunc = app.New

// hookInput is the JSON the assistant writes to a hook's stdin.
type hookInput struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	CWD            string `json:"cwd"`
	HookEventName  string `json:"hook_event_name"`
	StopHookActive bool   `json:"stop_hook_active"`
}

// claudeHookOutput is the Stop hook output understood by Claude Code.
type claudeHookOutput struct {
	Decision      string `json:"decision,omitempty"`
	Reason        string `json:"reason,omitempty"`
	SystemMessage string `json:"systemMessage,omitempty"`
}

// newHookCommand creates the hook command group.
func newHookCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Hook entry points for the AI assistant",
		// No RunE: shows subcommand list when called without arguments
	}
	cmd.AddCommand(newStopReviewHookCommand(c))
	return cmd
}

// newStopReviewHookCommand creates the hook stop-review subcommand.
func newStopReviewHookCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stop-review",
		Short: "Review and commit the working tree (Stop hook)",
		Long: `Review and commit the working tree at the end of an agent turn.

Reads the hook JSON from stdin and prints one JSON result on stdout.
The command always exits 0: any internal failure yields a "continue" decision
so the assistant is never stuck.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result := runStopReviewHook(cmd, c)
			return writeHookResult(cmd.OutOrStdout(), format, result)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatResult, "Output format: result or claude")

	return cmd
}

// runStopReviewHook runs the pipeline for one hook invocation. It never fails.
func runStopReviewHook(cmd *cobra.Command, c *app.Container) domain.HookResult {
	if os.Getenv(domain.OracleEnvVar) != "" {
		return domain.ContinueResult("")
	}

	in, err := readHookInput(cmd.InOrStdin())
	if err != nil {
		return domain.ContinueResult(fmt.Sprintf("cc-track: %v", err))
	}
	if in.StopHookActive {
		return domain.ContinueResult(domain.MessageHookSkipped)
	}

	if c == nil {
		dir := in.CWD
		if dir == "" {
			if dir, err = os.Getwd(); err != nil {
				return domain.ContinueResult(fmt.Sprintf("cc-track: %v", err))
			}
		}
		if c, err = newContainerFunc(dir); err != nil {
			return domain.ContinueResult(fmt.Sprintf("cc-track: %v", err))
		}
		defer func() { _ = c.Close() }()
	}

	out, err := c.StopReviewUseCase().Execute(cmd.Context(), usecase.StopReviewInput{})
	if err != nil {
		if c.Logger != nil {
			c.Logger.Error("stop review failed", "error", err, "session", in.SessionID)
		}
		return domain.ContinueResult(fmt.Sprintf("cc-track: %v", err))
	}
	return out.Result
}

// readHookInput decodes the hook JSON. Empty input is accepted.
func readHookInput(r io.Reader) (hookInput, error) {
	var in hookInput
	if r == nil {
		return in, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return in, fmt.Errorf("read hook input: %w", err)
	}
	if len(data) == 0 {
		return in, nil
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("%w: %v", domain.ErrHookInput, err)
	}
	return in, nil
}

// writeHookResult prints result in the requested format. Unknown formats
// fall back to the result format.
func writeHookResult(w io.Writer, format string, result domain.HookResult) error {
	var payload any = result
	if format == formatClaude {
		out := claudeHookOutput{SystemMessage: result.Message}
		if result.Decision == domain.DecisionBlock {
			out = claudeHookOutput{Decision: string(domain.DecisionBlock), Reason: result.Message}
		}
		payload = out
	}
	return json.NewEncoder(w).Encode(payload)
}
