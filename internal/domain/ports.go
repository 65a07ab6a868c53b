package domain

import (
	"context"
	"io"
	"time"
)

// Git provides the version-control operations the review pipeline needs.
// Read operations never mutate the working tree; only AddAll, Commit and
// Push write.
type Git interface {
	// Status lists changed paths (staged, unstaged and untracked).
	Status(ctx context.Context) ([]FileStatus, error)

	// Diff returns the unified diff of tracked changes against HEAD.
	Diff(ctx context.Context) (string, error)

	// UntrackedDiff returns a unified diff that adds the untracked file at path.
	UntrackedDiff(ctx context.Context, path string) (string, error)

	// AddAll stages every change in the working tree.
	AddAll(ctx context.Context) error

	// Commit creates a new commit from the index.
	// Returns ErrNothingToCommit when the index has no changes.
	Commit(ctx context.Context, message string) error

	// HeadHash returns the commit hash HEAD points to.
	HeadHash(ctx context.Context) (string, error)

	// Push pushes the current branch to its upstream. It never forces.
	Push(ctx context.Context) error

	// CurrentBranch returns the name of the checked-out branch.
	CurrentBranch() (string, error)

	// DefaultBranch returns the repository's default branch name.
	DefaultBranch() (string, error)
}

// FileStatus is one entry of the working-tree status.
type FileStatus struct {
	Path string // Path relative to the repository root (new path for renames)
	Code string // Two-letter porcelain status code, e.g. " M", "A ", "??"
}

// IsUntracked reports whether the entry is an untracked file.
func (s FileStatus) IsUntracked() bool {
	return s.Code == "??"
}

// Summarizer is the summarization oracle used by the compression stage.
// Timeouts are enforced by the caller through ctx.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// ClassificationOracle is the judgment oracle used to classify changes and
// to generate commit messages. Timeouts are enforced by the caller through ctx.
type ClassificationOracle interface {
	Classify(ctx context.Context, prompt string, maxTurns int) (string, error)
}

// TaskStore provides read-only access to the active task.
type TaskStore interface {
	// ActiveTask returns the active task, or nil when no task is active.
	ActiveTask() (*TaskContext, error)
}

// StatusPublisher writes the status artifact for the display surface.
type StatusPublisher interface {
	Publish(artifact StatusArtifact) error
}

// StatusReader reads back the last published status artifact.
type StatusReader interface {
	// Latest returns the last artifact. Returns ErrNoStatus if none exists.
	Latest() (*StatusArtifact, error)
}

// Logger provides file-based logging for pipeline runs.
// runID correlates all lines of one invocation; empty means global.
type Logger interface {
	Debug(runID, category, msg string)
	Info(runID, category, msg string)
	Warn(runID, category, msg string)
	Error(runID, category, msg string)
}

// CommandExecutor executes external commands.
type CommandExecutor interface {
	// ExecuteWithContext runs the command with context and custom stdout/stderr writers.
	ExecuteWithContext(ctx context.Context, cmd *ExecCommand, stdout, stderr io.Writer) error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults + global + repo).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)

	// LoadRepo returns only the repository configuration.
	LoadRepo() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// RepoConfigInfo returns information about the repository config file.
	RepoConfigInfo() ConfigInfo

	// GlobalConfigInfo returns information about the global config file.
	GlobalConfigInfo() ConfigInfo

	// InitRepoConfig writes the config template to the repository config path.
	// Returns ErrConfigExists unless force is set.
	InitRepoConfig(force bool) error
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
