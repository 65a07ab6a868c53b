package shared

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cahaseler/cc-track/internal/domain"
)

// CommitOutcome is the result of the commit stage.
// Fields are ordered to minimize memory padding.
type CommitOutcome struct {
	Record    domain.CommitRecord
	Warnings  []string
	Committed bool
	Pushed    bool
}

// Committer stages and commits the working tree.
// Fields are ordered to minimize memory padding.
type Committer struct {
	git    domain.Git
	oracle domain.ClassificationOracle // Used for message generation; may be nil
	logger domain.Logger
	runID  string
	cfg    domain.CommitConfig
}

// NewCommitter creates a Committer.
func NewCommitter(git domain.Git, oracle domain.ClassificationOracle, cfg domain.CommitConfig, logger domain.Logger, runID string) *Committer {
	return &Committer{
		git:    git,
		oracle: oracle,
		cfg:    cfg,
		logger: logger,
		runID:  runID,
	}
}

// Commit creates at most one commit holding every change, then pushes when
// configured. It never amends or forces. Failures become warnings.
// Git writes are not cut short by ctx's deadline; only message generation is.
func (c *Committer) Commit(ctx context.Context, changes *domain.Changes, verdict domain.ReviewVerdict, task *domain.TaskContext) CommitOutcome {
	var out CommitOutcome
	if changes == nil || !changes.HasChanges || !c.cfg.Enabled {
		return out
	}

	if c.cfg.SkipDefaultBranch && c.onDefaultBranch() {
		return c.warn(out, "on the default branch; auto-commit skipped")
	}

	message := c.message(ctx, changes, verdict, task)
	writeCtx := context.WithoutCancel(ctx)

	if err := c.git.AddAll(writeCtx); err != nil {
		return c.warn(out, fmt.Sprintf("commit failed: %v", err))
	}
	if err := c.git.Commit(writeCtx, message); err != nil {
		if errors.Is(err, domain.ErrNothingToCommit) {
			return c.warn(out, "nothing to commit")
		}
		return c.warn(out, fmt.Sprintf("commit failed: %v", err))
	}

	out.Committed = true
	out.Record = domain.CommitRecord{Message: message, Files: changes.Paths}
	hash, err := c.git.HeadHash(writeCtx)
	if err != nil {
		out = c.warn(out, fmt.Sprintf("commit created but HEAD unreadable: %v", err))
	}
	out.Record.Hash = hash
	c.logger.Info(c.runID, "commit", fmt.Sprintf("committed %s: %s", shortHash(hash), firstLine(message)))

	if c.cfg.Push {
		if err := c.git.Push(writeCtx); err != nil {
			c.logger.Warn(c.runID, "commit", fmt.Sprintf("push: %v", err))
			return c.warn(out, domain.MessagePushFailed)
		}
		out.Pushed = true
	}
	return out
}

// message picks the commit message: the verdict's suggestion, then a
// generated message, then the deterministic template. The configured prefix
// marks oracle-written messages; templates are used verbatim.
func (c *Committer) message(ctx context.Context, changes *domain.Changes, verdict domain.ReviewVerdict, task *domain.TaskContext) string {
	if msg := domain.CleanCommitMessage(verdict.SuggestedCommitMessage); msg != "" {
		return domain.ApplyMessagePrefix(msg, c.cfg.MessagePrefix)
	}
	if c.cfg.GenerateMessage && c.oracle != nil && strings.TrimSpace(changes.FilteredDiff) != "" {
		diff, _ := domain.TruncateText(changes.FilteredDiff, domain.DefaultMaxRawBytes)
		prompt := domain.BuildCommitMessagePrompt(task, diff)
		text, err := callOracle(ctx, c.cfg.MessageTimeout(), func(cctx context.Context) (string, error) {
			return c.oracle.Classify(cctx, prompt, 1)
		})
		if err != nil {
			c.logger.Warn(c.runID, "commit", fmt.Sprintf("message generation failed: %v", err))
		} else if msg := domain.CleanCommitMessage(text); msg != "" {
			return domain.ApplyMessagePrefix(msg, c.cfg.MessagePrefix)
		}
	}
	return domain.TemplateCommitMessage(changes)
}

func (c *Committer) onDefaultBranch() bool {
	current, err := c.git.CurrentBranch()
	if err != nil {
		return false
	}
	def, err := c.git.DefaultBranch()
	if err != nil || def == "" {
		return false
	}
	return current == def
}

func (c *Committer) warn(out CommitOutcome, msg string) CommitOutcome {
	c.logger.Warn(c.runID, "commit", msg)
	out.Warnings = append(out.Warnings, msg)
	return out
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
