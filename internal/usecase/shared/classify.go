package shared

import (
	"context"
	"errors"
	"fmt"

	"github.com/cahaseler/cc-track/internal/domain"
)

// Verdict messages used when the oracle gives no usable answer.
const (
	MessageBudgetExhausted    = "review budget exhausted; changes need verification"
	MessageClassifyTimeout    = "review timed out; changes need verification"
	MessageClassifyFailed     = "review unavailable; changes need verification"
	MessageVerdictUnparseable = "review verdict unreadable; changes need verification"
	maxRawVerdictInLog        = 300
)

// Classifier judges a change set against the active task.
// Fields are ordered to minimize memory padding.
type Classifier struct {
	oracle domain.ClassificationOracle
	logger domain.Logger
	runID  string
	branch string
	cfg    domain.ClassificationConfig
}

// NewClassifier creates a Classifier. branch is included in prompts when set.
func NewClassifier(oracle domain.ClassificationOracle, cfg domain.ClassificationConfig, logger domain.Logger, runID, branch string) *Classifier {
	return &Classifier{
		oracle: oracle,
		cfg:    cfg,
		logger: logger,
		runID:  runID,
		branch: branch,
	}
}

// Classify judges diffOrSummary against task. compressed marks a diff that
// is a compression summary. It never fails: every oracle problem degrades
// to NeedsVerification.
func (c *Classifier) Classify(ctx context.Context, diffOrSummary string, task *domain.TaskContext, compressed bool) domain.ReviewVerdict {
	return c.ClassifyDiff(ctx, domain.CompressedDiff{Text: diffOrSummary, Compressed: compressed}, task)
}

// ClassifyDiff is Classify for a prepared diff, keeping its truncation flag.
func (c *Classifier) ClassifyDiff(ctx context.Context, diff domain.CompressedDiff, task *domain.TaskContext) domain.ReviewVerdict {
	if !task.HasRequirements() {
		c.logger.Debug(c.runID, "classify", "no active task; skipping classification")
		return domain.ReviewVerdict{Status: domain.ReviewOnTrack, Message: domain.MessageNoActiveTask}
	}

	prompt := domain.BuildClassifyPrompt(domain.ClassifyPromptInput{
		Task:       task,
		Diff:       diff.Text,
		Branch:     c.branch,
		Compressed: diff.Compressed,
		Truncated:  diff.Truncated,
	})

	text, err := callOracle(ctx, c.cfg.Timeout(), func(cctx context.Context) (string, error) {
		return c.oracle.Classify(cctx, prompt, c.cfg.MaxTurns)
	})
	if err != nil {
		return c.degraded(ctx, err)
	}

	parsed, err := domain.ParseVerdict(text)
	if err != nil {
		c.logger.Warn(c.runID, "classify", fmt.Sprintf("%v; raw: %q", err, excerpt(text, maxRawVerdictInLog)))
		return domain.ReviewVerdict{Status: domain.ReviewNeedsVerification, Message: MessageVerdictUnparseable}
	}
	if parsed.Extracted {
		c.logger.Debug(c.runID, "classify", "verdict extracted from surrounding text")
	}

	verdict := parsed.Verdict
	if verdict.Message == "" {
		verdict.Message = verdict.Status.Display()
	}
	c.logger.Info(c.runID, "classify", fmt.Sprintf("verdict %s: %s", verdict.Status, verdict.Message))
	return verdict
}

// degraded maps an oracle error to a NeedsVerification verdict.
func (c *Classifier) degraded(ctx context.Context, err error) domain.ReviewVerdict {
	msg := MessageClassifyFailed
	switch {
	case ctx.Err() != nil:
		msg = MessageBudgetExhausted
	case errors.Is(err, context.DeadlineExceeded):
		msg = MessageClassifyTimeout
	}
	c.logger.Warn(c.runID, "classify", fmt.Sprintf("%s: %v", msg, err))
	return domain.ReviewVerdict{Status: domain.ReviewNeedsVerification, Message: msg}
}

func excerpt(s string, limit int) string {
	kept, dropped := domain.TruncateText(s, limit)
	if dropped > 0 {
		return kept + "..."
	}
	return kept
}
