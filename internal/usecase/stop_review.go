// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cahaseler/cc-track/internal/domain"
	"github.com/cahaseler/cc-track/internal/usecase/shared"
)

// MessageTaskUnreadable is the verdict message when the active task cannot be read.
const MessageTaskUnreadable = "active task unreadable; changes need verification"

// StopReviewInput contains the input for the StopReview use case.
type StopReviewInput struct {
	DryRun bool // Review only: skip the commit stage and do not publish status
}

// StopReviewOutput contains the output of the StopReview use case.
// Fields are ordered to minimize memory padding.
type StopReviewOutput struct {
	Changes    *domain.Changes
	Task       *domain.TaskContext
	RunID      string
	Verdict    domain.ReviewVerdict
	Result     domain.HookResult
	Commit     shared.CommitOutcome
	Compressed domain.CompressedDiff
	Duration   time.Duration
	Skipped    bool // Review disabled in config; nothing ran
}

// StopReview runs the review pipeline at the end of an agent turn:
// collect, filter, compress, classify, commit, report.
// Fields are ordered to minimize memory padding.
type StopReview struct {
	git        domain.Git
	summarizer domain.Summarizer
	oracle     domain.ClassificationOracle
	tasks      domain.TaskStore
	publisher  domain.StatusPublisher
	clock      domain.Clock
	logger     domain.Logger
	cfg        *domain.Config
	newRunID   func() string
}

// NewStopReview creates a new StopReview use case.
func NewStopReview(
	git domain.Git,
	summarizer domain.Summarizer,
	oracle domain.ClassificationOracle,
	tasks domain.TaskStore,
	publisher domain.StatusPublisher,
	clock domain.Clock,
	logger domain.Logger,
	cfg *domain.Config,
) *StopReview {
	return &StopReview{
		git:        git,
		summarizer: summarizer,
		oracle:     oracle,
		tasks:      tasks,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
		cfg:        cfg,
		newRunID:   newRunID,
	}
}

func newRunID() string {
	return uuid.New().String()[:8]
}

// Execute runs the pipeline once. Oracle and git write failures degrade
// into the verdict or warnings; only a failure to read the working tree
// is returned as an error.
func (uc *StopReview) Execute(ctx context.Context, in StopReviewInput) (*StopReviewOutput, error) {
	start := uc.clock.Now()
	out := &StopReviewOutput{RunID: uc.newRunID()}

	if !uc.cfg.Review.Enabled {
		out.Skipped = true
		out.Result = domain.ContinueResult(domain.MessageReviewOff)
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.Review.Budget())
	defer cancel()

	runID := out.RunID
	uc.logger.Info(runID, "pipeline", fmt.Sprintf("stop review started (dry-run=%t)", in.DryRun))

	changes, err := shared.NewCollector(uc.git, domain.NewPathFilter(uc.cfg.Filter.Exclude)).Collect(ctx)
	if err != nil {
		uc.logger.Error(runID, "pipeline", err.Error())
		return nil, err
	}
	out.Changes = changes

	publisher := uc.publisher
	if in.DryRun {
		publisher = discardPublisher{}
	}
	reporter := shared.NewReporter(publisher, uc.clock, uc.logger, runID, uc.cfg.Status.ExcludedMessages, uc.cfg.Review.BlockOnCritical)
	committer := shared.NewCommitter(uc.git, uc.oracle, uc.cfg.Commit, uc.logger, runID)

	switch {
	case !changes.HasChanges:
		uc.logger.Debug(runID, "pipeline", "working tree clean")
		out.Verdict = domain.ReviewVerdict{Status: domain.ReviewOnTrack, Message: domain.MessageNoChanges}

	case changes.IsDocOnly():
		uc.logger.Info(runID, "pipeline", fmt.Sprintf("documentation-only change in %d path(s); classification skipped", len(changes.Paths)))
		out.Verdict = domain.ReviewVerdict{Status: domain.ReviewOnTrack, Message: domain.MessageDocOnly}

	default:
		task, taskErr := uc.tasks.ActiveTask()
		out.Task = task

		compressor := shared.NewCompressor(uc.summarizer, uc.cfg.Compression, uc.logger, runID)
		out.Compressed = compressor.Prepare(ctx, changes.FilteredDiff)

		if taskErr != nil {
			uc.logger.Warn(runID, "pipeline", fmt.Sprintf("read active task: %v", taskErr))
			out.Verdict = domain.ReviewVerdict{Status: domain.ReviewNeedsVerification, Message: MessageTaskUnreadable}
		} else {
			branch, _ := uc.git.CurrentBranch()
			classifier := shared.NewClassifier(uc.oracle, uc.cfg.Classification, uc.logger, runID, branch)
			out.Verdict = classifier.ClassifyDiff(ctx, out.Compressed, task)
		}
	}

	if !in.DryRun {
		out.Commit = committer.Commit(ctx, changes, out.Verdict, out.Task)
	}
	out.Result = reporter.Report(out.Verdict, out.Commit)
	out.Duration = uc.clock.Now().Sub(start)
	uc.logger.Info(runID, "pipeline", fmt.Sprintf("stop review finished in %s", out.Duration.Round(time.Millisecond)))
	return out, nil
}

// discardPublisher drops every artifact.
type discardPublisher struct{}

func (discardPublisher) Publish(domain.StatusArtifact) error { return nil }
