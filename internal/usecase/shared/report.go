package shared

import (
	"fmt"
	"strings"

	"github.com/cahaseler/cc-track/internal/domain"
)

// Reporter turns a pipeline outcome into the hook result and publishes
// the status artifact.
// Fields are ordered to minimize memory padding.
type Reporter struct {
	publisher       domain.StatusPublisher
	clock           domain.Clock
	logger          domain.Logger
	runID           string
	excluded        []string
	blockOnCritical bool
}

// NewReporter creates a Reporter.
func NewReporter(publisher domain.StatusPublisher, clock domain.Clock, logger domain.Logger, runID string, excluded []string, blockOnCritical bool) *Reporter {
	return &Reporter{
		publisher:       publisher,
		clock:           clock,
		logger:          logger,
		runID:           runID,
		excluded:        excluded,
		blockOnCritical: blockOnCritical,
	}
}

// Report builds the hook result. Only a critical failure with blocking
// enabled yields a block decision. The message is published unless excluded;
// publish errors are logged, never returned.
func (r *Reporter) Report(verdict domain.ReviewVerdict, outcome CommitOutcome) domain.HookResult {
	result := domain.HookResult{
		Decision:   domain.DecisionContinue,
		Message:    ComposeMessage(verdict, outcome.Warnings),
		Committed:  outcome.Committed,
		CommitHash: outcome.Record.Hash,
	}
	if verdict.Status == domain.ReviewCriticalFailure && r.blockOnCritical {
		result.Decision = domain.DecisionBlock
	}

	if domain.IsMeaningfulStatus(result.Message, r.excluded) {
		artifact := domain.NewStatusArtifact(r.clock.Now(), domain.StatusSourceStopReview, result.Message, verdict.Status)
		if err := r.publisher.Publish(artifact); err != nil {
			r.logger.Warn(r.runID, "report", fmt.Sprintf("publish status: %v", err))
		}
	}
	r.logger.Info(r.runID, "report", fmt.Sprintf("decision=%s committed=%t: %s", result.Decision, result.Committed, result.Message))
	return result
}

// ComposeMessage joins the verdict message and warnings into one line.
func ComposeMessage(verdict domain.ReviewVerdict, warnings []string) string {
	parts := make([]string, 0, len(warnings)+1)
	if msg := strings.TrimSpace(verdict.Message); msg != "" {
		parts = append(parts, msg)
	}
	for _, w := range warnings {
		if w = strings.TrimSpace(w); w != "" {
			parts = append(parts, "warning: "+w)
		}
	}
	return strings.Join(parts, "; ")
}
