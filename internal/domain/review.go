package domain

import (
	"encoding/json"
	"strings"
)

// ReviewStatus is the four-state outcome of classifying a change.
type ReviewStatus string

// Review statuses, in order of severity.
const (
	ReviewOnTrack           ReviewStatus = "on_track"           // Changes match task intent
	ReviewDeviation         ReviewStatus = "deviation"          // Changes diverge from task scope
	ReviewNeedsVerification ReviewStatus = "needs_verification" // Oracle uncertain or unavailable
	ReviewCriticalFailure   ReviewStatus = "critical_failure"   // Unambiguous evidence of broken state
)

// AllReviewStatuses returns every review status in severity order.
func AllReviewStatuses() []ReviewStatus {
	return []ReviewStatus{
		ReviewOnTrack,
		ReviewDeviation,
		ReviewNeedsVerification,
		ReviewCriticalFailure,
	}
}

// ParseReviewStatus converts oracle output to a ReviewStatus.
// Matching is case-insensitive and tolerates spaces or hyphens instead of
// underscores. Anything unrecognized maps to ReviewNeedsVerification, so no
// status outside the four known values can ever be produced.
func ParseReviewStatus(s string) ReviewStatus {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	switch ReviewStatus(normalized) {
	case ReviewOnTrack, ReviewDeviation, ReviewNeedsVerification, ReviewCriticalFailure:
		return ReviewStatus(normalized)
	case "critical", "failure", "blocked":
		return ReviewCriticalFailure
	case "ontrack", "ok":
		return ReviewOnTrack
	default:
		return ReviewNeedsVerification
	}
}

// IsValid returns true if the status is one of the four known values.
func (s ReviewStatus) IsValid() bool {
	switch s {
	case ReviewOnTrack, ReviewDeviation, ReviewNeedsVerification, ReviewCriticalFailure:
		return true
	default:
		return false
	}
}

// Severity returns the status rank; higher is more severe.
func (s ReviewStatus) Severity() int {
	switch s {
	case ReviewOnTrack:
		return 0
	case ReviewDeviation:
		return 1
	case ReviewNeedsVerification:
		return 2
	case ReviewCriticalFailure:
		return 3
	default:
		return 2
	}
}

// Display returns a human-readable representation of the status.
func (s ReviewStatus) Display() string {
	switch s {
	case ReviewOnTrack:
		return "On track"
	case ReviewDeviation:
		return "Deviation"
	case ReviewNeedsVerification:
		return "Needs verification"
	case ReviewCriticalFailure:
		return "Critical failure"
	default:
		return string(s)
	}
}

// Icon returns a short marker used in status lines and artifacts.
func (s ReviewStatus) Icon() string {
	switch s {
	case ReviewOnTrack:
		return "✓"
	case ReviewDeviation:
		return "⚠"
	case ReviewNeedsVerification:
		return "?"
	case ReviewCriticalFailure:
		return "✗"
	default:
		return "·"
	}
}

// ReviewVerdict is the result of one classification.
// SuggestedCommitMessage is empty when the oracle offered none.
type ReviewVerdict struct {
	Status                 ReviewStatus
	Message                string
	SuggestedCommitMessage string
}

// TaskContext describes the active task. A nil *TaskContext means no task
// is active, which is a valid state: there is nothing to deviate from.
type TaskContext struct {
	ID           string
	Title        string
	Requirements string
}

// HasRequirements reports whether the task carries any requirement text.
func (t *TaskContext) HasRequirements() bool {
	return t != nil && strings.TrimSpace(t.Requirements) != ""
}

// Changes is the output of the diff collector.
// Fields are ordered to minimize memory padding.
type Changes struct {
	RawDiff        string   // Tracked diff of every path plus diffs of untracked, unfiltered files
	FilteredDiff   string   // Diff with documentation/generated paths removed
	Paths          []string // Every changed path
	HasChanges     bool
	HasCodeChanges bool
	HasDocChanges  bool
}

// IsDocOnly reports whether raw changes exist but none of them are code.
func (c *Changes) IsDocOnly() bool {
	return c.HasChanges && !c.HasCodeChanges && strings.TrimSpace(c.FilteredDiff) == ""
}

// CompressionResult is the outcome of summarizing one chunk.
type CompressionResult struct {
	SummaryText string
	ChunkID     int
	Succeeded   bool
}

// CompressedDiff is the aggregated output of the compression stage.
// Compressed is false when compression was skipped or every chunk failed;
// Truncated is set when Text is a raw diff cut to the raw size limit.
// Fields are ordered to minimize memory padding.
type CompressedDiff struct {
	Text         string
	Ratio        float64 // compressed bytes / original bytes
	TotalChunks  int
	FailedChunks int
	Compressed   bool
	Truncated    bool
}

// CommitRecord describes a commit created by the pipeline.
type CommitRecord struct {
	Hash    string
	Message string
	Files   []string
}

// HookDecision tells the hook harness whether to let the agent stop.
type HookDecision string

// Hook decisions.
const (
	DecisionContinue HookDecision = "continue"
	DecisionBlock    HookDecision = "block"
)

// HookResult is the structured result returned to the hook harness.
// Fields are ordered to minimize memory padding.
type HookResult struct {
	Decision   HookDecision `json:"decision"`
	Message    string       `json:"message"`
	CommitHash string       `json:"commitHash"` // Empty when nothing was committed; encoded as null
	Committed  bool         `json:"committed"`
}

// MarshalJSON encodes an empty CommitHash as null.
func (r HookResult) MarshalJSON() ([]byte, error) {
	type wire struct {
		CommitHash *string      `json:"commitHash"`
		Decision   HookDecision `json:"decision"`
		Message    string       `json:"message"`
		Committed  bool         `json:"committed"`
	}
	w := wire{Decision: r.Decision, Message: r.Message, Committed: r.Committed}
	if r.CommitHash != "" {
		w.CommitHash = &r.CommitHash
	}
	return json.Marshal(w)
}

// ContinueResult returns a HookResult that lets the agent proceed.
func ContinueResult(message string) HookResult {
	return HookResult{Decision: DecisionContinue, Message: message}
}
