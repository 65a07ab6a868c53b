package domain

import (
	"slices"
	"strings"
	"time"
)

// StatusSourceStopReview is the artifact source written by the stop-review hook.
const StatusSourceStopReview = "stop_review"

// StatusArtifact is the short-lived status record consumed by a display
// surface. It is overwritten on every run.
type StatusArtifact struct {
	Timestamp string       `json:"timestamp"` // RFC 3339
	Message   string       `json:"message"`
	Source    string       `json:"source"`
	Status    ReviewStatus `json:"status,omitempty"`
}

// NewStatusArtifact creates an artifact stamped with t.
func NewStatusArtifact(t time.Time, source, message string, status ReviewStatus) StatusArtifact {
	return StatusArtifact{
		Timestamp: t.UTC().Format(time.RFC3339),
		Message:   message,
		Source:    source,
		Status:    status,
	}
}

// Time parses the artifact timestamp. Returns the zero time if it is malformed.
func (a StatusArtifact) Time() time.Time {
	t, err := time.Parse(time.RFC3339, a.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsMeaningfulStatus reports whether message should be published.
// Empty messages and messages in excluded (case-insensitive) are not.
func IsMeaningfulStatus(message string, excluded []string) bool {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return false
	}
	return !slices.ContainsFunc(excluded, func(e string) bool {
		return strings.EqualFold(strings.TrimSpace(e), trimmed)
	})
}
