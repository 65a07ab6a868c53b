package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/cahaseler/cc-track/internal/domain"
)

// ShowStatusInput contains the input for the ShowStatus use case.
type ShowStatusInput struct{}

// ShowStatusOutput contains the output of the ShowStatus use case.
// Artifact is nil when no status has been published yet.
type ShowStatusOutput struct {
	Artifact *domain.StatusArtifact
	Branch   string
	Age      time.Duration
}

// ShowStatus reads the last published review status for the status line.
type ShowStatus struct {
	status domain.StatusReader
	git    domain.Git // may be nil outside a repository
	clock  domain.Clock
}

// NewShowStatus creates a new ShowStatus use case.
func NewShowStatus(status domain.StatusReader, git domain.Git, clock domain.Clock) *ShowStatus {
	return &ShowStatus{
		status: status,
		git:    git,
		clock:  clock,
	}
}

// Execute returns the latest artifact, its age and the current branch.
func (uc *ShowStatus) Execute(_ context.Context, _ ShowStatusInput) (*ShowStatusOutput, error) {
	out := &ShowStatusOutput{}
	if uc.git != nil {
		if branch, err := uc.git.CurrentBranch(); err == nil {
			out.Branch = branch
		}
	}

	artifact, err := uc.status.Latest()
	if err != nil {
		if errors.Is(err, domain.ErrNoStatus) {
			return out, nil
		}
		return nil, err
	}
	out.Artifact = artifact
	if t := artifact.Time(); !t.IsZero() {
		out.Age = max(uc.clock.Now().Sub(t), 0)
	}
	return out, nil
}
