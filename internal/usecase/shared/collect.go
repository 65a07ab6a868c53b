package shared

import (
	"context"
	"fmt"
	"strings"

	"github.com/cahaseler/cc-track/internal/domain"
)

// Collector gathers working-tree changes. It never writes to the repository.
type Collector struct {
	git    domain.Git
	filter *domain.PathFilter
}

// NewCollector creates a Collector.
func NewCollector(git domain.Git, filter *domain.PathFilter) *Collector {
	return &Collector{git: git, filter: filter}
}

// Collect returns the current changes. A clean tree yields HasChanges=false.
// Untracked files matched by the filter get no diff: they are committed
// but never reviewed. Untracked files that cannot be diffed are skipped.
func (c *Collector) Collect(ctx context.Context) (*domain.Changes, error) {
	statuses, err := c.git.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect status: %w", err)
	}
	if len(statuses) == 0 {
		return &domain.Changes{}, nil
	}

	changes := &domain.Changes{HasChanges: true}
	var untracked []string
	for _, s := range statuses {
		changes.Paths = append(changes.Paths, s.Path)
		if c.filter.Matches(s.Path) {
			changes.HasDocChanges = true
		} else {
			changes.HasCodeChanges = true
		}
		if s.IsUntracked() && !c.filter.Matches(s.Path) {
			untracked = append(untracked, s.Path)
		}
	}

	tracked, err := c.git.Diff(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect diff: %w", err)
	}

	var raw strings.Builder
	raw.WriteString(tracked)
	for _, path := range untracked {
		d, err := c.git.UntrackedDiff(ctx, path)
		if err != nil {
			// The file may have vanished since Status; it is still staged by AddAll.
			continue
		}
		if raw.Len() > 0 && !strings.HasSuffix(raw.String(), "\n") {
			raw.WriteString("\n")
		}
		raw.WriteString(d)
	}

	changes.RawDiff = raw.String()
	changes.FilteredDiff = domain.FilterDiff(changes.RawDiff, c.filter)
	return changes, nil
}
