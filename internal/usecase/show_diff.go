package usecase

import (
	"context"

	"github.com/cahaseler/cc-track/internal/domain"
	"github.com/cahaseler/cc-track/internal/usecase/shared"
)

// ShowDiffInput contains the parameters for showing the review diff.
type ShowDiffInput struct {
	Raw    bool // Show the unfiltered diff
	Chunks bool // Also report how the diff would be chunked
}

// ShowDiffOutput contains the result of showing the review diff.
// Fields are ordered to minimize memory padding.
type ShowDiffOutput struct {
	Diff     string             // Filtered diff as sent to the oracles (raw diff with Raw)
	Excluded []string           // Changed paths the filter keeps away from the oracles
	Chunks   []domain.DiffChunk // Set with Chunks when the diff is above the compression threshold
}

// ShowDiff displays the diff the review pipeline would send to the oracles.
// It never writes to the repository.
type ShowDiff struct {
	git domain.Git
	cfg *domain.Config
}

// NewShowDiff creates a new ShowDiff use case.
func NewShowDiff(git domain.Git, cfg *domain.Config) *ShowDiff {
	return &ShowDiff{git: git, cfg: cfg}
}

// Execute collects the working-tree changes and returns the review diff.
func (uc *ShowDiff) Execute(ctx context.Context, in ShowDiffInput) (*ShowDiffOutput, error) {
	filter := domain.NewPathFilter(uc.cfg.Filter.Exclude)
	changes, err := shared.NewCollector(uc.git, filter).Collect(ctx)
	if err != nil {
		return nil, err
	}

	out := &ShowDiffOutput{Diff: changes.FilteredDiff}
	if in.Raw {
		out.Diff = changes.RawDiff
	}
	for _, p := range changes.Paths {
		if filter.Matches(p) {
			out.Excluded = append(out.Excluded, p)
		}
	}

	c := uc.cfg.Compression
	if in.Chunks && c.Enabled && len(changes.FilteredDiff) >= c.ThresholdBytes {
		out.Chunks = domain.ChunkDiff(changes.FilteredDiff, c.MaxChunkBytes)
	}
	return out, nil
}
