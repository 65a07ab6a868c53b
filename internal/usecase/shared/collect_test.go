package shared

import (
	"context"
	"errors"
	"testing"

	"github.com/cahaseler/cc-track/internal/domain"
	"github.com/cahaseler/cc-track/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultFilter() *domain.PathFilter {
	return domain.NewPathFilter(domain.DefaultExcludePatterns)
}

func TestCollector_CleanTree(t *testing.T) {
	git := &testutil.MockGit{}

	changes, err := NewCollector(git, defaultFilter()).Collect(context.Background())
	require.NoError(t, err)

	assert.False(t, changes.HasChanges)
	assert.Zero(t, git.WriteCalls())
}

func TestCollector_MixedChanges(t *testing.T) {
	git := testutil.NewMockGitWithChanges(testutil.Diff(2, "main.go", "README.md"))
	git.Statuses = append(git.Statuses,
		domain.FileStatus{Code: "??", Path: "pkg/new.go"},
		domain.FileStatus{Code: "??", Path: ".claude/notes.txt"},
	)
	git.UntrackedDiffs = map[string]string{"pkg/new.go": testutil.FileDiff("pkg/new.go", 1)}

	changes, err := NewCollector(git, defaultFilter()).Collect(context.Background())
	require.NoError(t, err)

	assert.True(t, changes.HasChanges)
	assert.True(t, changes.HasCodeChanges)
	assert.True(t, changes.HasDocChanges)
	assert.False(t, changes.IsDocOnly())
	assert.ElementsMatch(t, []string{"main.go", "README.md", "pkg/new.go", ".claude/notes.txt"}, changes.Paths)
	assert.Equal(t, []string{"main.go", "README.md", "pkg/new.go"}, domain.DiffPaths(changes.RawDiff))
	assert.Equal(t, []string{"main.go", "pkg/new.go"}, domain.DiffPaths(changes.FilteredDiff))
	assert.Zero(t, git.WriteCalls())
}

func TestCollector_DocOnly(t *testing.T) {
	git := testutil.NewMockGitWithChanges(testutil.Diff(2, "docs/guide.md", "CHANGELOG.md"))

	changes, err := NewCollector(git, defaultFilter()).Collect(context.Background())
	require.NoError(t, err)

	assert.True(t, changes.IsDocOnly())
	assert.Empty(t, changes.FilteredDiff)
	assert.NotEmpty(t, changes.RawDiff)
}

func TestCollector_UntrackedDiffErrorSkipped(t *testing.T) {
	git := &testutil.MockGit{Statuses: []domain.FileStatus{{Code: "??", Path: "gone.go"}}}

	changes, err := NewCollector(git, defaultFilter()).Collect(context.Background())
	require.NoError(t, err)

	assert.True(t, changes.HasCodeChanges)
	assert.Empty(t, changes.RawDiff)
}

func TestCollector_Errors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		git := &testutil.MockGit{StatusErr: domain.ErrNotGitRepository}
		_, err := NewCollector(git, defaultFilter()).Collect(context.Background())
		assert.ErrorIs(t, err, domain.ErrNotGitRepository)
	})

	t.Run("diff", func(t *testing.T) {
		git := testutil.NewMockGitWithChanges(testutil.FileDiff("a.go", 1))
		git.DiffErr = errors.New("bad object")
		_, err := NewCollector(git, defaultFilter()).Collect(context.Background())
		assert.Error(t, err)
	})
}
