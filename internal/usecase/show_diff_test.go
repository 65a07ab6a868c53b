package usecase_test

import (
	"context"
	"testing"

	"github.com/cahaseler/cc-track/internal/domain"
	"github.com/cahaseler/cc-track/internal/testutil"
	"github.com/cahaseler/cc-track/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowDiff_Execute(t *testing.T) {
	diff := testutil.Diff(40, "a.go", "README.md", "b.go")

	t.Run("filtered by default", func(t *testing.T) {
		git := testutil.NewMockGitWithChanges(diff)

		out, err := usecase.NewShowDiff(git, domain.NewDefaultConfig()).Execute(context.Background(), usecase.ShowDiffInput{})

		require.NoError(t, err)
		assert.Equal(t, []string{"a.go", "b.go"}, domain.DiffPaths(out.Diff))
		assert.Equal(t, []string{"README.md"}, out.Excluded)
		assert.Nil(t, out.Chunks)
		assert.Zero(t, git.WriteCalls())
	})

	t.Run("raw", func(t *testing.T) {
		out, err := usecase.NewShowDiff(testutil.NewMockGitWithChanges(diff), domain.NewDefaultConfig()).
			Execute(context.Background(), usecase.ShowDiffInput{Raw: true})

		require.NoError(t, err)
		assert.Equal(t, diff, out.Diff)
	})

	t.Run("chunks above threshold", func(t *testing.T) {
		cfg := domain.NewDefaultConfig()
		cfg.Compression.ThresholdBytes = 100
		cfg.Compression.MaxChunkBytes = 1500

		out, err := usecase.NewShowDiff(testutil.NewMockGitWithChanges(diff), cfg).
			Execute(context.Background(), usecase.ShowDiffInput{Chunks: true})

		require.NoError(t, err)
		require.Len(t, out.Chunks, 2)
		assert.Equal(t, []string{"a.go"}, out.Chunks[0].Files)
		assert.Equal(t, []string{"b.go"}, out.Chunks[1].Files)
	})

	t.Run("status error", func(t *testing.T) {
		git := &testutil.MockGit{StatusErr: domain.ErrNotGitRepository}

		_, err := usecase.NewShowDiff(git, domain.NewDefaultConfig()).Execute(context.Background(), usecase.ShowDiffInput{})

		assert.ErrorIs(t, err, domain.ErrNotGitRepository)
	})
}
