package app

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cahaseler/cc-track/internal/domain"
	"github.com/cahaseler/cc-track/internal/usecase"
)

// setupRepo creates a repository with one empty commit and isolates the
// global config.
func setupRepo(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	runGit(t, dir, "init", "-b", "main")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	runGit(t, dir, "commit", "--allow-empty", "-m", "Initial commit")
	return dir
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, out)
	return strings.TrimSpace(string(out))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// runStopReview builds a fresh container, as every hook invocation does,
// and runs the pipeline once.
func runStopReview(t *testing.T, dir string) domain.HookResult {
	t.Helper()
	c, err := New(dir)
	require.NoError(t, err)
	defer func() { require.NoError(t, c.Close()) }()

	out, err := c.StopReviewUseCase().Execute(context.Background(), usecase.StopReviewInput{})
	require.NoError(t, err)
	return out.Result
}

func TestNew_StateLivesInGitDir(t *testing.T) {
	dir := setupRepo(t)

	c, err := New(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, filepath.Join(dir, ".git"), c.Config.GitDir)
	assert.Equal(t, filepath.Join(dir, ".git", "cc-track"), c.Config.StateDir)
	assert.Equal(t, filepath.Join(dir, ".git", "cc-track", "status.json"), c.Config.StatusPath)
}

func TestStopReview_CleanTreeRunsMakeNoCommits(t *testing.T) {
	dir := setupRepo(t)

	for i := 0; i < 3; i++ {
		result := runStopReview(t, dir)
		assert.False(t, result.Committed, "run %d", i)
		assert.Equal(t, domain.MessageNoChanges, result.Message, "run %d", i)
	}

	assert.Equal(t, "1", runGit(t, dir, "rev-list", "--count", "HEAD"))
	assert.Empty(t, runGit(t, dir, "status", "--porcelain", "--untracked-files=all"))
	assert.FileExists(t, domain.GlobalLogPath(filepath.Join(dir, ".git", "cc-track")))
}

func TestStopReview_DocChangeCommittedOnce(t *testing.T) {
	dir := setupRepo(t)
	writeFile(t, dir, "NOTES.md", "# Progress\n")

	first := runStopReview(t, dir)
	require.True(t, first.Committed)
	assert.Equal(t, domain.CommitMessageDocOnly, runGit(t, dir, "log", "-1", "--format=%s"))
	assert.Equal(t, "NOTES.md", runGit(t, dir, "show", "--name-only", "--format=", "HEAD"))

	second := runStopReview(t, dir)
	assert.False(t, second.Committed)
	assert.Equal(t, domain.MessageNoChanges, second.Message)

	assert.Equal(t, "2", runGit(t, dir, "rev-list", "--count", "HEAD"))
	assert.Empty(t, runGit(t, dir, "status", "--porcelain", "--untracked-files=all"))
	assert.FileExists(t, filepath.Join(dir, ".git", "cc-track", "status.json"))
}

func TestStopReview_InTreeStatusPathNeverCommitted(t *testing.T) {
	dir := setupRepo(t)
	writeFile(t, dir, ".claude/cc-track.toml", "[status]\npath = \".claude/status.json\"\n")
	runGit(t, dir, "add", ".claude/cc-track.toml")
	runGit(t, dir, "commit", "-m", "Add config")
	writeFile(t, dir, "NOTES.md", "# Progress\n")

	first := runStopReview(t, dir)
	require.True(t, first.Committed)
	assert.FileExists(t, filepath.Join(dir, ".claude", "status.json"))
	assert.Equal(t, "NOTES.md", runGit(t, dir, "show", "--name-only", "--format=", "HEAD"))

	second := runStopReview(t, dir)
	assert.False(t, second.Committed)
	assert.Equal(t, "3", runGit(t, dir, "rev-list", "--count", "HEAD"))
}
