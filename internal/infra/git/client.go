// Package git provides git operations.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/cahaseler/cc-track/internal/domain"
)

// emptyTreeHash is the well-known hash of git's empty tree. Diffs in a
// repository without commits are taken against it.
const emptyTreeHash = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// Client provides git operations.
// Working-tree operations shell out to git; ref lookups go through go-git.
// Fields are ordered to minimize memory padding.
type Client struct {
	repo     *git.Repository
	branches *BranchCache
	repoRoot string   // Top level of the working tree
	gitDir   string   // Git directory of the working tree
	excludes []string // ":(exclude)" pathspecs applied to status, diff and add
}

// NewClient creates a new git client by detecting the repository from the given directory.
// dir may be any directory inside the working tree, including a linked worktree.
func NewClient(dir string) (*Client, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, domain.ErrNotGitRepository
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	repoRoot := filepath.Clean(wt.Filesystem.Root())
	return &Client{
		repo:     repo,
		repoRoot: repoRoot,
		gitDir:   resolveGitDir(repo, repoRoot),
		branches: NewBranchCache(repo),
	}, nil
}

// resolveGitDir returns the directory backing the repository storage.
// For a linked worktree this is its own directory under .git/worktrees.
func resolveGitDir(repo *git.Repository, repoRoot string) string {
	if s, ok := repo.Storer.(*filesystem.Storage); ok {
		return filepath.Clean(s.Filesystem().Root())
	}
	return filepath.Join(repoRoot, git.GitDirName)
}

// Ensure Client implements domain.Git interface.
var _ domain.Git = (*Client)(nil)

// RepoRoot returns the top level of the working tree.
func (c *Client) RepoRoot() string {
	return c.repoRoot
}

// GitDir returns the git directory of the working tree.
func (c *Client) GitDir() string {
	return c.gitDir
}

// ExcludePaths keeps the given files out of Status, Diff and AddAll.
// Paths may be absolute; those outside the working tree are ignored.
func (c *Client) ExcludePaths(paths ...string) {
	for _, p := range paths {
		if filepath.IsAbs(p) {
			rel, err := filepath.Rel(c.repoRoot, p)
			if err != nil {
				continue
			}
			p = rel
		}
		p = filepath.ToSlash(filepath.Clean(p))
		if p == "." || p == ".." || strings.HasPrefix(p, "../") {
			continue
		}
		c.excludes = append(c.excludes, ":(exclude)"+p)
	}
}

// withPathspec appends the exclude pathspecs to args.
func (c *Client) withPathspec(args ...string) []string {
	if len(c.excludes) == 0 {
		return args
	}
	args = append(args, "--", ".")
	return append(args, c.excludes...)
}

// Branches returns the client's branch cache.
func (c *Client) Branches() *BranchCache {
	return c.branches
}

// Status lists changed paths, including every untracked file.
func (c *Client) Status(ctx context.Context) ([]domain.FileStatus, error) {
	out, err := c.output(ctx, c.withPathspec("status", "--porcelain=v1", "-z", "--untracked-files=all")...)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return parsePorcelainZ(out), nil
}

// parsePorcelainZ parses `git status --porcelain=v1 -z` output.
// Rename and copy entries are followed by their source path, which is skipped.
func parsePorcelainZ(out []byte) []domain.FileStatus {
	var entries []domain.FileStatus
	fields := strings.Split(string(out), "\x00")
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		if len(field) < 4 {
			continue
		}
		code := field[:2]
		entries = append(entries, domain.FileStatus{Code: code, Path: field[3:]})
		if code[0] == 'R' || code[0] == 'C' {
			i++
		}
	}
	return entries
}

// Diff returns the unified diff of tracked changes (staged and unstaged) against HEAD.
// In a repository without commits the diff is taken against the empty tree.
func (c *Client) Diff(ctx context.Context) (string, error) {
	base := "HEAD"
	if _, err := c.HeadHash(ctx); errors.Is(err, domain.ErrNoCommits) {
		base = emptyTreeHash
	}
	out, err := c.output(ctx, c.withPathspec("diff", base, "--no-color", "--no-ext-diff")...)
	if err != nil {
		return "", fmt.Errorf("failed to get diff: %w", err)
	}
	return string(out), nil
}

// UntrackedDiff returns a diff that adds the untracked file at path.
func (c *Client) UntrackedDiff(ctx context.Context, path string) (string, error) {
	cmd := c.command(ctx, "diff", "--no-color", "--no-ext-diff", "--no-index", "--", "/dev/null", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		// Exit code 1 means the files differ, which is always the case here.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return string(out), nil
		}
		return "", fmt.Errorf("failed to diff untracked file %s: %w: %s", path, err, stderr.String())
	}
	return string(out), nil
}

// AddAll stages every change, including untracked files and deletions,
// except the excluded paths.
func (c *Client) AddAll(ctx context.Context) error {
	if out, err := c.command(ctx, c.withPathspec("add", "-A")...).CombinedOutput(); err != nil {
		return fmt.Errorf("failed to stage changes: %w: %s", err, string(out))
	}
	return nil
}

// Commit creates a commit from the index.
// Returns domain.ErrNothingToCommit when nothing is staged.
func (c *Client) Commit(ctx context.Context, message string) error {
	staged, err := c.hasStagedChanges(ctx)
	if err != nil {
		return err
	}
	if !staged {
		return domain.ErrNothingToCommit
	}

	cmd := c.command(ctx, "commit", "-F", "-")
	cmd.Stdin = strings.NewReader(message)
	if out, err := cmd.CombinedOutput(); err != nil {
		if strings.Contains(string(out), "nothing to commit") {
			return domain.ErrNothingToCommit
		}
		return fmt.Errorf("failed to commit: %w: %s", err, string(out))
	}
	return nil
}

func (c *Client) hasStagedChanges(ctx context.Context) (bool, error) {
	err := c.command(ctx, "diff", "--cached", "--quiet").Run()
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, fmt.Errorf("failed to check staged changes: %w", err)
}

// HeadHash returns the commit hash HEAD points to.
// Returns domain.ErrNoCommits for an unborn branch.
func (c *Client) HeadHash(_ context.Context) (string, error) {
	ref, err := c.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", domain.ErrNoCommits
		}
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// Push pushes the current branch. A branch without upstream is pushed to
// origin and its upstream set. Never forces.
func (c *Client) Push(ctx context.Context) error {
	args := []string{"push"}
	if err := c.command(ctx, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}").Run(); err != nil {
		branch, branchErr := c.CurrentBranch()
		if branchErr != nil {
			return branchErr
		}
		args = append(args, "--set-upstream", "origin", branch)
	}
	if out, err := c.command(ctx, args...).CombinedOutput(); err != nil {
		return fmt.Errorf("failed to push: %w: %s", err, string(out))
	}
	return nil
}

// CurrentBranch returns the name of the checked-out branch.
func (c *Client) CurrentBranch() (string, error) {
	return c.branches.Current()
}

// DefaultBranch returns the repository's default branch name.
func (c *Client) DefaultBranch() (string, error) {
	return c.branches.Default()
}

func (c *Client) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.repoRoot
	return cmd
}

func (c *Client) output(ctx context.Context, args ...string) ([]byte, error) {
	cmd := c.command(ctx, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}
