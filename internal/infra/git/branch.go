package git

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// fallbackDefaultBranches are tried in order when origin/HEAD is not set.
var fallbackDefaultBranches = []string{"main", "master"}

// BranchCache resolves and memoizes branch names for one repository.
// Lookups are computed on first use; Reset drops the memoized values.
type BranchCache struct {
	repo          *git.Repository
	current       string
	defaultBranch string
	mu            sync.Mutex
}

// NewBranchCache creates a cache backed by repo.
func NewBranchCache(repo *git.Repository) *BranchCache {
	return &BranchCache{repo: repo}
}

// Current returns the checked-out branch name. On a detached HEAD it
// returns "HEAD". An unborn branch is reported by its symbolic name.
func (b *BranchCache) Current() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != "" {
		return b.current, nil
	}

	ref, err := b.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	switch {
	case ref.Type() == plumbing.SymbolicReference && ref.Target().IsBranch():
		b.current = ref.Target().Short()
	default:
		b.current = plumbing.HEAD.String()
	}
	return b.current, nil
}

// Default returns the default branch: the target of refs/remotes/origin/HEAD,
// else the first of main or master that exists locally.
// Returns "" without error when none can be determined.
func (b *BranchCache) Default() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.defaultBranch != "" {
		return b.defaultBranch, nil
	}

	if ref, err := b.repo.Reference(plumbing.NewRemoteHEADReferenceName("origin"), false); err == nil &&
		ref.Type() == plumbing.SymbolicReference {
		b.defaultBranch = strings.TrimPrefix(ref.Target().Short(), "origin/")
		return b.defaultBranch, nil
	}

	for _, name := range fallbackDefaultBranches {
		if _, err := b.repo.Reference(plumbing.NewBranchReferenceName(name), false); err == nil {
			b.defaultBranch = name
			return b.defaultBranch, nil
		}
	}
	return "", nil
}

// Reset clears memoized values so the next lookup reads the repository again.
func (b *BranchCache) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = ""
	b.defaultBranch = ""
}
