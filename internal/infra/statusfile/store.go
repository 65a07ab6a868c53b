// Package statusfile persists the status artifact as a JSON file.
package statusfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/cahaseler/cc-track/internal/domain"
)

// Store implements domain.StatusPublisher and domain.StatusReader.
type Store struct {
	path     string
	lockPath string
}

// Ensure Store implements the status ports.
var (
	_ domain.StatusPublisher = (*Store)(nil)
	_ domain.StatusReader    = (*Store)(nil)
)

// New creates a Store writing to path.
// The file does not need to exist; it will be created on first publish.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Paths returns every file the store writes: the artifact, its lock file
// and the temporary file used while publishing.
func (s *Store) Paths() []string {
	return []string{s.path, s.lockPath, s.tmpPath()}
}

func (s *Store) tmpPath() string {
	return s.path + ".tmp"
}

// Publish overwrites the artifact. Readers never see a partial file.
func (s *Store) Publish(artifact domain.StatusArtifact) error {
	content, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create status directory: %w", err)
	}

	lock, err := s.acquireLock()
	if err != nil {
		return err
	}
	defer releaseLock(lock)

	// Write to temp file first, then rename for atomicity
	tmpPath := s.tmpPath()
	if err := os.WriteFile(tmpPath, append(content, '\n'), 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Latest returns the last published artifact.
// Returns domain.ErrNoStatus if nothing was published yet.
func (s *Store) Latest() (*domain.StatusArtifact, error) {
	content, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNoStatus
	}
	if err != nil {
		return nil, fmt.Errorf("read status file: %w", err)
	}

	var artifact domain.StatusArtifact
	if err := json.Unmarshal(content, &artifact); err != nil {
		return nil, fmt.Errorf("parse status file: %w", err)
	}
	return &artifact, nil
}

func (s *Store) acquireLock() (*os.File, error) {
	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := syscall.Flock(int(lock.Fd()), syscall.LOCK_EX); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	return lock, nil
}

func releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}
