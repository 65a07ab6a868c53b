// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/cahaseler/cc-track/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockGit is a test double for domain.Git.
// It records write calls so tests can assert that none happened.
// Fields are ordered to minimize memory padding.
type MockGit struct {
	StatusErr         error
	DiffErr           error
	AddAllErr         error
	CommitErr         error
	HeadHashErr       error
	PushErr           error
	CurrentBranchErr  error
	UntrackedDiffs    map[string]string
	Statuses          []domain.FileStatus
	CommitMessages    []string
	DiffText          string
	HeadHashV         string
	CurrentBranchName string
	DefaultBranchName string
	AddAllCalls       int
	CommitCalls       int
	PushCalls         int
}

// Ensure MockGit implements domain.Git interface.
var _ domain.Git = (*MockGit)(nil)

// NewMockGitWithChanges returns a MockGit whose working tree has the given
// tracked diff; every path in the diff is reported as modified.
func NewMockGitWithChanges(diff string) *MockGit {
	m := &MockGit{
		DiffText:          diff,
		HeadHashV:         "abc1234def5678",
		CurrentBranchName: "feature",
		DefaultBranchName: "main",
	}
	for _, p := range domain.DiffPaths(diff) {
		m.Statuses = append(m.Statuses, domain.FileStatus{Code: " M", Path: p})
	}
	return m
}

// Status returns the configured statuses.
func (m *MockGit) Status(_ context.Context) ([]domain.FileStatus, error) {
	return m.Statuses, m.StatusErr
}

// Diff returns the configured diff.
func (m *MockGit) Diff(_ context.Context) (string, error) {
	return m.DiffText, m.DiffErr
}

// UntrackedDiff returns the configured diff for path.
func (m *MockGit) UntrackedDiff(_ context.Context, path string) (string, error) {
	if d, ok := m.UntrackedDiffs[path]; ok {
		return d, nil
	}
	return "", fmt.Errorf("no untracked diff for %s", path)
}

// AddAll records the call.
func (m *MockGit) AddAll(_ context.Context) error {
	m.AddAllCalls++
	return m.AddAllErr
}

// Commit records the message.
func (m *MockGit) Commit(_ context.Context, message string) error {
	m.CommitCalls++
	if m.CommitErr != nil {
		return m.CommitErr
	}
	m.CommitMessages = append(m.CommitMessages, message)
	return nil
}

// HeadHash returns the configured hash.
func (m *MockGit) HeadHash(_ context.Context) (string, error) {
	return m.HeadHashV, m.HeadHashErr
}

// Push records the call.
func (m *MockGit) Push(_ context.Context) error {
	m.PushCalls++
	return m.PushErr
}

// CurrentBranch returns the configured branch name or error.
func (m *MockGit) CurrentBranch() (string, error) {
	if m.CurrentBranchErr != nil {
		return "", m.CurrentBranchErr
	}
	return m.CurrentBranchName, nil
}

// DefaultBranch returns the configured default branch.
func (m *MockGit) DefaultBranch() (string, error) {
	return m.DefaultBranchName, nil
}

// WriteCalls returns the number of calls that would modify the repository.
func (m *MockGit) WriteCalls() int {
	return m.AddAllCalls + m.CommitCalls + m.PushCalls
}

// MockSummarizer is a test double for domain.Summarizer.
// It is safe for concurrent use and tracks how many calls overlap.
type MockSummarizer struct {
	// Fn produces the reply. When nil, a summary naming the prompt size is returned.
	Fn       func(ctx context.Context, prompt string) (string, error)
	calls    *atomic.Int32
	inFlight *atomic.Int32
	peak     *atomic.Int32
	mu       sync.Mutex
	prompts  []string
}

// NewMockSummarizer creates a MockSummarizer using fn.
func NewMockSummarizer(fn func(ctx context.Context, prompt string) (string, error)) *MockSummarizer {
	return &MockSummarizer{
		Fn:       fn,
		calls:    atomic.NewInt32(0),
		inFlight: atomic.NewInt32(0),
		peak:     atomic.NewInt32(0),
	}
}

// Ensure MockSummarizer implements domain.Summarizer.
var _ domain.Summarizer = (*MockSummarizer)(nil)

// Summarize calls Fn while tracking concurrency.
func (m *MockSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	m.calls.Inc()
	n := m.inFlight.Inc()
	defer m.inFlight.Dec()
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CAS(p, n) {
			break
		}
	}

	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.Fn == nil {
		return fmt.Sprintf("summary of %d bytes", len(prompt)), nil
	}
	return m.Fn(ctx, prompt)
}

// Calls returns the number of Summarize calls.
func (m *MockSummarizer) Calls() int {
	return int(m.calls.Load())
}

// PeakInFlight returns the highest number of overlapping calls observed.
func (m *MockSummarizer) PeakInFlight() int {
	return int(m.peak.Load())
}

// Prompts returns a copy of the prompts received.
func (m *MockSummarizer) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// MockClassifier is a test double for domain.ClassificationOracle.
// Responses are returned in order; the last one repeats.
// Fields are ordered to minimize memory padding.
type MockClassifier struct {
	Err       error
	Fn        func(ctx context.Context, prompt string) (string, error)
	Responses []string
	Prompts   []string
	MaxTurns  []int
	mu        sync.Mutex
}

// Ensure MockClassifier implements domain.ClassificationOracle.
var _ domain.ClassificationOracle = (*MockClassifier)(nil)

// Classify returns the next configured response.
func (m *MockClassifier) Classify(ctx context.Context, prompt string, maxTurns int) (string, error) {
	m.mu.Lock()
	idx := len(m.Prompts)
	m.Prompts = append(m.Prompts, prompt)
	m.MaxTurns = append(m.MaxTurns, maxTurns)
	m.mu.Unlock()

	if m.Fn != nil {
		return m.Fn(ctx, prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	return m.Responses[idx], nil
}

// Calls returns the number of Classify calls.
func (m *MockClassifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

// MockTaskStore is a test double for domain.TaskStore.
type MockTaskStore struct {
	Task *domain.TaskContext
	Err  error
}

// Ensure MockTaskStore implements domain.TaskStore.
var _ domain.TaskStore = (*MockTaskStore)(nil)

// ActiveTask returns the configured task.
func (m *MockTaskStore) ActiveTask() (*domain.TaskContext, error) {
	return m.Task, m.Err
}

// MockStatusPublisher is a test double for domain.StatusPublisher and domain.StatusReader.
type MockStatusPublisher struct {
	Err       error
	Published []domain.StatusArtifact
}

// Ensure MockStatusPublisher implements the status ports.
var (
	_ domain.StatusPublisher = (*MockStatusPublisher)(nil)
	_ domain.StatusReader    = (*MockStatusPublisher)(nil)
)

// Publish records the artifact.
func (m *MockStatusPublisher) Publish(artifact domain.StatusArtifact) error {
	if m.Err != nil {
		return m.Err
	}
	m.Published = append(m.Published, artifact)
	return nil
}

// Latest returns the last recorded artifact.
func (m *MockStatusPublisher) Latest() (*domain.StatusArtifact, error) {
	if len(m.Published) == 0 {
		return nil, domain.ErrNoStatus
	}
	a := m.Published[len(m.Published)-1]
	return &a, nil
}

// LogEntry is one line recorded by MockLogger.
type LogEntry struct {
	Level    string
	RunID    string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger. It is safe for concurrent use.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) add(level, runID, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, RunID: runID, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(runID, category, msg string) { m.add("DEBUG", runID, category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(runID, category, msg string) { m.add("INFO", runID, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(runID, category, msg string) { m.add("WARN", runID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(runID, category, msg string) { m.add("ERROR", runID, category, msg) }

// Contains reports whether any entry at level contains substr.
func (m *MockLogger) Contains(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Entries {
		if e.Level == level && strings.Contains(e.Msg, substr) {
			return true
		}
	}
	return false
}

// MockExecutor is a test double for domain.CommandExecutor.
// Fields are ordered to minimize memory padding.
type MockExecutor struct {
	Err            error
	Commands       []*domain.ExecCommand
	Stdout         string
	Stderr         string
	BlockUntilDone bool // ExecuteWithContext waits for ctx, like a hung process that gets killed
}

// Ensure MockExecutor implements domain.CommandExecutor.
var _ domain.CommandExecutor = (*MockExecutor)(nil)

// ExecuteWithContext records the command and writes the configured output.
func (m *MockExecutor) ExecuteWithContext(ctx context.Context, cmd *domain.ExecCommand, stdout, stderr io.Writer) error {
	m.Commands = append(m.Commands, cmd)
	if m.BlockUntilDone {
		<-ctx.Done()
		return errors.New("signal: killed")
	}
	_, _ = io.WriteString(stdout, m.Stdout)
	_, _ = io.WriteString(stderr, m.Stderr)
	return m.Err
}

// LastCommand returns the most recently executed command, or nil.
func (m *MockExecutor) LastCommand() *domain.ExecCommand {
	if len(m.Commands) == 0 {
		return nil
	}
	return m.Commands[len(m.Commands)-1]
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config    *domain.Config
	Err       error // Returned by Load
	GlobalErr error // Returned by LoadGlobal
	RepoErr   error // Returned by LoadRepo
}

// Ensure MockConfigLoader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// NewMockConfigLoader returns a loader serving the default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{Config: domain.NewDefaultConfig()}
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config or GlobalErr.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	return m.Config, nil
}

// LoadRepo returns the configured config or RepoErr.
func (m *MockConfigLoader) LoadRepo() (*domain.Config, error) {
	if m.RepoErr != nil {
		return nil, m.RepoErr
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr    error
	RepoInfo   domain.ConfigInfo
	GlobalInfo domain.ConfigInfo
	InitCalls  int
	LastForce  bool
}

// Ensure MockConfigManager implements domain.ConfigManager.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// NewMockConfigManager creates a MockConfigManager with no files on disk.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{}
}

// RepoConfigInfo returns the configured repo info.
func (m *MockConfigManager) RepoConfigInfo() domain.ConfigInfo {
	return m.RepoInfo
}

// GlobalConfigInfo returns the configured global info.
func (m *MockConfigManager) GlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalInfo
}

// InitRepoConfig records the call and mimics the existing-file check.
func (m *MockConfigManager) InitRepoConfig(force bool) error {
	m.InitCalls++
	m.LastForce = force
	if m.InitErr != nil {
		return m.InitErr
	}
	if m.RepoInfo.Exists && !force {
		return domain.ErrConfigExists
	}
	m.RepoInfo.Exists = true
	return nil
}
