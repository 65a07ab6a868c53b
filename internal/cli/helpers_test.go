package cli

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cahaseler/cc-track/internal/app"
	"github.com/cahaseler/cc-track/internal/domain"
	"github.com/cahaseler/cc-track/internal/testutil"
)

// testDeps exposes the mocks behind a test container.
type testDeps struct {
	git        *testutil.MockGit
	classifier *testutil.MockClassifier
	publisher  *testutil.MockStatusPublisher
	logger     *testutil.MockLogger
	cfg        *domain.Config
}

// newTestContainer creates a container backed by mocks whose working tree
// holds diff.
func newTestContainer(t *testing.T, diff string) (*app.Container, *testDeps) {
	t.Helper()
	t.Setenv(domain.OracleEnvVar, "")

	deps := &testDeps{
		git:        testutil.NewMockGitWithChanges(diff),
		classifier: &testutil.MockClassifier{Responses: []string{`{"status":"on_track","message":"looks right"}`}},
		publisher:  &testutil.MockStatusPublisher{},
		logger:     &testutil.MockLogger{},
		cfg:        domain.NewDefaultConfig(),
	}
	c := app.NewWithDeps(
		app.Config{RepoRoot: t.TempDir()},
		deps.cfg,
		app.Deps{
			Git:           deps.git,
			Summarizer:    testutil.NewMockSummarizer(nil),
			Oracle:        deps.classifier,
			Tasks:         &testutil.MockTaskStore{Task: &domain.TaskContext{ID: "TASK_001", Requirements: "Build the hook."}},
			Publisher:     deps.publisher,
			StatusReader:  deps.publisher,
			Clock:         &testutil.MockClock{NowTime: time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)},
			ConfigLoader:  testutil.NewMockConfigLoader(),
			ConfigManager: testutil.NewMockConfigManager(),
			PipelineLog:   deps.logger,
		},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return c, deps
}
