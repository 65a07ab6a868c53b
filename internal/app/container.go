// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cahaseler/cc-track/internal/domain"
	"github.com/cahaseler/cc-track/internal/infra/config"
	"github.com/cahaseler/cc-track/internal/infra/executor"
	"github.com/cahaseler/cc-track/internal/infra/git"
	"github.com/cahaseler/cc-track/internal/infra/logging"
	"github.com/cahaseler/cc-track/internal/infra/oracle"
	"github.com/cahaseler/cc-track/internal/infra/statusfile"
	"github.com/cahaseler/cc-track/internal/infra/taskstore"
	"github.com/cahaseler/cc-track/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	RepoRoot   string // Root directory of the git repository
	GitDir     string // Path to the .git directory
	StateDir   string // Path to .git/cc-track (logs, status artifact)
	StatusPath string // Path to the status artifact
}

// newConfig creates a new Config from the repository paths and app config.
func newConfig(repoRoot, gitDir string, appConfig *domain.Config) Config {
	stateDir := domain.StateDir(gitDir)
	return Config{
		RepoRoot:   repoRoot,
		GitDir:     gitDir,
		StateDir:   stateDir,
		StatusPath: domain.StatusPath(repoRoot, stateDir, appConfig.Status.Path),
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Git           domain.Git
	Summarizer    domain.Summarizer
	Oracle        domain.ClassificationOracle
	Tasks         domain.TaskStore
	Publisher     domain.StatusPublisher
	StatusReader  domain.StatusReader
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	PipelineLog   domain.Logger

	// Pointer fields
	Logger    *slog.Logger   // CLI diagnostics on stderr
	AppConfig *domain.Config // Effective configuration

	// Configuration
	Config Config

	closers []io.Closer
}

// New creates a new Container by detecting the git repository from the given directory.
func New(dir string) (*Container, error) {
	// Detect git repository
	gitClient, err := git.NewClient(dir)
	if err != nil {
		return nil, err
	}
	repoRoot := gitClient.RepoRoot()

	// Load app config; an unusable config falls back to defaults with a warning
	configLoader := config.NewLoader(repoRoot)
	appConfig, err := configLoader.Load()
	if err != nil {
		appConfig = domain.NewDefaultConfig()
		appConfig.Warnings = append(appConfig.Warnings, fmt.Sprintf("%v; using built-in defaults", err))
	}

	cfg := newConfig(repoRoot, gitClient.GitDir(), appConfig)

	// A status artifact configured inside the working tree must never be committed
	status := statusfile.New(cfg.StatusPath)
	gitClient.ExcludePaths(status.Paths()...)

	// Create loggers
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(appConfig.Log.Level),
	}))
	pipelineLog := logging.New(cfg.StateDir, logging.ParseLevel(appConfig.Log.Level))

	// Create oracle backend
	oracleClient := oracle.NewClient(executor.NewClient(), appConfig.Oracle, repoRoot)

	return &Container{
		Git:           gitClient,
		Summarizer:    oracleClient,
		Oracle:        oracleClient,
		Tasks:         taskstore.New(repoRoot, appConfig.Task.ClaudeMD),
		Publisher:     status,
		StatusReader:  status,
		Clock:         domain.RealClock{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(repoRoot),
		PipelineLog:   pipelineLog,
		Logger:        logger,
		AppConfig:     appConfig,
		Config:        cfg,
		closers:       []io.Closer{pipelineLog},
	}, nil
}

// Deps holds the ports for NewWithDeps.
type Deps struct {
	Git           domain.Git
	Summarizer    domain.Summarizer
	Oracle        domain.ClassificationOracle
	Tasks         domain.TaskStore
	Publisher     domain.StatusPublisher
	StatusReader  domain.StatusReader
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	PipelineLog   domain.Logger
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, deps Deps, logger *slog.Logger) *Container {
	return &Container{
		Git:           deps.Git,
		Summarizer:    deps.Summarizer,
		Oracle:        deps.Oracle,
		Tasks:         deps.Tasks,
		Publisher:     deps.Publisher,
		StatusReader:  deps.StatusReader,
		Clock:         deps.Clock,
		ConfigLoader:  deps.ConfigLoader,
		ConfigManager: deps.ConfigManager,
		PipelineLog:   deps.PipelineLog,
		Logger:        logger,
		AppConfig:     appConfig,
		Config:        cfg,
	}
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// UseCase factory methods

// StopReviewUseCase returns a new StopReview use case.
func (c *Container) StopReviewUseCase() *usecase.StopReview {
	return usecase.NewStopReview(c.Git, c.Summarizer, c.Oracle, c.Tasks, c.Publisher, c.Clock, c.PipelineLog, c.AppConfig)
}

// ShowStatusUseCase returns a new ShowStatus use case.
func (c *Container) ShowStatusUseCase() *usecase.ShowStatus {
	return usecase.NewShowStatus(c.StatusReader, c.Git, c.Clock)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Config.StateDir)
}

// ShowDiffUseCase returns a new ShowDiff use case.
func (c *Container) ShowDiffUseCase() *usecase.ShowDiff {
	return usecase.NewShowDiff(c.Git, c.AppConfig)
}
