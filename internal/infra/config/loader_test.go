package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cahaseler/cc-track/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRepoConfig(t *testing.T, repoRoot, content string) {
	t.Helper()
	path := domain.RepoConfigPath(repoRoot)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeGlobalConfig(t *testing.T, globalDir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, domain.GlobalConfigFileName), []byte(content), 0o644))
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_RepoConfigOnly(t *testing.T) {
	repoRoot := t.TempDir()
	writeRepoConfig(t, repoRoot, `
[compression]
concurrency = 2

[commit]
push = true
message_prefix = ""

[log]
level = "debug"
`)

	cfg, err := NewLoaderWithGlobalDir(repoRoot, t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Compression.Concurrency)
	assert.Equal(t, domain.DefaultMaxChunkBytes, cfg.Compression.MaxChunkBytes)
	assert.True(t, cfg.Commit.Push)
	assert.Empty(t, cfg.Commit.MessagePrefix)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_RepoOverridesGlobal(t *testing.T) {
	repoRoot := t.TempDir()
	globalDir := t.TempDir()
	writeGlobalConfig(t, globalDir, `
[oracle]
summarize_model = "global-fast"
classify_model = "global-smart"

[filter]
exclude = ["*.md", "vendor/"]
`)
	writeRepoConfig(t, repoRoot, `
[oracle]
classify_model = "repo-smart"
`)

	cfg, err := NewLoaderWithGlobalDir(repoRoot, globalDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "global-fast", cfg.Oracle.SummarizeModel)
	assert.Equal(t, "repo-smart", cfg.Oracle.ClassifyModel)
	assert.Equal(t, []string{"*.md", "vendor/"}, cfg.Filter.Exclude)
}

func TestLoader_Load_UnknownKeysWarn(t *testing.T) {
	repoRoot := t.TempDir()
	writeRepoConfig(t, repoRoot, `
[compression]
concurrency = 3
speed = "fast"
`)

	cfg, err := NewLoaderWithGlobalDir(repoRoot, t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Compression.Concurrency)
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], "compression.speed")
}

func TestLoader_Load_InvalidValue(t *testing.T) {
	repoRoot := t.TempDir()
	writeRepoConfig(t, repoRoot, `
[compression]
concurrency = 0
`)

	_, err := NewLoaderWithGlobalDir(repoRoot, t.TempDir()).Load()
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoader_Load_SyntaxError(t *testing.T) {
	repoRoot := t.TempDir()
	writeRepoConfig(t, repoRoot, "[compression\nconcurrency = ")

	_, err := NewLoaderWithGlobalDir(repoRoot, t.TempDir()).Load()
	assert.Error(t, err)
}

func TestLoader_LoadRepo_NotExist(t *testing.T) {
	_, err := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir()).LoadRepo()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_LoadGlobal_OnlyFileValues(t *testing.T) {
	globalDir := t.TempDir()
	writeGlobalConfig(t, globalDir, "[review]\nbudget_seconds = 90\n")

	cfg, err := NewLoaderWithGlobalDir(t.TempDir(), globalDir).LoadGlobal()
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.Review.BudgetSeconds)
	assert.Zero(t, cfg.Compression.Concurrency)
}

func TestLoader_TemplateRoundTrip(t *testing.T) {
	repoRoot := t.TempDir()
	writeRepoConfig(t, repoRoot, domain.RenderConfigTemplate(domain.NewDefaultConfig()))

	cfg, err := NewLoaderWithGlobalDir(repoRoot, t.TempDir()).Load()
	require.NoError(t, err)

	want := domain.NewDefaultConfig()
	want.Oracle.Args = []string{}
	assert.Equal(t, want, cfg)
}
