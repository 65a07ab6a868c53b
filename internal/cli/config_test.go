package cli

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cahaseler/cc-track/internal/app"
	"github.com/cahaseler/cc-track/internal/domain"
)

// newConfigTestContainer creates an app.Container over a real repository.
// Config commands are tested with the real config infrastructure.
func newConfigTestContainer(t *testing.T) (*app.Container, string) {
	t.Helper()

	repoRoot := t.TempDir()
	cmd := exec.Command("git", "init")
	cmd.Dir = repoRoot
	require.NoError(t, cmd.Run())

	// Isolate global config
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	container, err := app.New(repoRoot)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	return container, repoRoot
}

func executeConfig(t *testing.T, c *app.Container, args ...string) (string, error) {
	t.Helper()
	cmd := newConfigCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigCommand_ShowsEffectiveConfig(t *testing.T) {
	c, repoRoot := newConfigTestContainer(t)
	require.NoError(t, os.MkdirAll(filepath.Join(repoRoot, ".claude"), 0o755))
	require.NoError(t, os.WriteFile(domain.RepoConfigPath(repoRoot), []byte("[commit]\npush = true\n"), 0o644))

	for _, args := range [][]string{nil, {"show"}} {
		out, err := executeConfig(t, c, args...)
		require.NoError(t, err)

		assert.Contains(t, out, "[Loaded from]")
		assert.Contains(t, out, domain.RepoConfigPath(repoRoot))
		assert.Contains(t, out, "(not found)", "global config is absent")

		_, effective, ok := bytes.Cut([]byte(out), []byte("[Effective Config]\n"))
		require.True(t, ok)
		var cfg domain.Config
		require.NoError(t, toml.Unmarshal(effective, &cfg))
		assert.True(t, cfg.Commit.Push)
		assert.Equal(t, domain.DefaultConcurrency, cfg.Compression.Concurrency)
	}
}

func TestConfigCommand_ReportsBrokenRepoFile(t *testing.T) {
	c, repoRoot := newConfigTestContainer(t)
	require.NoError(t, os.MkdirAll(filepath.Join(repoRoot, ".claude"), 0o755))
	require.NoError(t, os.WriteFile(domain.RepoConfigPath(repoRoot), []byte("[commit\npush = true\n"), 0o644))

	out, err := executeConfig(t, c, "show")
	require.NoError(t, err)

	assert.Contains(t, out, domain.RepoConfigPath(repoRoot)+" (error: ")
	assert.Contains(t, out, "# unavailable until the errors above are fixed")
}

func TestConfigCommand_Template(t *testing.T) {
	for _, args := range [][]string{{"--template"}, {"template"}} {
		out, err := executeConfig(t, nil, args...)
		require.NoError(t, err)

		var cfg domain.Config
		require.NoError(t, toml.Unmarshal([]byte(out), &cfg))
		assert.Equal(t, domain.DefaultBudgetSeconds, cfg.Review.BudgetSeconds)
		assert.Contains(t, out, "#")
	}
}

func TestConfigInitCommand(t *testing.T) {
	c, repoRoot := newConfigTestContainer(t)
	path := domain.RepoConfigPath(repoRoot)

	out, err := executeConfig(t, c, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created config file: "+path)
	assert.FileExists(t, path)

	_, err = executeConfig(t, c, "init")
	assert.ErrorIs(t, err, domain.ErrConfigExists)

	_, err = executeConfig(t, c, "init", "--force")
	assert.NoError(t, err)
}
