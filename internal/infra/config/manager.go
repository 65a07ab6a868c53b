package config

import (
	"os"
	"path/filepath"

	"github.com/cahaseler/cc-track/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	repoRoot      string // Path to repository root
	globalConfDir string // Path to global config directory (e.g., ~/.config/cc-track)
}

// NewManager creates a new Manager.
func NewManager(repoRoot string) *Manager {
	return &Manager{
		repoRoot:      repoRoot,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(repoRoot, globalConfDir string) *Manager {
	return &Manager{
		repoRoot:      repoRoot,
		globalConfDir: globalConfDir,
	}
}

// RepoConfigInfo returns information about the repository config file.
func (m *Manager) RepoConfigInfo() domain.ConfigInfo {
	return readConfigInfo(domain.RepoConfigPath(m.repoRoot))
}

// GlobalConfigInfo returns information about the global config file.
func (m *Manager) GlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return readConfigInfo(filepath.Join(m.globalConfDir, domain.GlobalConfigFileName))
}

// readConfigInfo reads a config file and returns its info.
func readConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{Path: path}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitRepoConfig writes the default config template to .claude/cc-track.toml.
// Returns domain.ErrConfigExists if the file exists and force is false.
func (m *Manager) InitRepoConfig(force bool) error {
	path := domain.RepoConfigPath(m.repoRoot)
	if _, err := os.Stat(path); err == nil && !force {
		return domain.ErrConfigExists
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	content := domain.RenderConfigTemplate(domain.NewDefaultConfig())
	return os.WriteFile(path, []byte(content), 0o644)
}
