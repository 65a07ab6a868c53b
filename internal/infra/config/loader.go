// Package config provides configuration loading functionality.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/cahaseler/cc-track/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	repoRoot      string // Repository root; the repo config lives under .claude/
	globalConfDir string // Path to global config directory (e.g., ~/.config/cc-track)
}

// NewLoader creates a new Loader.
func NewLoader(repoRoot string) *Loader {
	return &Loader{
		repoRoot:      repoRoot,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(repoRoot, globalConfDir string) *Loader {
	return &Loader{
		repoRoot:      repoRoot,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

func (l *Loader) globalPath() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.GlobalConfigFileName)
}

func (l *Loader) repoPath() string {
	return domain.RepoConfigPath(l.repoRoot)
}

// Load returns the merged configuration: default <- global <- repo.
// Keys absent from a file keep the lower layer's value; lists are replaced
// as a whole. Unknown keys become warnings. The result is validated.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	for _, path := range []string{l.globalPath(), l.repoPath()} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := decodeInto(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		for _, key := range unknownKeys(data) {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown key in %s: %s", path, key))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	path := l.globalPath()
	if path == "" {
		return nil, os.ErrNotExist
	}
	return loadFile(path)
}

// LoadRepo returns only the repository configuration.
func (l *Loader) LoadRepo() (*domain.Config, error) {
	return loadFile(l.repoPath())
}

// loadFile decodes a single file onto an empty Config.
func loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &domain.Config{}
	if err := decodeInto(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	for _, key := range unknownKeys(data) {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("unknown key: %s", key))
	}
	return cfg, nil
}

func decodeInto(data []byte, cfg *domain.Config) error {
	return toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
}

// unknownKeys returns the dotted keys of data that do not map to a Config field.
func unknownKeys(data []byte) []string {
	var probe domain.Config
	err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&probe)

	var strict *toml.StrictMissingError
	if !errors.As(err, &strict) {
		return nil
	}
	keys := make([]string, 0, len(strict.Errors))
	for _, e := range strict.Errors {
		keys = append(keys, strings.Join(e.Key(), "."))
	}
	sort.Strings(keys)
	return keys
}
