package domain

import "path/filepath"

// File and directory names.
const (
	ConfigFileName       = "cc-track.toml"     // Repository config, under .claude/
	GlobalConfigFileName = "config.toml"       // Global config, under $XDG_CONFIG_HOME/cc-track/
	StatusFileName       = "status.json"       // Status artifact, under the state directory
	DefaultClaudeMDPath  = "CLAUDE.md"
	NoActiveTaskFile     = "no_active_task.md"
	claudeDirName        = ".claude"
	stateDirName         = "cc-track"
)

// OracleEnvVar is set in the environment of oracle subprocesses. Hooks that
// see it do nothing, which keeps an oracle session from re-entering the pipeline.
const OracleEnvVar = "CC_TRACK_ORACLE"

// ClaudeDir returns the .claude directory of a repository.
func ClaudeDir(repoRoot string) string {
	return filepath.Join(repoRoot, claudeDirName)
}

// RepoConfigPath returns the repository config file path.
func RepoConfigPath(repoRoot string) string {
	return filepath.Join(ClaudeDir(repoRoot), ConfigFileName)
}

// GlobalConfigDir returns the global config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, stateDirName)
}

// StateDir returns the directory holding logs, the status artifact and other
// runtime state. It lives inside the git directory, outside the working tree.
func StateDir(gitDir string) string {
	return filepath.Join(gitDir, stateDirName)
}

// StatusPath returns where the status artifact is published: the configured
// path resolved against repoRoot, or the state directory when none is set.
func StatusPath(repoRoot, stateDir, configured string) string {
	if configured == "" {
		return filepath.Join(stateDir, StatusFileName)
	}
	return ResolvePath(repoRoot, configured)
}

// GlobalLogPath returns the path to the log file.
func GlobalLogPath(stateDir string) string {
	return filepath.Join(stateDir, "logs", "cc-track.log")
}

// ResolvePath joins p to repoRoot unless p is already absolute.
func ResolvePath(repoRoot, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(repoRoot, p)
}
