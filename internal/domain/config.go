package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Default configuration values.
const (
	DefaultBudgetSeconds          = 180
	DefaultThresholdBytes         = 8 * 1024
	DefaultMaxChunkBytes          = 100 * 1024
	DefaultConcurrency            = 5
	DefaultChunkTimeoutSeconds    = 30
	DefaultFailedChunkPrefixBytes = 2000
	DefaultMaxRawBytes            = 200000
	DefaultClassifyTimeoutSeconds = 60
	DefaultClassifyMaxTurns       = 1
	DefaultMessageTimeoutSeconds  = 30
	DefaultMessagePrefix          = "[wip] "
	DefaultOracleCommand          = "claude"
	DefaultSummarizeModel         = "haiku"
	DefaultClassifyModel          = "sonnet"
	DefaultLogLevel               = "info"
)

// DefaultExcludedStatusMessages are status messages never published.
var DefaultExcludedStatusMessages = []string{MessageNoChanges}

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings       []string             `toml:"-"`
	Review         ReviewConfig         `toml:"review"`
	Filter         FilterConfig         `toml:"filter"`
	Compression    CompressionConfig    `toml:"compression"`
	Classification ClassificationConfig `toml:"classification"`
	Commit         CommitConfig         `toml:"commit"`
	Oracle         OracleConfig         `toml:"oracle"`
	Status         StatusConfig         `toml:"status"`
	Task           TaskConfig           `toml:"task"`
	Log            LogConfig            `toml:"log"`
}

// ReviewConfig holds pipeline-wide settings from the [review] section.
type ReviewConfig struct {
	BudgetSeconds   int  `toml:"budget_seconds"`    // Total wall-clock budget for one run
	Enabled         bool `toml:"enabled"`           // Run the stop-review hook at all
	BlockOnCritical bool `toml:"block_on_critical"` // Return a block decision on critical_failure
}

// Budget returns the pipeline budget as a duration.
func (c ReviewConfig) Budget() time.Duration {
	return time.Duration(c.BudgetSeconds) * time.Second
}

// FilterConfig holds noise-filter patterns from the [filter] section.
type FilterConfig struct {
	Exclude []string `toml:"exclude"`
}

// CompressionConfig holds compression stage settings from the [compression] section.
type CompressionConfig struct {
	ThresholdBytes         int  `toml:"threshold_bytes"`           // Diffs below this skip compression
	MaxChunkBytes          int  `toml:"max_chunk_bytes"`           // Upper bound of a regular chunk
	Concurrency            int  `toml:"concurrency"`               // Max in-flight summarize calls
	ChunkTimeoutSeconds    int  `toml:"chunk_timeout_seconds"`     // Per-call timeout
	FailedChunkPrefixBytes int  `toml:"failed_chunk_prefix_bytes"` // Raw prefix kept for a failed chunk
	MaxRawBytes            int  `toml:"max_raw_bytes"`             // Raw fallback size when every chunk fails
	Enabled                bool `toml:"enabled"`
}

// ChunkTimeout returns the per-chunk timeout as a duration.
func (c CompressionConfig) ChunkTimeout() time.Duration {
	return time.Duration(c.ChunkTimeoutSeconds) * time.Second
}

// ClassificationConfig holds classification settings from the [classification] section.
type ClassificationConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
	MaxTurns       int `toml:"max_turns"`
}

// Timeout returns the classification timeout as a duration.
func (c ClassificationConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CommitConfig holds auto-commit settings from the [commit] section.
type CommitConfig struct {
	MessagePrefix         string `toml:"message_prefix"`
	MessageTimeoutSeconds int    `toml:"message_timeout_seconds"`
	Enabled               bool   `toml:"enabled"`
	Push                  bool   `toml:"push"`
	GenerateMessage       bool   `toml:"generate_message"`    // Ask the oracle for a message when the verdict has none
	SkipDefaultBranch     bool   `toml:"skip_default_branch"` // Never auto-commit on the default branch
}

// MessageTimeout returns the message-generation timeout as a duration.
func (c CommitConfig) MessageTimeout() time.Duration {
	return time.Duration(c.MessageTimeoutSeconds) * time.Second
}

// OracleConfig holds oracle backend settings from the [oracle] section.
type OracleConfig struct {
	Command        string   `toml:"command"`
	SummarizeModel string   `toml:"summarize_model"`
	ClassifyModel  string   `toml:"classify_model"`
	Args           []string `toml:"args"`
}

// StatusConfig holds status artifact settings from the [status] section.
type StatusConfig struct {
	Path             string   `toml:"path"` // Relative to the repository root unless absolute; empty means the state directory
	ExcludedMessages []string `toml:"excluded_messages"`
}

// TaskConfig holds active-task lookup settings from the [task] section.
type TaskConfig struct {
	ClaudeMD string `toml:"claude_md"` // File holding the @-import of the active task
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level"` // Log level: debug, info, warn, error
}

// NewDefaultConfig returns the built-in configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Review: ReviewConfig{
			Enabled:         true,
			BudgetSeconds:   DefaultBudgetSeconds,
			BlockOnCritical: true,
		},
		Filter: FilterConfig{
			Exclude: append([]string(nil), DefaultExcludePatterns...),
		},
		Compression: CompressionConfig{
			Enabled:                true,
			ThresholdBytes:         DefaultThresholdBytes,
			MaxChunkBytes:          DefaultMaxChunkBytes,
			Concurrency:            DefaultConcurrency,
			ChunkTimeoutSeconds:    DefaultChunkTimeoutSeconds,
			FailedChunkPrefixBytes: DefaultFailedChunkPrefixBytes,
			MaxRawBytes:            DefaultMaxRawBytes,
		},
		Classification: ClassificationConfig{
			TimeoutSeconds: DefaultClassifyTimeoutSeconds,
			MaxTurns:       DefaultClassifyMaxTurns,
		},
		Commit: CommitConfig{
			Enabled:               true,
			MessagePrefix:         DefaultMessagePrefix,
			MessageTimeoutSeconds: DefaultMessageTimeoutSeconds,
		},
		Oracle: OracleConfig{
			Command:        DefaultOracleCommand,
			SummarizeModel: DefaultSummarizeModel,
			ClassifyModel:  DefaultClassifyModel,
		},
		Status: StatusConfig{
			ExcludedMessages: append([]string(nil), DefaultExcludedStatusMessages...),
		},
		Task: TaskConfig{
			ClaudeMD: DefaultClaudeMDPath,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Validate checks that sizes, limits and timeouts are usable.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"review.budget_seconds", c.Review.BudgetSeconds},
		{"compression.threshold_bytes", c.Compression.ThresholdBytes},
		{"compression.max_chunk_bytes", c.Compression.MaxChunkBytes},
		{"compression.concurrency", c.Compression.Concurrency},
		{"compression.chunk_timeout_seconds", c.Compression.ChunkTimeoutSeconds},
		{"compression.max_raw_bytes", c.Compression.MaxRawBytes},
		{"classification.timeout_seconds", c.Classification.TimeoutSeconds},
		{"classification.max_turns", c.Classification.MaxTurns},
		{"commit.message_timeout_seconds", c.Commit.MessageTimeoutSeconds},
	}
	for _, chk := range checks {
		if chk.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d: %w", chk.name, chk.value, ErrInvalidConfig)
		}
	}
	if c.Compression.FailedChunkPrefixBytes < 0 {
		return fmt.Errorf("compression.failed_chunk_prefix_bytes must not be negative: %w", ErrInvalidConfig)
	}
	if c.Oracle.Command == "" {
		return fmt.Errorf("oracle.command must not be empty: %w", ErrInvalidConfig)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error: %w", c.Log.Level, ErrInvalidConfig)
	}
	return nil
}

// RenderConfigTemplate renders the commented config file with the values of cfg.
func RenderConfigTemplate(cfg *Config) string {
	funcs := template.FuncMap{
		"quote": strconv.Quote,
		"list": func(items []string) string {
			quoted := make([]string, len(items))
			for i, item := range items {
				quoted[i] = strconv.Quote(item)
			}
			return "[" + strings.Join(quoted, ", ") + "]"
		},
	}
	tmpl, err := template.New("config").Delims("<<", ">>").Funcs(funcs).Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		// Should never happen with valid data
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
