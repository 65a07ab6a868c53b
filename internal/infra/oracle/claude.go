// Package oracle runs the summarization and classification oracles through
// the claude CLI in non-interactive print mode.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cahaseler/cc-track/internal/domain"
)

// maxStderrInError bounds the stderr excerpt included in errors.
const maxStderrInError = 500

// cliOutput is the JSON written by `claude --print --output-format json`.
type cliOutput struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
	Result  string `json:"result"`
	IsError bool   `json:"is_error"`
}

// Client implements domain.Summarizer and domain.ClassificationOracle.
// Fields are ordered to minimize memory padding.
type Client struct {
	executor       domain.CommandExecutor
	command        string
	summarizeModel string
	classifyModel  string
	dir            string
	extraArgs      []string
}

// NewClient creates an oracle client from the [oracle] config section.
// dir is the working directory of the oracle process.
func NewClient(executor domain.CommandExecutor, cfg domain.OracleConfig, dir string) *Client {
	return &Client{
		executor:       executor,
		command:        cfg.Command,
		summarizeModel: cfg.SummarizeModel,
		classifyModel:  cfg.ClassifyModel,
		extraArgs:      cfg.Args,
		dir:            dir,
	}
}

// Ensure Client implements the oracle interfaces.
var (
	_ domain.Summarizer           = (*Client)(nil)
	_ domain.ClassificationOracle = (*Client)(nil)
)

// Summarize sends a chunk prompt to the fast summarization model.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	return c.run(ctx, c.summarizeModel, prompt, 1)
}

// Classify sends a classification or commit-message prompt to the judgment model.
func (c *Client) Classify(ctx context.Context, prompt string, maxTurns int) (string, error) {
	return c.run(ctx, c.classifyModel, prompt, maxTurns)
}

// Args returns the CLI arguments for one call.
func (c *Client) Args(model string, maxTurns int) []string {
	args := []string{"--print", "--output-format", "json"}
	if model != "" {
		args = append(args, "--model", model)
	}
	if maxTurns > 0 {
		args = append(args, "--max-turns", strconv.Itoa(maxTurns))
	}
	return append(args, c.extraArgs...)
}

func (c *Client) run(ctx context.Context, model, prompt string, maxTurns int) (string, error) {
	cmd := domain.NewCommand(c.command, c.Args(model, maxTurns), c.dir)
	cmd.Input = prompt
	cmd.Env = []string{domain.OracleEnvVar + "=1"}

	var stdout, stderr bytes.Buffer
	if err := c.executor.ExecuteWithContext(ctx, cmd, &stdout, &stderr); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %s: %w", domain.ErrOracleFailed, model, ctxErr)
		}
		return "", fmt.Errorf("%w: %s: %w: %s", domain.ErrOracleFailed, model, err, excerpt(stderr.String()))
	}

	return parseOutput(stdout.Bytes())
}

// parseOutput extracts the result text. Output that is not the CLI's JSON
// envelope is taken as plain text.
func parseOutput(raw []byte) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", domain.ErrEmptyResponse
	}

	var out cliOutput
	if trimmed[0] != '{' || json.Unmarshal(trimmed, &out) != nil || (out.Type == "" && out.Result == "") {
		return string(trimmed), nil
	}
	if out.IsError {
		return "", fmt.Errorf("%w: %s: %s", domain.ErrOracleFailed, out.Subtype, excerpt(out.Result))
	}
	if strings.TrimSpace(out.Result) == "" {
		return "", domain.ErrEmptyResponse
	}
	return out.Result, nil
}

func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderrInError {
		kept, _ := domain.TruncateText(s, maxStderrInError)
		return kept + "..."
	}
	return s
}
