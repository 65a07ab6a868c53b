package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cahaseler/cc-track/internal/domain"
	"github.com/cahaseler/cc-track/internal/testutil"
)

func testConfig() domain.OracleConfig {
	return domain.OracleConfig{
		Command:        "claude",
		SummarizeModel: "haiku",
		ClassifyModel:  "sonnet",
	}
}

func TestClient_Summarize(t *testing.T) {
	exec := &testutil.MockExecutor{Stdout: `{"type":"result","subtype":"success","is_error":false,"result":"Adds a parser."}`}
	client := NewClient(exec, testConfig(), "/repo")

	got, err := client.Summarize(context.Background(), "summarize this")
	require.NoError(t, err)

	assert.Equal(t, "Adds a parser.", got)
	assert.Equal(t, "claude", exec.LastCommand().Program)
	assert.Equal(t, "/repo", exec.LastCommand().Dir)
	assert.Equal(t, "summarize this", exec.LastCommand().Input)
	assert.Equal(t, []string{"--print", "--output-format", "json", "--model", "haiku", "--max-turns", "1"}, exec.LastCommand().Args)
	assert.Contains(t, exec.LastCommand().Env, "CC_TRACK_ORACLE=1")
}

func TestClient_Classify_UsesClassifyModel(t *testing.T) {
	exec := &testutil.MockExecutor{Stdout: `{"type":"result","result":"{\"status\":\"on_track\"}"}`}
	cfg := testConfig()
	cfg.Args = []string{"--permission-mode", "plan"}
	client := NewClient(exec, cfg, "")

	got, err := client.Classify(context.Background(), "classify", 3)
	require.NoError(t, err)

	assert.Equal(t, `{"status":"on_track"}`, got)
	assert.Equal(t, []string{
		"--print", "--output-format", "json", "--model", "sonnet", "--max-turns", "3",
		"--permission-mode", "plan",
	}, exec.LastCommand().Args)
}

func TestClient_PlainTextOutput(t *testing.T) {
	exec := &testutil.MockExecutor{Stdout: "just text\n"}
	client := NewClient(exec, testConfig(), "")

	got, err := client.Summarize(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "just text", got)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		exec    *testutil.MockExecutor
		wantErr error
	}{
		{"empty stdout", &testutil.MockExecutor{Stdout: "  \n"}, domain.ErrEmptyResponse},
		{"empty result", &testutil.MockExecutor{Stdout: `{"type":"result","result":""}`}, domain.ErrEmptyResponse},
		{"is_error", &testutil.MockExecutor{Stdout: `{"type":"result","subtype":"error_max_turns","is_error":true,"result":"x"}`}, domain.ErrOracleFailed},
		{"process failure", &testutil.MockExecutor{Err: errors.New("exit status 1"), Stderr: "not logged in"}, domain.ErrOracleFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.exec, testConfig(), "")
			_, err := client.Summarize(context.Background(), "p")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_ContextTimeout(t *testing.T) {
	exec := &testutil.MockExecutor{BlockUntilDone: true}
	client := NewClient(exec, testConfig(), "")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Classify(ctx, "p", 1)
	assert.ErrorIs(t, err, domain.ErrOracleFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
