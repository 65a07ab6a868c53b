package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateCommitMessage(t *testing.T) {
	tests := []struct {
		name    string
		changes Changes
		want    string
	}{
		{"doc only", Changes{HasChanges: true, HasDocChanges: true}, CommitMessageDocOnly},
		{"code only", Changes{HasChanges: true, HasCodeChanges: true}, CommitMessageCodeOnly},
		{"mixed", Changes{HasChanges: true, HasCodeChanges: true, HasDocChanges: true}, CommitMessageMixed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TemplateCommitMessage(&tt.changes))
		})
	}
}

func TestCleanCommitMessage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "feat: add parser", "feat: add parser"},
		{"quoted", `"fix: handle nil task"`, "fix: handle nil task"},
		{"fenced with language", "```text\nfeat: add parser\n```", "feat: add parser"},
		{"body kept", "feat: add parser\n\n\nParses diffs.\n", "feat: add parser\n\nParses diffs."},
		{"blank", "  ``  ", ""},
		{"long subject", strings.Repeat("x", 100), strings.Repeat("x", 69) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCommitMessage(tt.in))
		})
	}
}

func TestApplyMessagePrefix(t *testing.T) {
	assert.Equal(t, "[wip] feat: x", ApplyMessagePrefix("feat: x", "[wip] "))
	assert.Equal(t, "[wip] feat: x", ApplyMessagePrefix("[wip] feat: x", "[wip] "))
	assert.Equal(t, "[wip]feat: x", ApplyMessagePrefix("[wip]feat: x", "[wip] "))
	assert.Equal(t, "feat: x", ApplyMessagePrefix("feat: x", ""))
}

func TestChanges_IsDocOnly(t *testing.T) {
	assert.True(t, (&Changes{HasChanges: true, HasDocChanges: true}).IsDocOnly())
	assert.False(t, (&Changes{HasChanges: true, HasCodeChanges: true, FilteredDiff: "diff"}).IsDocOnly())
	assert.False(t, (&Changes{}).IsDocOnly())
}
