package taskstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestStore_ActiveTask(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "CLAUDE.md", "# Project\n\n## Active Task\n@.claude/tasks/TASK_012.md\n")
	writeFile(t, root, ".claude/tasks/TASK_012.md", "# Add diff compression\n\n## Requirements\n- chunk large diffs\n")

	task, err := New(root, "").ActiveTask()
	require.NoError(t, err)
	require.NotNil(t, task)

	assert.Equal(t, "TASK_012", task.ID)
	assert.Equal(t, "Add diff compression", task.Title)
	assert.Contains(t, task.Requirements, "- chunk large diffs")
	assert.True(t, task.HasRequirements())
}

func TestStore_ActiveTask_Frontmatter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "CLAUDE.md", "@.claude/tasks/TASK_3.md\n")
	writeFile(t, root, ".claude/tasks/TASK_3.md", "---\nid: \"3\"\ntitle: Review hook\nstatus: in_progress\n---\nBuild the stop hook.\n")

	task, err := New(root, "").ActiveTask()
	require.NoError(t, err)
	require.NotNil(t, task)

	assert.Equal(t, "3", task.ID)
	assert.Equal(t, "Review hook", task.Title)
	assert.Equal(t, "Build the stop hook.", task.Requirements)
}

func TestStore_ActiveTask_None(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"no CLAUDE.md", nil},
		{"no import", map[string]string{"CLAUDE.md": "# Project\n"}},
		{"placeholder import", map[string]string{
			"CLAUDE.md":                 "@.claude/no_active_task.md\n",
			".claude/no_active_task.md": "No active task.\n",
		}},
		{"missing task file", map[string]string{"CLAUDE.md": "@.claude/tasks/TASK_9.md\n"}},
		{"completed task", map[string]string{
			"CLAUDE.md":               "@.claude/tasks/TASK_1.md\n",
			".claude/tasks/TASK_1.md": "---\nstatus: completed\n---\nDone.\n",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for rel, content := range tt.files {
				writeFile(t, root, rel, content)
			}

			task, err := New(root, "").ActiveTask()
			require.NoError(t, err)
			assert.Nil(t, task)
		})
	}
}

func TestStore_ActiveTask_BadFrontmatter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "CLAUDE.md", "@.claude/tasks/TASK_2.md\n")
	writeFile(t, root, ".claude/tasks/TASK_2.md", "---\ntitle: [unclosed\n---\nbody\n")

	_, err := New(root, "").ActiveTask()
	assert.Error(t, err)
}

func TestStore_CustomClaudeMD(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docs/AGENTS.md", "@.claude/tasks/TASK_7.md\n")
	writeFile(t, root, ".claude/tasks/TASK_7.md", "Requirements here.\n")

	task, err := New(root, "docs/AGENTS.md").ActiveTask()
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "TASK_7", task.ID)
}
