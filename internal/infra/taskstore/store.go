// Package taskstore reads the active task from the repository's CLAUDE.md.
//
// The active task is named by an import line in CLAUDE.md:
//
//	@.claude/tasks/TASK_012.md
//
// The task file may start with YAML frontmatter carrying id, title and status.
package taskstore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cahaseler/cc-track/internal/domain"
)

// taskImportPattern matches an import of a task file on its own line.
var taskImportPattern = regexp.MustCompile(`^@(\.claude/(?:tasks/)?[^\s]+\.md)\s*$`)

// statusCompleted marks a task that no longer constrains the work.
const statusCompleted = "completed"

// frontmatter is the optional YAML header of a task file.
type frontmatter struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Status string `yaml:"status"`
}

// Store implements domain.TaskStore.
type Store struct {
	repoRoot string
	claudeMD string // Path of CLAUDE.md relative to repoRoot, or absolute
}

// Ensure Store implements domain.TaskStore.
var _ domain.TaskStore = (*Store)(nil)

// New creates a Store for the repository at repoRoot.
func New(repoRoot, claudeMD string) *Store {
	if claudeMD == "" {
		claudeMD = domain.DefaultClaudeMDPath
	}
	return &Store{repoRoot: repoRoot, claudeMD: claudeMD}
}

// ActiveTask returns the imported task, or nil when CLAUDE.md is missing,
// imports no task, imports the no-active-task placeholder, or the task is completed.
func (s *Store) ActiveTask() (*domain.TaskContext, error) {
	data, err := os.ReadFile(domain.ResolvePath(s.repoRoot, s.claudeMD))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.claudeMD, err)
	}

	rel := findTaskImport(data)
	if rel == "" || filepath.Base(rel) == domain.NoActiveTaskFile {
		return nil, nil
	}

	content, err := os.ReadFile(filepath.Join(s.repoRoot, filepath.FromSlash(rel)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read task file %s: %w", rel, err)
	}

	return parseTask(strings.TrimSuffix(filepath.Base(rel), ".md"), content)
}

// findTaskImport returns the first task import path in CLAUDE.md content.
func findTaskImport(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if m := taskImportPattern.FindStringSubmatch(strings.TrimSpace(scanner.Text())); m != nil {
			return m[1]
		}
	}
	return ""
}

// parseTask builds a TaskContext from a task file. Frontmatter fields
// override the ID derived from the file name; the first heading is the
// title when frontmatter has none.
func parseTask(id string, content []byte) (*domain.TaskContext, error) {
	var fm frontmatter
	body := string(content)

	if rest, ok := strings.CutPrefix(body, "---\n"); ok {
		header, after, found := strings.Cut(rest, "\n---")
		if found {
			if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
				return nil, fmt.Errorf("parse task %s frontmatter: %w", id, err)
			}
			body = strings.TrimPrefix(strings.TrimLeft(after, "-"), "\n")
		}
	}

	if strings.EqualFold(strings.TrimSpace(fm.Status), statusCompleted) {
		return nil, nil
	}

	task := &domain.TaskContext{
		ID:           id,
		Title:        strings.TrimSpace(fm.Title),
		Requirements: strings.TrimSpace(body),
	}
	if fm.ID != "" {
		task.ID = fm.ID
	}
	if task.Title == "" {
		task.Title = firstHeading(body)
	}
	return task, nil
}

func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if title, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return ""
}
