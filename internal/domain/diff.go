package domain

import (
	"path"
	"strings"
)

// diffHeaderPrefix starts every per-file section of a git unified diff.
const diffHeaderPrefix = "diff --git "

// DefaultExcludePatterns lists documentation, log and generated paths that are
// committed but never sent to the oracles.
var DefaultExcludePatterns = []string{
	"*.md",
	"*.mdx",
	"*.log",
	".private-journal/",
	".claude/",
	"*.embedding",
	"*.embeddings.json",
}

// FileDiff is the diff section of a single file.
type FileDiff struct {
	Path string // Path from the b/ side of the header; empty for unparseable input
	Text string // Section text including the header line and trailing newline
}

// PathFilter decides which paths are noise for the review oracles.
//
// Pattern forms:
//   - "dir/"       matches any path inside a directory named dir
//   - "a/*.go"     (contains a slash) matches the full slash-separated path
//   - "*.md"       matches the base name
type PathFilter struct {
	patterns []string
}

// NewPathFilter creates a filter from patterns. Empty patterns are ignored.
func NewPathFilter(patterns []string) *PathFilter {
	cleaned := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return &PathFilter{patterns: cleaned}
}

// Matches reports whether p should be excluded from review.
func (f *PathFilter) Matches(p string) bool {
	p = strings.TrimPrefix(path.Clean(strings.ReplaceAll(p, "\\", "/")), "./")
	for _, pattern := range f.patterns {
		if matchPattern(pattern, p) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, p string) bool {
	if dir, ok := strings.CutSuffix(pattern, "/"); ok {
		return p == dir || strings.HasPrefix(p, dir+"/") || strings.Contains(p, "/"+dir+"/")
	}
	if strings.Contains(pattern, "/") {
		matched, _ := path.Match(pattern, p)
		return matched
	}
	matched, _ := path.Match(pattern, path.Base(p))
	return matched
}

// ParseFileDiffs splits a unified diff into per-file sections using the
// "diff --git" header as delimiter. Concatenating the Text of the returned
// sections reproduces diff exactly. Text before the first header is kept
// with the first section. A non-empty diff without any header is returned as
// a single section with an empty Path.
func ParseFileDiffs(diff string) []FileDiff {
	if diff == "" {
		return nil
	}

	var sections []FileDiff
	var current strings.Builder
	var currentPath string
	var preamble strings.Builder
	seenHeader := false

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, diffHeaderPrefix) {
			if seenHeader {
				sections = append(sections, FileDiff{Path: currentPath, Text: current.String()})
				current.Reset()
			} else {
				current.WriteString(preamble.String())
			}
			seenHeader = true
			currentPath = headerPath(strings.TrimRight(line, "\r\n"))
			current.WriteString(line)
			continue
		}
		if seenHeader {
			current.WriteString(line)
		} else {
			preamble.WriteString(line)
		}
	}

	if !seenHeader {
		return []FileDiff{{Text: diff}}
	}
	return append(sections, FileDiff{Path: currentPath, Text: current.String()})
}

// headerPath extracts the destination path from a "diff --git a/x b/x" line.
// Quoted paths (used by git for names with special characters) are unquoted.
func headerPath(line string) string {
	rest := strings.TrimPrefix(line, diffHeaderPrefix)
	if idx := strings.LastIndex(rest, ` "b/`); idx >= 0 {
		return strings.TrimSuffix(rest[idx+len(` "b/`):], `"`)
	}
	if idx := strings.LastIndex(rest, " b/"); idx >= 0 {
		return rest[idx+len(" b/"):]
	}
	return rest
}

// DiffPaths returns the file paths of a diff in order of appearance.
func DiffPaths(diff string) []string {
	sections := ParseFileDiffs(diff)
	paths := make([]string, 0, len(sections))
	for _, s := range sections {
		if s.Path != "" {
			paths = append(paths, s.Path)
		}
	}
	return paths
}

// FilterDiff removes the sections of files matched by filter.
// A diff without recognizable headers is returned unchanged.
func FilterDiff(diff string, filter *PathFilter) string {
	sections := ParseFileDiffs(diff)
	if len(sections) == 1 && sections[0].Path == "" {
		return diff
	}
	var b strings.Builder
	for _, s := range sections {
		if filter.Matches(s.Path) {
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
