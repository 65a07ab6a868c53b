package domain

import (
	"fmt"
	"strings"
)

// SummarizePrompt is the instruction sent with every diff chunk.
const SummarizePrompt = `Summarize the following git diff chunk for a code reviewer.
For every file, state what changed: functions, types and behavior added, removed or modified.
Keep identifiers exact. Mention deleted tests, disabled checks and TODO/FIXME markers explicitly.
Do not speculate about intent. Reply with plain text only, no preamble.`

// ClassifySystemPrompt frames the classification request.
const ClassifySystemPrompt = `You review work-in-progress changes made by an AI coding assistant
against the task it was given. Decide whether the changes stay on track.

Reply with a single JSON object and nothing else:
{"status": "<on_track|deviation|needs_verification|critical_failure>",
 "message": "<one or two sentences for the developer>",
 "commit_message": "<conventional commit subject describing the changes>"}

Status meanings:
- on_track: the changes plausibly serve the task requirements.
- deviation: the changes work on something the task does not ask for.
- needs_verification: you cannot tell from the diff.
- critical_failure: the diff shows broken state, e.g. tests deleted or disabled to pass,
  failing-test admissions, secrets committed, or destructive operations.`

// CommitMessagePrompt asks for a commit message only.
const CommitMessagePrompt = `Write a conventional commit message (subject line under 72 characters,
optional short body) for the following changes. Reply with the message only.`

// ClassifyPromptInput holds the data for a classification prompt.
// Fields are ordered to minimize memory padding.
type ClassifyPromptInput struct {
	Task       *TaskContext
	Diff       string
	Branch     string
	Compressed bool // Diff is a summary produced by the compression stage
	Truncated  bool // Diff is a truncated raw diff
}

// BuildSummarizePrompt returns the prompt for summarizing one chunk.
func BuildSummarizePrompt(chunk DiffChunk, text string) string {
	var b strings.Builder
	b.WriteString(SummarizePrompt)
	fmt.Fprintf(&b, "\n\nFiles: %s\n", strings.Join(chunk.Files, ", "))
	if chunk.Oversized {
		b.WriteString("Note: this file's diff was truncated to fit.\n")
	}
	b.WriteString("\n<diff>\n")
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("</diff>\n")
	return b.String()
}

// BuildClassifyPrompt returns the prompt for classifying a change set.
func BuildClassifyPrompt(in ClassifyPromptInput) string {
	var b strings.Builder
	b.WriteString(ClassifySystemPrompt)
	b.WriteString("\n\n")
	if in.Task != nil {
		fmt.Fprintf(&b, "## Task %s", in.Task.ID)
		if in.Task.Title != "" {
			fmt.Fprintf(&b, ": %s", in.Task.Title)
		}
		b.WriteString("\n\n")
		b.WriteString(strings.TrimSpace(in.Task.Requirements))
		b.WriteString("\n\n")
	}
	if in.Branch != "" {
		fmt.Fprintf(&b, "Branch: %s\n\n", in.Branch)
	}
	switch {
	case in.Compressed:
		b.WriteString("## Changes (summarized per chunk; the raw diff was too large)\n\n")
	case in.Truncated:
		b.WriteString("## Changes (raw diff, truncated)\n\n")
	default:
		b.WriteString("## Changes\n\n")
	}
	b.WriteString("<diff>\n")
	b.WriteString(in.Diff)
	if !strings.HasSuffix(in.Diff, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("</diff>\n")
	return b.String()
}

// BuildCommitMessagePrompt returns the prompt for generating a commit message.
func BuildCommitMessagePrompt(task *TaskContext, diff string) string {
	var b strings.Builder
	b.WriteString(CommitMessagePrompt)
	b.WriteString("\n\n")
	if task != nil && task.Title != "" {
		fmt.Fprintf(&b, "Task: %s\n\n", task.Title)
	}
	b.WriteString("<diff>\n")
	b.WriteString(diff)
	if !strings.HasSuffix(diff, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("</diff>\n")
	return b.String()
}
