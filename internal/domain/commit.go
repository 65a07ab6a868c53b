package domain

import "strings"

// Pipeline messages.
const (
	MessageNoChanges     = "no changes"
	MessageNoActiveTask  = "no active task; changes saved"
	MessageDocOnly       = "documentation-only changes; review skipped"
	MessagePushFailed    = "push failed; commit succeeded locally"
	MessageHookSkipped   = "review already ran for this stop"
	MessageReviewOff     = "stop review disabled"
	maxCommitSubjectRune = 72
)

// Commit message templates used when no oracle message is available.
const (
	CommitMessageDocOnly  = "docs: update progress notes"
	CommitMessageCodeOnly = "wip: save changes"
	CommitMessageMixed    = "wip: save code and documentation changes"
)

// TemplateCommitMessage picks the deterministic message for a change set.
func TemplateCommitMessage(c *Changes) string {
	switch {
	case c.HasDocChanges && !c.HasCodeChanges:
		return CommitMessageDocOnly
	case c.HasDocChanges && c.HasCodeChanges:
		return CommitMessageMixed
	default:
		return CommitMessageCodeOnly
	}
}

// CleanCommitMessage normalizes an oracle-suggested message: it strips code
// fences and wrapping quotes, drops blank leading lines and shortens an
// overlong subject line. Returns "" if nothing usable remains.
func CleanCommitMessage(msg string) string {
	msg = strings.TrimSpace(msg)
	if strings.HasPrefix(msg, "```") {
		// Drop the opening fence line along with any language tag.
		_, rest, _ := strings.Cut(msg, "\n")
		msg = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "```"))
	}
	for _, q := range []string{`"`, "'", "`"} {
		if len(msg) >= 2 && strings.HasPrefix(msg, q) && strings.HasSuffix(msg, q) {
			msg = strings.TrimSpace(msg[1 : len(msg)-1])
		}
	}
	if msg == "" {
		return ""
	}

	subject, body, hasBody := strings.Cut(msg, "\n")
	subject = strings.TrimSpace(subject)
	if runes := []rune(subject); len(runes) > maxCommitSubjectRune {
		subject = strings.TrimSpace(string(runes[:maxCommitSubjectRune-3])) + "..."
	}
	if !hasBody || strings.TrimSpace(body) == "" {
		return subject
	}
	return subject + "\n\n" + strings.TrimSpace(body)
}

// ApplyMessagePrefix prepends prefix unless msg already starts with it.
func ApplyMessagePrefix(msg, prefix string) string {
	if prefix == "" || strings.HasPrefix(msg, prefix) {
		return msg
	}
	trimmed := strings.TrimSpace(prefix)
	if trimmed != "" && strings.HasPrefix(msg, trimmed) {
		return msg
	}
	return prefix + msg
}
