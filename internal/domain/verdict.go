package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// verdictPayload is the JSON shape the classification oracle is asked to return.
// Alternate key spellings seen in practice are accepted.
type verdictPayload struct {
	Status                 string `json:"status"`
	Message                string `json:"message"`
	Reason                 string `json:"reason"`
	CommitMessage          string `json:"commit_message"`
	SuggestedCommitMessage string `json:"suggested_commit_message"`
	CommitMessageCamel     string `json:"commitMessage"`
}

func (p verdictPayload) verdict() ReviewVerdict {
	message := p.Message
	if message == "" {
		message = p.Reason
	}
	commitMsg := firstNonEmpty(p.CommitMessage, p.SuggestedCommitMessage, p.CommitMessageCamel)
	return ReviewVerdict{
		Status:                 ParseReviewStatus(p.Status),
		Message:                strings.TrimSpace(message),
		SuggestedCommitMessage: strings.TrimSpace(commitMsg),
	}
}

// ParsedVerdict is a verdict successfully parsed from oracle output.
type ParsedVerdict struct {
	Verdict   ReviewVerdict
	Extracted bool // true when the JSON had to be extracted from surrounding prose
}

// ParseFailure describes oracle output that held no usable verdict.
type ParseFailure struct {
	Reason error
	Raw    string
}

// Error implements error.
func (f *ParseFailure) Error() string {
	return fmt.Sprintf("parse verdict: %v", f.Reason)
}

// Unwrap returns the underlying reason.
func (f *ParseFailure) Unwrap() error {
	return f.Reason
}

// ParseVerdict parses classification oracle output in two steps: a strict
// JSON parse of the whole text, then extraction of the first balanced JSON
// object embedded in prose. The returned error is always a *ParseFailure.
func ParseVerdict(text string) (ParsedVerdict, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ParsedVerdict{}, &ParseFailure{Reason: ErrEmptyResponse, Raw: text}
	}

	var payload verdictPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err == nil {
		return ParsedVerdict{Verdict: payload.verdict()}, nil
	}

	for _, candidate := range balancedObjects(trimmed) {
		var p verdictPayload
		if err := json.Unmarshal([]byte(candidate), &p); err == nil {
			return ParsedVerdict{Verdict: p.verdict(), Extracted: true}, nil
		}
	}

	return ParsedVerdict{}, &ParseFailure{Reason: ErrNoJSONObject, Raw: text}
}

// balancedObjects returns every top-level balanced {...} span in text, in
// order. Braces inside JSON string literals are ignored.
func balancedObjects(text string) []string {
	var objects []string
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				objects = append(objects, text[start:i+1])
				start = -1
			}
		}
	}
	return objects
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
