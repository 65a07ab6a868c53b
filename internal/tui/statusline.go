package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/cahaseler/cc-track/internal/domain"
)

// DefaultStaleAfter is the age after which a status is rendered muted.
const DefaultStaleAfter = time.Hour

const separator = " · "

// StatusLineInfo contains information for rendering the status line.
// Fields are ordered to minimize memory padding.
type StatusLineInfo struct {
	Artifact *domain.StatusArtifact // nil when nothing was published
	Branch   string
	Age      time.Duration
}

// StatusLine renders the one-line review status shown by the assistant.
// Fields are ordered to minimize memory padding.
type StatusLine struct {
	styles     Styles
	staleAfter time.Duration
	width      int // 0 = unlimited
}

// NewStatusLine creates a new StatusLine with the given width and styles.
func NewStatusLine(width int, styles Styles) *StatusLine {
	return &StatusLine{
		styles:     styles,
		staleAfter: DefaultStaleAfter,
		width:      width,
	}
}

// SetWidth updates the status line width.
func (s *StatusLine) SetWidth(width int) {
	s.width = width
}

// Render renders the status line with the given info.
func (s *StatusLine) Render(info StatusLineInfo) string {
	var right string
	if info.Branch != "" {
		right = s.styles.Branch.Render(info.Branch)
	}

	if info.Artifact == nil {
		return s.join(s.styles.Muted.Render("cc-track: no review yet"), right)
	}

	a := info.Artifact
	icon := a.Status.Icon()
	if a.Status == "" {
		icon = "·"
	}
	stale := s.staleAfter > 0 && info.Age > s.staleAfter

	messageStyle := s.styles.Message
	iconStyle := s.styles.StatusStyle(a.Status)
	if stale {
		messageStyle = s.styles.Muted
		iconStyle = s.styles.Muted
	}

	age := s.styles.Muted.Render(formatAge(info.Age))
	if right != "" {
		right = age + separator + right
	} else {
		right = age
	}

	message := strings.Join(strings.Fields(a.Message), " ")
	left := iconStyle.Render(icon) + " " + messageStyle.Render(s.fit(message, lipgloss.Width(right)))
	return s.join(left, right)
}

// fit truncates message so that the whole line stays within the width.
func (s *StatusLine) fit(message string, rightWidth int) string {
	if s.width <= 0 {
		return message
	}
	// icon + space, separator before the right part
	maxWidth := s.width - 2 - rightWidth - lipgloss.Width(separator)
	if lipgloss.Width(message) <= maxWidth {
		return message
	}
	if maxWidth <= 3 {
		return "..."
	}
	runes := []rune(message)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimRight(string(runes), " ") + "..."
}

func (s *StatusLine) join(left, right string) string {
	if right == "" {
		return left
	}
	return left + separator + right
}

func formatAge(age time.Duration) string {
	if age < time.Minute {
		return "just now"
	}
	now := time.Now()
	return humanize.RelTime(now.Add(-age), now, "ago", "from now")
}
