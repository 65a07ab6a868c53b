// Package tui renders terminal output for cc-track.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cahaseler/cc-track/internal/domain"
)

// Colors defines the color palette.
var Colors = struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color

	// Review status colors
	OnTrack           lipgloss.Color
	Deviation         lipgloss.Color
	NeedsVerification lipgloss.Color
	CriticalFailure   lipgloss.Color
}{
	Primary: lipgloss.Color("#6C5CE7"), // Purple
	Muted:   lipgloss.Color("#636E72"), // Gray
	Text:    lipgloss.Color("#DFE6E9"), // Light gray

	OnTrack:           lipgloss.Color("#00B894"), // Green
	Deviation:         lipgloss.Color("#FDCB6E"), // Yellow
	NeedsVerification: lipgloss.Color("#74B9FF"), // Light blue
	CriticalFailure:   lipgloss.Color("#D63031"), // Red
}

// Styles contains the lipgloss styles used for status output.
type Styles struct {
	Message lipgloss.Style
	Muted   lipgloss.Style
	Branch  lipgloss.Style

	StatusOnTrack           lipgloss.Style
	StatusDeviation         lipgloss.Style
	StatusNeedsVerification lipgloss.Style
	StatusCriticalFailure   lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Message: lipgloss.NewStyle().Foreground(Colors.Text),
		Muted:   lipgloss.NewStyle().Foreground(Colors.Muted),
		Branch:  lipgloss.NewStyle().Foreground(Colors.Primary),

		StatusOnTrack:           lipgloss.NewStyle().Foreground(Colors.OnTrack),
		StatusDeviation:         lipgloss.NewStyle().Foreground(Colors.Deviation).Bold(true),
		StatusNeedsVerification: lipgloss.NewStyle().Foreground(Colors.NeedsVerification),
		StatusCriticalFailure:   lipgloss.NewStyle().Foreground(Colors.CriticalFailure).Bold(true),
	}
}

// StatusStyle returns the style for a given review status.
func (s Styles) StatusStyle(status domain.ReviewStatus) lipgloss.Style {
	switch status {
	case domain.ReviewOnTrack:
		return s.StatusOnTrack
	case domain.ReviewDeviation:
		return s.StatusDeviation
	case domain.ReviewNeedsVerification:
		return s.StatusNeedsVerification
	case domain.ReviewCriticalFailure:
		return s.StatusCriticalFailure
	default:
		return s.Muted
	}
}
