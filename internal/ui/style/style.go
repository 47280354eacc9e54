// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/pyman/internal/core/domain"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)

// Icon returns the glyph shown next to a step in the given status.
func Icon(status domain.VertexStatus) string {
	switch status {
	case domain.VertexStatusCompleted:
		return Check
	case domain.VertexStatusFailed:
		return Cross
	case domain.VertexStatusCached:
		return Tilde
	case domain.VertexStatusRunning:
		return Dot
	case domain.VertexStatusSkipped:
		return Warning
	default:
		return Circle
	}
}

// Color returns the brand color associated with status.
func Color(status domain.VertexStatus) lipgloss.Color {
	switch status {
	case domain.VertexStatusCompleted:
		return Green
	case domain.VertexStatusFailed:
		return Red
	case domain.VertexStatusSkipped:
		return Yellow
	case domain.VertexStatusRunning:
		return Iris
	default:
		return Slate
	}
}

// Status renders "icon label" in the color of status.
func Status(r *lipgloss.Renderer, status domain.VertexStatus, label string) string {
	return r.NewStyle().Foreground(Color(status)).Render(Icon(status) + " " + label)
}

// Heading renders a bold section title.
func Heading(r *lipgloss.Renderer, text string) string {
	return r.NewStyle().Bold(true).Foreground(Iris).Render(text)
}

// Muted renders secondary text.
func Muted(r *lipgloss.Renderer, text string) string {
	return r.NewStyle().Foreground(Slate).Render(text)
}
