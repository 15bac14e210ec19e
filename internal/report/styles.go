package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared by every report.
const (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
)

type styles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
}

// newStyles binds the palette to w so colour is dropped when w is not a
// terminal.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(colorPrimary),
		muted:   r.NewStyle().Foreground(colorMuted),
		success: r.NewStyle().Foreground(colorSuccess),
		failure: r.NewStyle().Bold(true).Foreground(colorError),
		warning: r.NewStyle().Foreground(colorWarning),
	}
}
