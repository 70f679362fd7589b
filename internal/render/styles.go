package render

import (
	"github.com/charmbracelet/lipgloss"

	"legalkit/internal/model"
)

// paint applies optional foreground color styling.
func paint(text string, noColor bool, color lipgloss.Color) string {
	if noColor || text == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// bold applies optional bold styling.
func bold(text string, noColor bool) string {
	if noColor || text == "" {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}

// StatusColor selects the badge color for a task status.
func StatusColor(status model.TaskStatus) lipgloss.Color {
	switch status {
	case model.StatusCompleted:
		return lipgloss.Color("42")
	case model.StatusRunning:
		return lipgloss.Color("33")
	case model.StatusFailed:
		return lipgloss.Color("196")
	case model.StatusPending:
		return lipgloss.Color("246")
	default:
		return lipgloss.Color("244")
	}
}

// SeverityColor selects the badge color for a score severity.
func SeverityColor(sev Severity) lipgloss.Color {
	switch sev {
	case SeverityHigh:
		return lipgloss.Color("42")
	case SeverityMedium:
		return lipgloss.Color("220")
	case SeverityLow:
		return lipgloss.Color("196")
	default:
		return lipgloss.Color("244")
	}
}

const (
	colorHeading = lipgloss.Color("33")
	colorMuted   = lipgloss.Color("242")
	colorWarn    = lipgloss.Color("214")
	colorError   = lipgloss.Color("196")
	colorInfo    = lipgloss.Color("39")
)
