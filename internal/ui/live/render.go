package live

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"legalkit/internal/dashboard"
	"legalkit/internal/render"
)

// renderHeader renders the title and the tab bar.
func renderHeader(r render.Renderer, state State, noColor bool) string {
	tr := r.Translator()
	tabs := make([]string, 0, len(dashboard.Views))
	for _, view := range dashboard.Views {
		label := " " + tr.T(view.TitleKey()) + " "
		if view == state.View {
			label = "[" + strings.TrimSpace(label) + "]"
			if !noColor {
				label = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render(label)
			}
		}
		tabs = append(tabs, label)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		stylize(tr.T("title"), noColor, lipgloss.Color("33")),
		strings.Join(tabs, "  "),
	)
}

// renderNotifications renders the active notifications, newest last.
func renderNotifications(notes []dashboard.Notification, noColor bool) string {
	if len(notes) == 0 {
		return ""
	}
	lines := make([]string, 0, len(notes))
	for _, note := range notes {
		lines = append(lines, stylize(notificationIcon(note.Kind)+" "+note.Message, noColor, notificationColor(note.Kind)))
	}
	return strings.Join(lines, "\n")
}

// renderEvaluation renders the landing tab.
func renderEvaluation(r render.Renderer, state State) string {
	sections := []string{}
	if state.SystemLoaded {
		sections = append(sections, r.Heading("system_title"), r.SystemInfo(state.System), "")
	}
	sections = append(sections,
		r.Heading("recent_title"), r.RecentTasks(state.Recent), "",
		r.Heading("datasets_title"), r.Datasets(state.Datasets),
	)
	return strings.Join(sections, "\n")
}

// renderFooter renders counts, the last refresh time and key help.
func renderFooter(r render.Renderer, state State, now time.Time, noColor bool) string {
	tr := r.Translator()
	line := formatCounts(tr, state.Counts)
	if refresh := formatLastRefresh(tr, state.LastRefresh, now); refresh != "" {
		line += "  |  " + refresh
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		stylize(line, noColor, lipgloss.Color("242")),
		stylize(tr.T("key_help"), noColor, lipgloss.Color("244")),
	)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor || text == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
