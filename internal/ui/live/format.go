package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"legalkit/internal/dashboard"
	"legalkit/internal/i18n"
	"legalkit/internal/model"
)

// formatCounts renders the status counts line.
func formatCounts(tr i18n.Translator, counts StatusCounts) string {
	parts := []string{
		tr.StatusText(model.StatusPending) + ": " + strconv.Itoa(counts.Pending),
		tr.StatusText(model.StatusRunning) + ": " + strconv.Itoa(counts.Running),
		tr.StatusText(model.StatusCompleted) + ": " + strconv.Itoa(counts.Completed),
		tr.StatusText(model.StatusFailed) + ": " + strconv.Itoa(counts.Failed),
	}
	return strings.Join(parts, "  ")
}

// formatLastRefresh renders the humanized time of the last poll.
func formatLastRefresh(tr i18n.Translator, last, now time.Time) string {
	if last.IsZero() {
		return ""
	}
	return tr.T("last_refresh") + ": " + tr.RelativeTime(last, now)
}

// notificationColor selects the banner color for a notification kind.
func notificationColor(kind dashboard.NotificationKind) lipgloss.Color {
	switch kind {
	case dashboard.NotifySuccess:
		return lipgloss.Color("42")
	case dashboard.NotifyWarning:
		return lipgloss.Color("214")
	case dashboard.NotifyError:
		return lipgloss.Color("196")
	default:
		return lipgloss.Color("39")
	}
}

// notificationIcon prefixes a notification so it reads without color.
func notificationIcon(kind dashboard.NotificationKind) string {
	switch kind {
	case dashboard.NotifySuccess:
		return "✓"
	case dashboard.NotifyWarning:
		return "!"
	case dashboard.NotifyError:
		return "✗"
	default:
		return "i"
	}
}
