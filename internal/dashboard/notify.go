package dashboard

import "time"

// NotificationKind selects the notification styling.
type NotificationKind string

const (
	NotifyInfo    NotificationKind = "info"
	NotifySuccess NotificationKind = "success"
	NotifyWarning NotificationKind = "warning"
	NotifyError   NotificationKind = "error"
)

// Notification is a transient, non-blocking message.
type Notification struct {
	ID      uint64
	Kind    NotificationKind
	Message string
	Expires time.Time
}

// Active reports whether the notification is still visible at now.
func (n Notification) Active(now time.Time) bool {
	return now.Before(n.Expires)
}

func pruneNotifications(notes []Notification, now time.Time) []Notification {
	kept := notes[:0]
	for _, note := range notes {
		if note.Active(now) {
			kept = append(kept, note)
		}
	}
	return kept
}
