package live

import (
	"time"

	"legalkit/internal/dashboard"
)

// Action is what a key press asks the dashboard to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionNextView
	ActionRefresh
	ActionToggleLang
	ActionOpenTask
	ActionCloseTask
)

// snapshotMsg carries a fresh session snapshot after a command finished.
type snapshotMsg struct {
	snap dashboard.Snapshot
}

// tickMsg carries a refresh tick.
type tickMsg time.Time
