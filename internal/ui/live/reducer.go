package live

import (
	"legalkit/internal/dashboard"
	"legalkit/internal/model"
)

// Reduce replaces the UI state with a session snapshot.
func Reduce(state State, snap dashboard.Snapshot) State {
	state.Loaded = true
	state.View = snap.View
	state.Lang = snap.Lang
	state.Datasets = snap.Datasets
	state.System = snap.System
	state.SystemLoaded = snap.SystemLoaded
	state.Recent = snap.Recent
	state.Tasks = snap.Tasks
	state.Detail = snap.Detail
	state.Notifications = snap.Notifications
	state.LastRefresh = snap.LastRefresh
	if len(snap.Tasks) > 0 {
		state.Counts = recount(snap.Tasks)
	} else {
		state.Counts = recount(snap.Recent)
	}
	return state
}

// recount recomputes status counts for tasks.
func recount(tasks []model.Task) StatusCounts {
	var counts StatusCounts
	for _, task := range tasks {
		switch task.Status {
		case model.StatusPending:
			counts.Pending++
		case model.StatusRunning:
			counts.Running++
		case model.StatusCompleted:
			counts.Completed++
		case model.StatusFailed:
			counts.Failed++
		}
	}
	return counts
}

// KeyAction maps a key press to an action for the current state.
func KeyAction(state State, key string) Action {
	switch key {
	case "q", "ctrl+c":
		return ActionQuit
	case "tab":
		return ActionNextView
	case "r":
		return ActionRefresh
	case "l":
		return ActionToggleLang
	case "enter":
		if state.View == dashboard.ViewResults && state.Detail == nil && len(state.Tasks) > 0 {
			return ActionOpenTask
		}
	case "esc":
		if state.Detail != nil {
			return ActionCloseTask
		}
	}
	return ActionNone
}
