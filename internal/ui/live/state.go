package live

import (
	"time"

	"legalkit/internal/dashboard"
	"legalkit/internal/i18n"
	"legalkit/internal/model"
)

// StatusCounts aggregates task counts by status.
type StatusCounts struct {
	Pending   int
	Running   int
	Completed int
	Failed    int
}

// State captures what the live dashboard renders.
type State struct {
	Loaded        bool
	View          dashboard.View
	Lang          i18n.Lang
	Datasets      []string
	System        model.SystemInfo
	SystemLoaded  bool
	Recent        []model.Task
	Tasks         []model.Task
	Detail        *dashboard.TaskDetail
	Notifications []dashboard.Notification
	Counts        StatusCounts
	LastRefresh   time.Time
}
