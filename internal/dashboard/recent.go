package dashboard

import (
	"sort"

	"legalkit/internal/model"
)

// DefaultRecentLimit is the size of the recent-task view.
const DefaultRecentLimit = 5

// RecentTasks returns up to limit tasks ordered by created_at, newest
// first. The input is not modified. Ties keep backend order.
func RecentTasks(tasks []model.Task, limit int) []model.Task {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt.Time)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
