package dashboard

import (
	"context"
	"fmt"

	"legalkit/internal/model"
)

// TaskReader fetches a task and its results.
type TaskReader interface {
	GetTask(ctx context.Context, id string) (model.Task, error)
	GetResults(ctx context.Context, id string) (model.Results, error)
}

// LoadTaskDetail fetches a task and, when it is completed without inline
// results, its results. A results failure is reported in ResultsErr so the
// caller can show "results unavailable" instead of "no results".
func LoadTaskDetail(ctx context.Context, reader TaskReader, id string) (TaskDetail, error) {
	task, err := reader.GetTask(ctx, id)
	if err != nil {
		return TaskDetail{}, fmt.Errorf("get task %s: %w", id, err)
	}
	detail := TaskDetail{Task: task, Results: task.Results}
	if task.Status != model.StatusCompleted || len(task.Results) > 0 {
		return detail, nil
	}
	results, err := reader.GetResults(ctx, id)
	if err != nil {
		detail.ResultsErr = Reason(err)
		return detail, nil
	}
	detail.Results = results
	return detail, nil
}
