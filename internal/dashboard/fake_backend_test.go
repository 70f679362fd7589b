package dashboard

import (
	"context"
	"errors"
	"sync"

	"legalkit/internal/i18n"
	"legalkit/internal/model"
)

// fakeBackend records calls and returns canned data.
type fakeBackend struct {
	mu        sync.Mutex
	calls     map[string]int
	datasets  []string
	system    model.SystemInfo
	systemErr error
	tasks     []model.Task
	listGate  chan struct{}
	listErr   error
	task      model.Task
	results   model.Results
	resultErr error
	submitErr error
	submitID  string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: map[string]int{}, submitID: "task-new"}
}

func (f *fakeBackend) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeBackend) Datasets(ctx context.Context) ([]string, error) {
	f.record("datasets")
	return f.datasets, nil
}

func (f *fakeBackend) SystemInfo(ctx context.Context) (model.SystemInfo, error) {
	f.record("system_info")
	return f.system, f.systemErr
}

func (f *fakeBackend) ListTasks(ctx context.Context) ([]model.Task, error) {
	f.record("tasks")
	f.mu.Lock()
	gate := f.listGate
	tasks := f.tasks
	listErr := f.listErr
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if listErr != nil {
		return nil, listErr
	}
	return tasks, nil
}

func (f *fakeBackend) GetTask(ctx context.Context, id string) (model.Task, error) {
	f.record("task")
	if f.task.ID != id {
		return model.Task{}, errors.New("task not found")
	}
	return f.task, nil
}

func (f *fakeBackend) GetResults(ctx context.Context, id string) (model.Results, error) {
	f.record("results")
	return f.results, f.resultErr
}

func (f *fakeBackend) DiscoverModels(ctx context.Context, path string) ([]model.DiscoveredModel, error) {
	f.record("discover")
	return nil, nil
}

func (f *fakeBackend) SubmitTask(ctx context.Context, req model.EvaluationRequest) (string, error) {
	f.record("submit")
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return f.submitID, nil
}

type fakeStore struct {
	saved []string
	err   error
}

func (s *fakeStore) Save(lang i18n.Lang) error {
	s.saved = append(s.saved, string(lang))
	return s.err
}
