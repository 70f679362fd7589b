package stubserver_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"legalkit/internal/model"
	"legalkit/internal/stubserver"
	"legalkit/internal/testutil"
)

func fixedBackend(t *testing.T) *testutil.BackendInstance {
	t.Helper()
	opts := stubserver.DefaultOptions()
	opts.NewID = func() string { return "task-1" }
	opts.Discovered = map[string][]model.DiscoveredModel{
		"/models": {{ModelPath: "/models/qwen", ModelType: "local"}},
	}
	clock := testutil.NewFakeClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	opts.Now = clock.Now
	return testutil.StartBackend(t, testutil.BackendConfig{Options: &opts})
}

func TestSubmitCreatesPendingTask(t *testing.T) {
	backend := fixedBackend(t)
	var submitted model.SubmitResponse
	testutil.HTTPPostJSON(t, backend.BaseURL+"/submit_task", model.EvaluationRequest{
		Models:          []string{"m"},
		Datasets:        []string{"LawBench"},
		Task:            model.PhaseAll,
		RetrievalMethod: model.RetrievalNone,
	}, &submitted)
	if submitted.TaskID != "task-1" {
		t.Fatalf("unexpected task id %q", submitted.TaskID)
	}

	var task model.Task
	testutil.HTTPGetJSON(t, backend.BaseURL+"/tasks/task-1", &task)
	if task.Status != model.StatusPending {
		t.Fatalf("expected pending task, got %q", task.Status)
	}
	cfg := task.ParsedConfig()
	if len(cfg.Models) != 1 || cfg.Datasets[0] != "LawBench" {
		t.Fatalf("unexpected echoed config %+v", cfg)
	}
	if got := backend.Stub.Submitted(); len(got) != 1 || got[0].RetrievalMethod != model.RetrievalNone {
		t.Fatalf("unexpected submitted requests %+v", got)
	}
}

func TestSubmitFailureCarriesMessage(t *testing.T) {
	backend := fixedBackend(t)
	backend.Stub.FailSubmissions("GPU busy")
	resp := testutil.HTTPDo(t, http.MethodPost, backend.BaseURL+"/submit_task", []byte(`{"models":["m"],"datasets":["A"]}`), nil)
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Status)
	}
	if !strings.Contains(string(resp.Body), `"GPU busy"`) {
		t.Fatalf("expected error body, got %s", resp.Body)
	}
	if len(backend.Stub.Tasks()) != 0 {
		t.Fatalf("rejected submissions must not create tasks")
	}
}

func TestResultsLifecycle(t *testing.T) {
	backend := fixedBackend(t)
	backend.Stub.AddTask(model.Task{ID: "abc", Status: model.StatusRunning})

	resp := testutil.HTTPDo(t, http.MethodGet, backend.BaseURL+"/tasks/abc/results", nil, nil)
	if resp.Status != http.StatusBadRequest || !strings.Contains(string(resp.Body), "Task not completed") {
		t.Fatalf("expected not completed error, got %d %s", resp.Status, resp.Body)
	}

	if err := backend.Stub.SetStatus("abc", model.StatusCompleted, 100); err != nil {
		t.Fatalf("set status: %v", err)
	}
	backend.Stub.SetResults("abc", model.Results{"m": {"A": {"score": 0.9}}})
	var results model.Results
	testutil.HTTPGetJSON(t, backend.BaseURL+"/tasks/abc/results", &results)
	if score, ok := results["m"]["A"].Score(); !ok || score != 0.9 {
		t.Fatalf("unexpected results %+v", results)
	}

	backend.Stub.SetResultsError("abc", "not ready")
	resp = testutil.HTTPDo(t, http.MethodGet, backend.BaseURL+"/tasks/abc/results", nil, nil)
	if !strings.Contains(string(resp.Body), "not ready") {
		t.Fatalf("expected configured error, got %s", resp.Body)
	}

	if err := backend.Stub.SetStatus("missing", model.StatusFailed, 0); err == nil {
		t.Fatalf("expected error for unknown task")
	}
}

func TestUnknownTaskIs404(t *testing.T) {
	backend := fixedBackend(t)
	resp := testutil.HTTPDo(t, http.MethodGet, backend.BaseURL+"/tasks/nope", nil, nil)
	if resp.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Status)
	}
}

func TestDiscoverModels(t *testing.T) {
	backend := fixedBackend(t)
	var models []model.DiscoveredModel
	testutil.HTTPPostJSON(t, backend.BaseURL+"/discover_models", model.DiscoverRequest{Path: "/models"}, &models)
	if len(models) != 1 || models[0].ModelType != "local" {
		t.Fatalf("unexpected models %+v", models)
	}
	testutil.HTTPPostJSON(t, backend.BaseURL+"/discover_models", model.DiscoverRequest{Path: "/empty"}, &models)
	if len(models) != 0 {
		t.Fatalf("expected no models, got %+v", models)
	}
}

func TestCatalogueEndpoints(t *testing.T) {
	backend := fixedBackend(t)
	var datasets []string
	testutil.HTTPGetJSON(t, backend.BaseURL+"/datasets", &datasets)
	if len(datasets) == 0 {
		t.Fatalf("expected datasets")
	}
	var info model.SystemInfo
	testutil.HTTPGetJSON(t, backend.BaseURL+"/system_info", &info)
	if info.GPUCount != 2 || len(info.GPUInfo) != 2 {
		t.Fatalf("unexpected system info %+v", info)
	}
}

func TestCORSAndOpenAPI(t *testing.T) {
	backend := fixedBackend(t)
	resp := testutil.HTTPDo(t, http.MethodGet, backend.BaseURL+"/datasets", nil, http.Header{"Origin": {"http://localhost:8080"}})
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected CORS header, got %v", resp.Header)
	}
	var doc map[string]any
	testutil.HTTPGetJSON(t, backend.BaseURL+"/openapi.json", &doc)
	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		t.Fatalf("expected paths in openapi document")
	}
	for _, path := range []string{"/api/datasets", "/api/tasks/{task_id}/results", "/api/submit_task"} {
		if _, ok := paths[path]; !ok {
			t.Fatalf("expected %s in openapi paths", path)
		}
	}
}
