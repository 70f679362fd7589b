package reportserver

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"legalkit/internal/api"
	"legalkit/internal/i18n"
	"legalkit/internal/model"
	"legalkit/internal/testutil"
)

func newTestHandler(t *testing.T, dbPath string, tasks ...model.Task) (http.Handler, *testutil.BackendInstance) {
	t.Helper()
	backend := testutil.StartBackend(t, testutil.BackendConfig{Tasks: tasks})
	client, err := api.NewClient(backend.BaseURL, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	handler, err := NewHandler(Config{Source: client, Lang: i18n.English, DBPath: dbPath, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler, backend
}

func get(handler http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

// TestIndexListsTasksNewestFirst ensures the index links every task.
func TestIndexListsTasksNewestFirst(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	handler, _ := newTestHandler(t, "",
		model.Task{ID: "older-task", Status: model.StatusFailed, CreatedAt: model.Timestamp{Time: base}},
		model.Task{ID: "newer-task", Status: model.StatusRunning, CreatedAt: model.Timestamp{Time: base.Add(time.Hour)}},
	)
	resp := get(handler, "http://example.com/")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	newer := strings.Index(body, `href="/tasks/newer-task"`)
	older := strings.Index(body, `href="/tasks/older-task"`)
	if newer < 0 || older < 0 || newer > older {
		t.Fatalf("expected newest task first in %s", body)
	}
}

// TestTaskPageShowsUnavailableResults ensures the lazy results state is rendered.
func TestTaskPageShowsUnavailableResults(t *testing.T) {
	handler, backend := newTestHandler(t, "", model.Task{ID: "abc", Status: model.StatusCompleted})
	backend.Stub.SetResultsError("abc", "not ready")

	resp := get(handler, "http://example.com/tasks/abc")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Results unavailable: not ready") {
		t.Fatalf("expected unavailable state")
	}
}

// TestUnknownTaskIsNotFound ensures backend 404s pass through.
func TestUnknownTaskIsNotFound(t *testing.T) {
	handler, _ := newTestHandler(t, "")
	resp := get(handler, "http://example.com/tasks/missing")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Task not found") {
		t.Fatalf("expected backend message, got %q", resp.Body.String())
	}
}

// TestServesDatabase ensures the DuckDB endpoint returns the file content.
func TestServesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "export.duckdb")
	if err := os.WriteFile(dbPath, []byte("duckdb"), 0o644); err != nil {
		t.Fatalf("write temp db: %v", err)
	}
	handler, _ := newTestHandler(t, dbPath)
	resp := get(handler, "http://example.com/data/legalkit.duckdb")
	if resp.Code != http.StatusOK || resp.Body.String() != "duckdb" {
		t.Fatalf("unexpected db response %d %q", resp.Code, resp.Body.String())
	}
}

// TestNewHandlerRequiresSource ensures configuration errors surface.
func TestNewHandlerRequiresSource(t *testing.T) {
	if _, err := NewHandler(Config{}); err == nil {
		t.Fatalf("expected missing source error")
	}
}
