package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"legalkit/internal/api/mocks"
	"legalkit/internal/model"
	"legalkit/internal/testutil"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL+"/api/", nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewClientValidatesBaseURL(t *testing.T) {
	if _, err := NewClient("ftp://example", nil, zerolog.Nop()); err == nil {
		t.Fatalf("expected scheme error")
	}
	client, err := NewClient("", nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", client.BaseURL)
	}
}

func TestSubmitTaskSendsJSON(t *testing.T) {
	var got map[string]any
	var requestID string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/submit_task" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		requestID = r.Header.Get(RequestIDHeader)
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = io.WriteString(w, `{"task_id":"task-123"}`)
	}))
	client.NewRequestID = func() string { return "req-1" }

	id, err := client.SubmitTask(testutil.Context(t, time.Second), model.EvaluationRequest{
		Models:          []string{"m"},
		Datasets:        []string{"A"},
		Task:            model.PhaseAll,
		RetrievalMethod: model.RetrievalNone,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id != "task-123" {
		t.Fatalf("unexpected id %q", id)
	}
	if got["retrieval_method"] != "none" || got["task"] != "all" {
		t.Fatalf("unexpected body %v", got)
	}
	if requestID != "req-1" {
		t.Fatalf("expected request id header, got %q", requestID)
	}
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"error":"not ready"}`)
	}))
	_, err := client.GetResults(testutil.Context(t, time.Second), "abc")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "not ready" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
	if msg, ok := ServerMessage(err); !ok || msg != "not ready" {
		t.Fatalf("expected server message, got %q %v", msg, ok)
	}
}

func TestAPIErrorWithoutMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	_, err := client.ListTasks(testutil.Context(t, time.Second))
	if _, ok := ServerMessage(err); ok {
		t.Fatalf("did not expect a server message for %v", err)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestGetTaskEscapesID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/tasks/a%2Fb" {
			t.Errorf("unexpected path %q", r.URL.EscapedPath())
		}
		_, _ = io.WriteString(w, `{"id":"a/b","status":"running","progress":40}`)
	}))
	task, err := client.GetTask(testutil.Context(t, time.Second), "a/b")
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if task.Status != model.StatusRunning || task.Progress != 40 {
		t.Fatalf("unexpected task %+v", task)
	}
	if _, err := client.GetTask(testutil.Context(t, time.Second), " "); err == nil {
		t.Fatalf("expected empty id error")
	}
}

func TestTransportErrorIsWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	doer := mocks.NewMockHTTPDoer(ctrl)
	boom := errors.New("connection refused")
	doer.EXPECT().Do(gomock.Any()).Return(nil, boom)

	client, err := NewClient("http://backend/api", doer, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Datasets(testutil.Context(t, time.Second))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
	if _, ok := ServerMessage(err); ok {
		t.Fatalf("transport errors carry no server message")
	}
}

func TestDecodeErrorIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	doer := mocks.NewMockHTTPDoer(ctrl)
	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		if req.URL.String() != "http://backend/api/system_info" {
			t.Errorf("unexpected url %s", req.URL)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("not json")),
		}, nil
	})
	client, err := NewClient("http://backend/api", doer, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.SystemInfo(testutil.Context(t, time.Second)); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestSubmitRequiresTaskID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	}))
	if _, err := client.SubmitTask(testutil.Context(t, time.Second), model.EvaluationRequest{}); err == nil {
		t.Fatalf("expected missing task_id error")
	}
}

func TestDiscoverModels(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body model.DiscoverRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Path != "/models" {
			t.Errorf("unexpected path %q", body.Path)
		}
		_, _ = io.WriteString(w, `[{"model_path":"/models/a","model_type":"local"}]`)
	}))
	models, err := client.DiscoverModels(testutil.Context(t, time.Second), "/models")
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(models) != 1 || models[0].ModelPath != "/models/a" {
		t.Fatalf("unexpected models %+v", models)
	}
}
