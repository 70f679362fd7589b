package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"legalkit/internal/model"
)

// DefaultBaseURL is the evaluation service base path used when none is configured.
const DefaultBaseURL = "http://127.0.0.1:5000/api"

// RequestIDHeader carries a per-request id for correlating client and server logs.
const RequestIDHeader = "X-Request-ID"

// HTTPDoer abstracts HTTP clients used by the API client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a non-2xx response from the evaluation service.
type APIError struct {
	Status int
	// Message is the backend's error field; empty when the body had none.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status %d", e.Status)
}

// ServerMessage returns the backend-provided message, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}

// Client talks to the evaluation service REST endpoints.
type Client struct {
	BaseURL string
	HTTP    HTTPDoer
	Logger  zerolog.Logger
	// NewRequestID generates X-Request-ID values; defaults to UUIDv4.
	NewRequestID func() string
}

// NewClient constructs a client with explicit settings.
func NewClient(baseURL string, doer HTTPDoer, logger zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", baseURL)
	}
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		HTTP:         doer,
		Logger:       logger,
		NewRequestID: uuid.NewString,
	}, nil
}

// Datasets calls GET /datasets.
func (c *Client) Datasets(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/datasets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SystemInfo calls GET /system_info.
func (c *Client) SystemInfo(ctx context.Context) (model.SystemInfo, error) {
	var out model.SystemInfo
	if err := c.do(ctx, http.MethodGet, "/system_info", nil, &out); err != nil {
		return model.SystemInfo{}, err
	}
	return out, nil
}

// ListTasks calls GET /tasks.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTask calls GET /tasks/{id}.
func (c *Client) GetTask(ctx context.Context, id string) (model.Task, error) {
	if strings.TrimSpace(id) == "" {
		return model.Task{}, errors.New("task id is required")
	}
	var out model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, &out); err != nil {
		return model.Task{}, err
	}
	return out, nil
}

// GetResults calls GET /tasks/{id}/results.
func (c *Client) GetResults(ctx context.Context, id string) (model.Results, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("task id is required")
	}
	var out model.Results
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id)+"/results", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DiscoverModels calls POST /discover_models.
func (c *Client) DiscoverModels(ctx context.Context, path string) ([]model.DiscoveredModel, error) {
	var out []model.DiscoveredModel
	if err := c.do(ctx, http.MethodPost, "/discover_models", model.DiscoverRequest{Path: path}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitTask calls POST /submit_task and returns the new task id.
func (c *Client) SubmitTask(ctx context.Context, req model.EvaluationRequest) (string, error) {
	var out model.SubmitResponse
	if err := c.do(ctx, http.MethodPost, "/submit_task", req, &out); err != nil {
		return "", err
	}
	if out.TaskID == "" {
		return "", errors.New("submit response is missing task_id")
	}
	return out.TaskID, nil
}

// do sends one JSON request and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := ""
	if c.NewRequestID != nil {
		requestID = c.NewRequestID()
		req.Header.Set(RequestIDHeader, requestID)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Logger.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.Logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Msg("request done")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload model.ErrorResponse
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Message = strings.TrimSpace(payload.Error)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
