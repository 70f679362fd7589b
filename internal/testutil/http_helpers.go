package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"
)

// HTTPResponse is a buffered response for assertions.
type HTTPResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// HTTPGetJSON sends a GET request and decodes a 2xx JSON body into out.
func HTTPGetJSON(t testing.TB, url string, out any) {
	t.Helper()
	resp := HTTPDo(t, http.MethodGet, url, nil, nil)
	expectOK(t, http.MethodGet, url, resp)
	if err := json.Unmarshal(resp.Body, out); err != nil {
		t.Fatalf("decode response from %s: %v", url, err)
	}
}

// HTTPPostJSON sends payload as JSON and decodes a 2xx JSON body into out.
func HTTPPostJSON(t testing.TB, url string, payload, out any) {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp := HTTPDo(t, http.MethodPost, url, data, nil)
	expectOK(t, http.MethodPost, url, resp)
	if out == nil {
		return
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		t.Fatalf("decode response from %s: %v", url, err)
	}
}

// HTTPDo executes a request with an optional JSON payload and returns the
// buffered response without checking its status.
func HTTPDo(t testing.TB, method, url string, payload []byte, header http.Header) HTTPResponse {
	t.Helper()
	ctx := Context(t, 2*time.Second)
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("http request: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return HTTPResponse{Status: resp.StatusCode, Header: resp.Header, Body: body}
}

func expectOK(t testing.TB, method, url string, resp HTTPResponse) {
	t.Helper()
	if resp.Status < 200 || resp.Status >= 300 {
		t.Fatalf("unexpected status %d for %s %s: %s", resp.Status, method, url, string(resp.Body))
	}
}
