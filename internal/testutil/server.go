package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"legalkit/internal/model"
	"legalkit/internal/stubserver"
)

// BackendConfig seeds the stand-in backend for StartBackend.
type BackendConfig struct {
	Options *stubserver.Options
	Tasks   []model.Task
	Now     func() time.Time
}

// BackendInstance represents a running stand-in backend.
type BackendInstance struct {
	// BaseURL includes the /api prefix the client expects.
	BaseURL string
	Stub    *stubserver.Server
	Close   func()
}

// StartBackend launches an in-memory evaluation backend over httptest.
// The server is closed when the test ends.
func StartBackend(t testing.TB, cfg BackendConfig) *BackendInstance {
	t.Helper()
	opts := stubserver.DefaultOptions()
	if cfg.Options != nil {
		opts = *cfg.Options
	}
	if cfg.Now != nil {
		opts.Now = cfg.Now
	}
	stub := stubserver.New(opts)
	for _, task := range cfg.Tasks {
		stub.AddTask(task)
	}
	server := httptest.NewServer(stub.Handler())
	t.Cleanup(server.Close)
	return &BackendInstance{
		BaseURL: server.URL + "/api",
		Stub:    stub,
		Close:   server.Close,
	}
}
