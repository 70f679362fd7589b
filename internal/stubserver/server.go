// Package stubserver is an in-process stand-in for the evaluation backend.
// It serves the same seven endpoints from memory so the client, the live
// dashboard and the feature suites can run without the real service.
package stubserver

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"legalkit/internal/model"
)

// Options configures the stand-in backend.
type Options struct {
	Datasets   []string
	System     model.SystemInfo
	Discovered map[string][]model.DiscoveredModel
	Logger     zerolog.Logger
	Now        func() time.Time
	NewID      func() string
}

// DefaultOptions returns a small catalogue suitable for demos.
func DefaultOptions() Options {
	datasets := []string{"LawBench", "LexEval", "JECQA", "CAIL2018"}
	return Options{
		Datasets: datasets,
		System: model.SystemInfo{
			GPUCount: 2,
			GPUInfo: []model.GPUInfo{
				{ID: 0, Name: "NVIDIA A100-SXM4-80GB", MemoryTotal: 80},
				{ID: 1, Name: "NVIDIA A100-SXM4-80GB", MemoryTotal: 80},
			},
			Datasets:      datasets,
			Accelerators:  []string{"vllm", "lmdeploy"},
			SubtasksTotal: 312,
		},
		Logger: zerolog.Nop(),
	}
}

// Server holds the in-memory task store behind the REST routes.
type Server struct {
	opts Options

	mu           sync.Mutex
	tasks        map[string]*model.Task
	order        []string
	results      map[string]model.Results
	resultErrors map[string]string
	submitted    []model.EvaluationRequest
	submitErr    string
}

// New returns a server with no tasks.
func New(opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Server{
		opts:         opts,
		tasks:        make(map[string]*model.Task),
		results:      make(map[string]model.Results),
		resultErrors: make(map[string]string),
	}
}

// Container registers the API web service, the OpenAPI document and the
// request filters.
func (s *Server) Container() *restful.Container {
	container := restful.NewContainer()
	container.Filter(s.logRequest)
	container.Filter(recoverPanic)
	s.RegisterRoutes(container)
	container.Add(restfulspec.NewOpenAPIService(restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/api/openapi.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}))
	return container
}

// Handler wraps the container with permissive CORS so browser dashboards
// can point at the stub.
func (s *Server) Handler() http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return corsHandler.Handler(s.Container())
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "LegalKit evaluation backend (stub)",
			Description: "In-memory stand-in for the LegalKit evaluation API",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "catalogue", Description: "Datasets and system info"}},
		{TagProps: spec.TagProps{Name: "tasks", Description: "Evaluation tasks"}},
	}
}

func (s *Server) logRequest(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := s.opts.Now()
	chain.ProcessFilter(req, resp)
	s.opts.Logger.Info().
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Str("request_id", req.HeaderParameter("X-Request-ID")).
		Int("status", resp.StatusCode()).
		Dur("elapsed", s.opts.Now().Sub(start)).
		Msg("stub request")
}

func recoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			writeError(resp, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", r))
		}
	}()
	chain.ProcessFilter(req, resp)
}

// AddTask stores a task, replacing any task with the same id.
func (s *Server) AddTask(task model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(task)
}

// SetStatus moves a task to status with the given progress. Completing a
// task stamps its completion time.
func (s *Server) SetStatus(id string, status model.TaskStatus, progress float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return fmt.Errorf("task %q not found", id)
	}
	now := s.opts.Now()
	task.Status = status
	task.Progress = progress
	if status == model.StatusRunning && task.StartedAt.IsZero() {
		task.StartedAt = model.Timestamp{Time: now}
	}
	if status == model.StatusCompleted || status == model.StatusFailed {
		task.CompletedAt = model.Timestamp{Time: now}
	}
	return nil
}

// SetResults stores results for a task served by the results endpoint.
func (s *Server) SetResults(id string, results model.Results) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[id] = results
	delete(s.resultErrors, id)
}

// SetResultsError makes the results endpoint fail for id with message.
func (s *Server) SetResultsError(id, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resultErrors[id] = message
}

// FailSubmissions makes submit_task reject requests with message. An empty
// message restores normal behaviour.
func (s *Server) FailSubmissions(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitErr = message
}

// Submitted returns the requests accepted or rejected by submit_task.
func (s *Server) Submitted() []model.EvaluationRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.EvaluationRequest(nil), s.submitted...)
}

// Tasks returns a copy of the stored tasks in insertion order.
func (s *Server) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.tasks[id])
	}
	return out
}

func (s *Server) putLocked(task model.Task) {
	if _, ok := s.tasks[task.ID]; !ok {
		s.order = append(s.order, task.ID)
	}
	stored := task
	s.tasks[task.ID] = &stored
}
