package stubserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"legalkit/internal/model"
)

// RegisterRoutes adds the /api web service to container.
func (s *Server) RegisterRoutes(container *restful.Container) {
	ws := new(restful.WebService)

	ws.
		Path("/api").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	catalogue := []string{"catalogue"}
	tasks := []string{"tasks"}

	ws.Route(ws.GET("/datasets").
		To(s.listDatasets).
		Doc("List supported datasets").
		Metadata(restfulspec.KeyOpenAPITags, catalogue).
		Writes([]string{}).
		Returns(http.StatusOK, "OK", []string{}))

	ws.Route(ws.GET("/system_info").
		To(s.systemInfo).
		Doc("GPU and catalogue summary").
		Metadata(restfulspec.KeyOpenAPITags, catalogue).
		Writes(model.SystemInfo{}).
		Returns(http.StatusOK, "OK", model.SystemInfo{}))

	ws.Route(ws.GET("/tasks").
		To(s.listTasks).
		Doc("List evaluation tasks").
		Metadata(restfulspec.KeyOpenAPITags, tasks).
		Writes([]model.Task{}).
		Returns(http.StatusOK, "OK", []model.Task{}))

	ws.Route(ws.GET("/tasks/{task_id}").
		To(s.getTask).
		Doc("Get one evaluation task").
		Metadata(restfulspec.KeyOpenAPITags, tasks).
		Param(ws.PathParameter("task_id", "Task identifier").DataType("string")).
		Writes(model.Task{}).
		Returns(http.StatusOK, "OK", model.Task{}).
		Returns(http.StatusNotFound, "Not Found", model.ErrorResponse{}))

	ws.Route(ws.GET("/tasks/{task_id}/results").
		To(s.getResults).
		Doc("Get results of a completed task").
		Metadata(restfulspec.KeyOpenAPITags, tasks).
		Param(ws.PathParameter("task_id", "Task identifier").DataType("string")).
		Writes(model.Results{}).
		Returns(http.StatusOK, "OK", model.Results{}).
		Returns(http.StatusBadRequest, "Bad Request", model.ErrorResponse{}).
		Returns(http.StatusNotFound, "Not Found", model.ErrorResponse{}))

	ws.Route(ws.POST("/discover_models").
		To(s.discoverModels).
		Doc("Discover models under a path").
		Metadata(restfulspec.KeyOpenAPITags, catalogue).
		Reads(model.DiscoverRequest{}).
		Writes([]model.DiscoveredModel{}).
		Returns(http.StatusOK, "OK", []model.DiscoveredModel{}).
		Returns(http.StatusBadRequest, "Bad Request", model.ErrorResponse{}))

	ws.Route(ws.POST("/submit_task").
		To(s.submitTask).
		Doc("Submit an evaluation request").
		Metadata(restfulspec.KeyOpenAPITags, tasks).
		Reads(model.EvaluationRequest{}).
		Writes(model.SubmitResponse{}).
		Returns(http.StatusOK, "OK", model.SubmitResponse{}).
		Returns(http.StatusBadRequest, "Bad Request", model.ErrorResponse{}))

	container.Add(ws)
}

// GET /api/datasets
func (s *Server) listDatasets(req *restful.Request, resp *restful.Response) {
	datasets := s.opts.Datasets
	if datasets == nil {
		datasets = []string{}
	}
	_ = resp.WriteHeaderAndEntity(http.StatusOK, datasets)
}

// GET /api/system_info
func (s *Server) systemInfo(req *restful.Request, resp *restful.Response) {
	_ = resp.WriteHeaderAndEntity(http.StatusOK, s.opts.System)
}

// GET /api/tasks
func (s *Server) listTasks(req *restful.Request, resp *restful.Response) {
	_ = resp.WriteHeaderAndEntity(http.StatusOK, s.Tasks())
}

// GET /api/tasks/{task_id}
func (s *Server) getTask(req *restful.Request, resp *restful.Response) {
	id := req.PathParameter("task_id")
	s.mu.Lock()
	task, ok := s.tasks[id]
	var out model.Task
	if ok {
		out = *task
	}
	s.mu.Unlock()
	if !ok {
		writeError(resp, http.StatusNotFound, "Task not found")
		return
	}
	_ = resp.WriteHeaderAndEntity(http.StatusOK, out)
}

// GET /api/tasks/{task_id}/results
func (s *Server) getResults(req *restful.Request, resp *restful.Response) {
	id := req.PathParameter("task_id")
	s.mu.Lock()
	task, ok := s.tasks[id]
	status := model.TaskStatus("")
	if ok {
		status = task.Status
	}
	results := s.results[id]
	failure, failed := s.resultErrors[id]
	s.mu.Unlock()

	switch {
	case !ok:
		writeError(resp, http.StatusNotFound, "Task not found")
	case failed:
		writeError(resp, http.StatusBadRequest, failure)
	case status != model.StatusCompleted:
		writeError(resp, http.StatusBadRequest, "Task not completed")
	default:
		if results == nil {
			results = model.Results{}
		}
		_ = resp.WriteHeaderAndEntity(http.StatusOK, results)
	}
}

// POST /api/discover_models
func (s *Server) discoverModels(req *restful.Request, resp *restful.Response) {
	var body model.DiscoverRequest
	if err := req.ReadEntity(&body); err != nil {
		writeError(resp, http.StatusBadRequest, "invalid request body")
		return
	}
	path := strings.TrimSpace(body.Path)
	if path == "" {
		writeError(resp, http.StatusBadRequest, "path is required")
		return
	}
	models := s.opts.Discovered[path]
	if models == nil {
		models = []model.DiscoveredModel{}
	}
	_ = resp.WriteHeaderAndEntity(http.StatusOK, models)
}

// POST /api/submit_task
func (s *Server) submitTask(req *restful.Request, resp *restful.Response) {
	var body model.EvaluationRequest
	if err := req.ReadEntity(&body); err != nil {
		writeError(resp, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted = append(s.submitted, body)
	if s.submitErr != "" {
		writeError(resp, http.StatusBadRequest, s.submitErr)
		return
	}
	if len(body.Models) == 0 || len(body.Datasets) == 0 {
		writeError(resp, http.StatusBadRequest, "models and datasets are required")
		return
	}

	config, err := encodeConfig(body)
	if err != nil {
		writeError(resp, http.StatusInternalServerError, err.Error())
		return
	}
	id := s.opts.NewID()
	s.putLocked(model.Task{
		ID:        id,
		Status:    model.StatusPending,
		CreatedAt: model.Timestamp{Time: s.opts.Now()},
		Config:    config,
	})
	s.opts.Logger.Info().Str("task_id", id).Strs("models", body.Models).Msg("task submitted")
	_ = resp.WriteHeaderAndEntity(http.StatusOK, model.SubmitResponse{TaskID: id})
}

func writeError(resp *restful.Response, status int, message string) {
	_ = resp.WriteHeaderAndEntity(status, model.ErrorResponse{Error: message})
}

// encodeConfig stores the submitted request as the task's config blob, the
// same shape the backend echoes back in task listings.
func encodeConfig(req model.EvaluationRequest) (json.RawMessage, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode task config: %w", err)
	}
	return data, nil
}
