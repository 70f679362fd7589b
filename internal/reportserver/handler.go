package reportserver

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"

	"legalkit/internal/api"
	"legalkit/internal/dashboard"
	"legalkit/internal/i18n"
	"legalkit/internal/model"
	"legalkit/internal/report"
)

// TaskSource is the backend view the report server needs.
type TaskSource interface {
	dashboard.TaskReader
	ListTasks(ctx context.Context) ([]model.Task, error)
}

// Config captures the settings for serving task reports.
type Config struct {
	Addr   string
	Source TaskSource
	Lang   i18n.Lang
	// DBPath, when set, is served at /data/legalkit.duckdb.
	DBPath string
	Logger zerolog.Logger
}

// NewHandler builds the HTTP handler for the task index, task pages and
// the optional DuckDB export.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Source == nil {
		return nil, errors.New("reportserver: task source is required")
	}
	h := &handler{cfg: cfg, tr: i18n.New(cfg.Lang)}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.serveIndex)
	mux.HandleFunc("GET /tasks/{id}", h.serveTask)
	if cfg.DBPath != "" {
		mux.Handle("/data/legalkit.duckdb", serveDatabase(cfg.DBPath))
	}
	return mux, nil
}

type handler struct {
	cfg Config
	tr  i18n.Translator
}

// serveIndex lists tasks, newest first.
func (h *handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.cfg.Source.ListTasks(r.Context())
	if err != nil {
		h.fail(w, "err_load_tasks", err)
		return
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt.Time)
	})
	h.write(w, r, report.IndexPage(h.tr, tasks, "/tasks/"))
}

// serveTask renders one task with lazily loaded results.
func (h *handler) serveTask(w http.ResponseWriter, r *http.Request) {
	detail, err := dashboard.LoadTaskDetail(r.Context(), h.cfg.Source, r.PathValue("id"))
	if err != nil {
		h.fail(w, "err_get_task_detail", err)
		return
	}
	h.write(w, r, report.TaskPage(h.tr, report.TaskData{
		Task:       detail.Task,
		Results:    detail.Results,
		ResultsErr: detail.ResultsErr,
	}))
}

func (h *handler) write(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		h.cfg.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("render report")
	}
}

func (h *handler) fail(w http.ResponseWriter, key string, err error) {
	status := http.StatusBadGateway
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		status = http.StatusNotFound
	}
	h.cfg.Logger.Warn().Err(err).Msg("report request failed")
	http.Error(w, h.tr.T(key)+": "+dashboard.Reason(err), status)
}

// serveDatabase serves the exported DuckDB file for offline analysis.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}
