// Package dashboard holds the client-context object of the evaluation
// dashboard: language, active view, fetched data, notifications and the
// per-feed generation tokens that keep stale poll responses out.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"legalkit/internal/api"
	"legalkit/internal/i18n"
	"legalkit/internal/model"
	"legalkit/internal/request"
)

// Default timings.
const (
	DefaultRefreshInterval = 5 * time.Second
	DefaultNotificationTTL = 5 * time.Second
)

// ErrEmptyModelPath is returned when model discovery is asked for no path.
var ErrEmptyModelPath = errors.New("model path is empty")

// Backend is the evaluation service as seen by the session.
type Backend interface {
	Datasets(ctx context.Context) ([]string, error)
	SystemInfo(ctx context.Context) (model.SystemInfo, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, id string) (model.Task, error)
	GetResults(ctx context.Context, id string) (model.Results, error)
	DiscoverModels(ctx context.Context, path string) ([]model.DiscoveredModel, error)
	SubmitTask(ctx context.Context, req model.EvaluationRequest) (string, error)
}

// LangStore persists the language preference.
type LangStore interface {
	Save(lang i18n.Lang) error
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Options configures a Session.
type Options struct {
	Backend         Backend
	Lang            i18n.Lang
	Prefs           LangStore
	Clock           Clock
	Location        *time.Location
	Logger          zerolog.Logger
	RecentLimit     int
	RefreshInterval time.Duration
	NotificationTTL time.Duration
}

// TaskDetail is the in-memory task of the open detail view.
type TaskDetail struct {
	Task    model.Task
	Results model.Results
	// ResultsErr is set when lazily loaded results could not be fetched.
	ResultsErr string
}

// Snapshot is a consistent copy of the session for rendering.
type Snapshot struct {
	Lang          i18n.Lang
	View          View
	Datasets      []string
	System        model.SystemInfo
	SystemLoaded  bool
	Recent        []model.Task
	Tasks         []model.Task
	Detail        *TaskDetail
	Notifications []Notification
	LastRefresh   time.Time
}

// Session is the dashboard's client context. It is safe for concurrent use.
type Session struct {
	backend         Backend
	prefs           LangStore
	clock           Clock
	location        *time.Location
	logger          zerolog.Logger
	recentLimit     int
	refreshInterval time.Duration
	notificationTTL time.Duration

	mu            sync.Mutex
	lang          i18n.Lang
	view          View
	gens          generations
	datasets      []string
	system        model.SystemInfo
	systemLoaded  bool
	recent        []model.Task
	tasks         []model.Task
	detail        *TaskDetail
	notifications []Notification
	nextNote      uint64
	lastRefresh   time.Time
}

// NewSession validates options and returns a session on the Evaluation view.
func NewSession(opts Options) (*Session, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("dashboard: backend is required")
	}
	if !opts.Lang.Valid() {
		opts.Lang = i18n.DefaultLang
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = DefaultRecentLimit
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.NotificationTTL <= 0 {
		opts.NotificationTTL = DefaultNotificationTTL
	}
	return &Session{
		backend:         opts.Backend,
		prefs:           opts.Prefs,
		clock:           opts.Clock,
		location:        opts.Location,
		logger:          opts.Logger,
		recentLimit:     opts.RecentLimit,
		refreshInterval: opts.RefreshInterval,
		notificationTTL: opts.NotificationTTL,
		lang:            opts.Lang,
		view:            ViewEvaluation,
	}, nil
}

// Translator returns a translator for the current language.
func (s *Session) Translator() i18n.Translator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.translatorLocked()
}

func (s *Session) translatorLocked() i18n.Translator {
	return i18n.New(s.lang).WithLocation(s.location)
}

// RefreshInterval returns the polling period.
func (s *Session) RefreshInterval() time.Duration {
	return s.refreshInterval
}

// Snapshot copies the session state, dropping expired notifications.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = pruneNotifications(s.notifications, s.clock.Now())
	snap := Snapshot{
		Lang:          s.lang,
		View:          s.view,
		Datasets:      append([]string(nil), s.datasets...),
		System:        s.system,
		SystemLoaded:  s.systemLoaded,
		Recent:        append([]model.Task(nil), s.recent...),
		Tasks:         append([]model.Task(nil), s.tasks...),
		Notifications: append([]Notification(nil), s.notifications...),
		LastRefresh:   s.lastRefresh,
	}
	if s.detail != nil {
		detail := *s.detail
		snap.Detail = &detail
	}
	return snap
}

// Notify queues a transient notification and returns it.
func (s *Session) Notify(kind NotificationKind, message string) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifyLocked(kind, message)
}

func (s *Session) notifyLocked(kind NotificationKind, message string) Notification {
	s.nextNote++
	note := Notification{
		ID:      s.nextNote,
		Kind:    kind,
		Message: message,
		Expires: s.clock.Now().Add(s.notificationTTL),
	}
	s.notifications = append(s.notifications, note)
	return note
}

// Dismiss removes a notification before it expires.
func (s *Session) Dismiss(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.notifications[:0]
	for _, note := range s.notifications {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	s.notifications = kept
}

// failure logs err and queues an error notification "<prefix>: <reason>".
func (s *Session) failure(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := strings.TrimRight(s.translatorLocked().T(key), " :：")
	message := prefix + ": " + Reason(err)
	s.logger.Warn().Err(err).Str("key", key).Msg("dashboard request failed")
	s.notifyLocked(NotifyError, message)
}

// failureFor is failure for a fetch that may have gone stale. Failures of
// overtaken or invalidated fetches are logged but not notified.
func (s *Session) failureFor(tok Token, key string, err error) {
	s.mu.Lock()
	stale := s.gens.stale(tok)
	s.mu.Unlock()
	if stale {
		s.logger.Debug().Err(err).Str("key", key).Msg("dropped stale failure")
		return
	}
	s.failure(key, err)
}

// Reason returns the backend-provided message of err, or its text.
func Reason(err error) string {
	if msg, ok := api.ServerMessage(err); ok {
		return msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// View returns the active tab.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetView switches tabs. Leaving a view invalidates its in-flight fetches
// and closes the detail pane.
func (s *Session) SetView(view View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setViewLocked(view)
}

func (s *Session) setViewLocked(view View) {
	if view == s.view {
		return
	}
	for _, feed := range feedsOf(s.view) {
		s.gens.invalidate(feed)
	}
	if s.view == ViewResults {
		s.detail = nil
	}
	s.view = view
}

// Navigate switches tabs and loads the data the new tab shows.
func (s *Session) Navigate(ctx context.Context, view View) error {
	s.SetView(view)
	switch view {
	case ViewResults:
		return s.RefreshTasks(ctx)
	case ViewSystem:
		return s.RefreshSystem(ctx)
	default:
		return s.RefreshRecent(ctx)
	}
}

// LoadInitial fetches datasets, system info and recent tasks concurrently.
// Any failure is reported once as an initialization error.
func (s *Session) LoadInitial(ctx context.Context) error {
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error { return s.fetchDatasets(gctx) })
	group.Go(func() error { return s.fetchSystem(gctx) })
	group.Go(func() error { return s.fetchRecent(gctx) })
	if err := group.Wait(); err != nil {
		s.failure("err_init", err)
		return fmt.Errorf("load initial data: %w", err)
	}
	return nil
}

// RefreshDatasets reloads the dataset catalogue.
func (s *Session) RefreshDatasets(ctx context.Context) error {
	if err := s.fetchDatasets(ctx); err != nil {
		s.failure("err_load_datasets", err)
		return err
	}
	return nil
}

// RefreshSystem reloads system info.
func (s *Session) RefreshSystem(ctx context.Context) error {
	if err := s.fetchSystem(ctx); err != nil {
		s.failure("err_load_system", err)
		return err
	}
	return nil
}

// RefreshRecent reloads the recent-task view.
func (s *Session) RefreshRecent(ctx context.Context) error {
	if err := s.fetchRecent(ctx); err != nil {
		s.failure("err_load_tasks", err)
		return err
	}
	return nil
}

// RefreshTasks reloads the full task list.
func (s *Session) RefreshTasks(ctx context.Context) error {
	tok := s.begin(FeedTasks)
	tasks, err := s.backend.ListTasks(ctx)
	if err != nil {
		s.failureFor(tok, "err_load_tasks", err)
		return fmt.Errorf("list tasks: %w", err)
	}
	s.apply(tok, func() { s.tasks = tasks })
	return nil
}

// Tick is one refresh period: recent tasks always, the full list only
// while the Results view is active. Failures are notified and joined; the
// caller keeps ticking.
func (s *Session) Tick(ctx context.Context) error {
	var errs []error
	if err := s.RefreshRecent(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.View() == ViewResults {
		if err := s.RefreshTasks(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.mu.Lock()
	s.lastRefresh = s.clock.Now()
	s.notifications = pruneNotifications(s.notifications, s.lastRefresh)
	s.mu.Unlock()
	return errors.Join(errs...)
}

// Run ticks every refresh interval until ctx is cancelled. onTick, when
// set, is called after each tick.
func (s *Session) Run(ctx context.Context, onTick func(error)) error {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := s.Tick(ctx)
			if onTick != nil {
				onTick(err)
			}
		}
	}
}

// Submit builds, validates and posts a request. On success the recent
// view is reloaded and the Results view becomes active. The form is never
// modified; the returned overrides describe what the UI should reflect.
func (s *Session) Submit(ctx context.Context, form request.FormState) (string, request.Overrides, error) {
	req, overrides, err := request.BuildAndValidate(form)
	if err != nil {
		var validationErr *request.ValidationError
		if errors.As(err, &validationErr) {
			s.Notify(NotifyWarning, validationErr.Message(s.Translator()))
		}
		return "", overrides, err
	}
	return s.SubmitRequest(ctx, req, overrides)
}

// SubmitRequest posts an already validated request.
func (s *Session) SubmitRequest(ctx context.Context, req model.EvaluationRequest, overrides request.Overrides) (string, request.Overrides, error) {
	id, err := s.backend.SubmitTask(ctx, req)
	if err != nil {
		tr := s.Translator()
		message, ok := api.ServerMessage(err)
		if !ok {
			message = strings.TrimRight(tr.T("err_task_submit_failed"), " :：") + ": " + Reason(err)
		}
		s.logger.Warn().Err(err).Msg("submit task failed")
		s.Notify(NotifyError, message)
		return "", overrides, fmt.Errorf("submit task: %w", err)
	}
	s.logger.Info().Str("task_id", id).Strs("models", req.Models).Msg("task submitted")
	s.Notify(NotifySuccess, s.Translator().T("submit_success_prefix")+id)
	// Submission succeeded; reload failures are already notified.
	_ = s.RefreshRecent(ctx)
	_ = s.Navigate(ctx, ViewResults)
	return id, overrides, nil
}

// OpenTask fetches a task for the detail view. Results of completed tasks
// without inline results are loaded lazily; a failure there is kept in
// ResultsErr rather than returned.
func (s *Session) OpenTask(ctx context.Context, id string) (TaskDetail, error) {
	tok := s.begin(FeedDetail)
	detail, err := LoadTaskDetail(ctx, s.backend, id)
	if err != nil {
		s.failureFor(tok, "err_get_task_detail", err)
		return TaskDetail{}, err
	}
	if detail.ResultsErr != "" {
		s.logger.Warn().Str("task_id", id).Str("reason", detail.ResultsErr).Msg("results unavailable")
	}
	s.apply(tok, func() { s.detail = &detail })
	return detail, nil
}

// CloseTask closes the detail view and drops its in-flight fetches.
func (s *Session) CloseTask() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens.invalidate(FeedDetail)
	s.detail = nil
}

// DiscoverModels asks the backend for models under path.
func (s *Session) DiscoverModels(ctx context.Context, path string) ([]model.DiscoveredModel, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		s.Notify(NotifyWarning, s.Translator().T("err_input_model_path"))
		return nil, ErrEmptyModelPath
	}
	models, err := s.backend.DiscoverModels(ctx, path)
	if err != nil {
		s.failure("err_model_discovery_failed", err)
		return nil, fmt.Errorf("discover models: %w", err)
	}
	return models, nil
}

// Lang returns the current language.
func (s *Session) Lang() i18n.Lang {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// SetLanguage switches the UI language and persists the preference. The
// language changes even when persisting fails.
func (s *Session) SetLanguage(lang i18n.Lang) error {
	if !lang.Valid() {
		return fmt.Errorf("unsupported language %q", lang)
	}
	s.mu.Lock()
	s.lang = lang
	prefs := s.prefs
	s.mu.Unlock()
	if prefs == nil {
		return nil
	}
	if err := prefs.Save(lang); err != nil {
		s.logger.Warn().Err(err).Str("lang", string(lang)).Msg("save language preference")
		return fmt.Errorf("save language: %w", err)
	}
	return nil
}

// ToggleLanguage switches between English and Chinese.
func (s *Session) ToggleLanguage() (i18n.Lang, error) {
	next := s.Lang().Other()
	return next, s.SetLanguage(next)
}

func (s *Session) fetchDatasets(ctx context.Context) error {
	tok := s.begin(FeedDatasets)
	datasets, err := s.backend.Datasets(ctx)
	if err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}
	s.apply(tok, func() { s.datasets = datasets })
	return nil
}

func (s *Session) fetchSystem(ctx context.Context) error {
	tok := s.begin(FeedSystem)
	info, err := s.backend.SystemInfo(ctx)
	if err != nil {
		return fmt.Errorf("load system info: %w", err)
	}
	s.apply(tok, func() {
		s.system = info
		s.systemLoaded = true
	})
	return nil
}

func (s *Session) fetchRecent(ctx context.Context) error {
	tok := s.begin(FeedRecent)
	tasks, err := s.backend.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("load recent tasks: %w", err)
	}
	recent := RecentTasks(tasks, s.recentLimit)
	s.apply(tok, func() { s.recent = recent })
	return nil
}

func (s *Session) begin(feed Feed) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens.begin(feed)
}

// apply runs set under the lock when tok is still current.
func (s *Session) apply(tok Token, set func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gens.commit(tok) {
		s.logger.Debug().Int("feed", int(tok.feed)).Uint64("seq", tok.seq).Msg("dropped stale response")
		return false
	}
	set()
	return true
}
