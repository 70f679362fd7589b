//go:build cucumber

package dashboard

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/rs/zerolog"

	"legalkit/internal/api"
	"legalkit/internal/i18n"
	"legalkit/internal/model"
	"legalkit/internal/render"
	"legalkit/internal/testutil"
)

// TestDashboardScenarios runs the dashboard feature scenarios against the
// stand-in backend.
func TestDashboardScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "features", "dashboard.feature")
	suite := godog.TestSuite{
		Name: "dashboard",
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			InitializeDashboardScenario(t, sc)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{featurePath},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeDashboardScenario wires steps for dashboard scenarios.
func InitializeDashboardScenario(t *testing.T, ctx *godog.ScenarioContext) {
	state := &dashboardScenarioState{t: t}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^the backend has (\d+) tasks created one minute apart$`, state.givenTasks)
	ctx.Step(`^a completed task "([^"]+)" whose results fail with "([^"]+)"$`, state.givenFailingResults)
	ctx.Step(`^the backend rejects submissions with "([^"]+)"$`, state.givenRejectedSubmissions)
	ctx.Step(`^the dashboard loads its initial data$`, state.whenLoadInitial)
	ctx.Step(`^I open task "([^"]+)"$`, state.whenOpenTask)
	ctx.Step(`^I submit a valid evaluation form$`, state.whenSubmit)
	ctx.Step(`^the recent view lists (\d+) tasks newest first$`, state.thenRecent)
	ctx.Step(`^the detail shows "([^"]+)"$`, state.thenDetailShows)
	ctx.Step(`^an error notification says "([^"]+)"$`, state.thenErrorNotification)
}

type dashboardScenarioState struct {
	t       *testing.T
	backend *testutil.BackendInstance
	session *Session
	detail  TaskDetail
}

func (s *dashboardScenarioState) reset() {
	s.backend = testutil.StartBackend(s.t, testutil.BackendConfig{})
	s.session = nil
	s.detail = TaskDetail{}
}

func (s *dashboardScenarioState) givenTasks(count int) error {
	for i := 0; i < count; i++ {
		s.backend.Stub.AddTask(model.Task{
			ID:        fmt.Sprintf("task-%d", i),
			Status:    model.StatusPending,
			CreatedAt: model.Timestamp{Time: start.Add(time.Duration(i) * time.Minute)},
		})
	}
	return nil
}

func (s *dashboardScenarioState) givenFailingResults(id, message string) error {
	s.backend.Stub.AddTask(model.Task{
		ID:        id,
		Status:    model.StatusCompleted,
		CreatedAt: model.Timestamp{Time: start},
	})
	s.backend.Stub.SetResultsError(id, message)
	return nil
}

func (s *dashboardScenarioState) givenRejectedSubmissions(message string) error {
	s.backend.Stub.FailSubmissions(message)
	return nil
}

func (s *dashboardScenarioState) ensureSession() (*Session, error) {
	if s.session != nil {
		return s.session, nil
	}
	client, err := api.NewClient(s.backend.BaseURL, nil, zerolog.Nop())
	if err != nil {
		return nil, err
	}
	session, err := NewSession(Options{
		Backend:  client,
		Clock:    testutil.NewFakeClock(start),
		Location: time.UTC,
		Logger:   zerolog.Nop(),
	})
	if err != nil {
		return nil, err
	}
	s.session = session
	return session, nil
}

func (s *dashboardScenarioState) whenLoadInitial() error {
	session, err := s.ensureSession()
	if err != nil {
		return err
	}
	return session.LoadInitial(testutil.Context(s.t, 2*time.Second))
}

func (s *dashboardScenarioState) whenOpenTask(id string) error {
	session, err := s.ensureSession()
	if err != nil {
		return err
	}
	session.SetView(ViewResults)
	detail, err := session.OpenTask(testutil.Context(s.t, 2*time.Second), id)
	if err != nil {
		return err
	}
	s.detail = detail
	return nil
}

func (s *dashboardScenarioState) whenSubmit() error {
	session, err := s.ensureSession()
	if err != nil {
		return err
	}
	form := validForm()
	if _, _, err := session.Submit(testutil.Context(s.t, 2*time.Second), form); err == nil {
		return fmt.Errorf("expected the submission to be rejected")
	}
	return nil
}

func (s *dashboardScenarioState) thenRecent(count int) error {
	recent := s.session.Snapshot().Recent
	if len(recent) != count {
		return fmt.Errorf("expected %d recent tasks, got %d", count, len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].CreatedAt.Time.After(recent[i-1].CreatedAt.Time) {
			return fmt.Errorf("recent tasks out of order at %d", i)
		}
	}
	return nil
}

func (s *dashboardScenarioState) thenDetailShows(text string) error {
	view := render.New(i18n.New(i18n.English), true).
		TaskDetail(s.detail.Task, s.detail.Results, s.detail.ResultsErr)
	if !strings.Contains(view, text) {
		return fmt.Errorf("expected %q in detail:\n%s", text, view)
	}
	return nil
}

func (s *dashboardScenarioState) thenErrorNotification(message string) error {
	for _, note := range s.session.Snapshot().Notifications {
		if note.Kind == NotifyError && note.Message == message {
			return nil
		}
	}
	return fmt.Errorf("expected error notification %q", message)
}
