package live

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"legalkit/internal/api"
	"legalkit/internal/dashboard"
	"legalkit/internal/i18n"
	"legalkit/internal/model"
	"legalkit/internal/testutil"
)

func newTestModel(t *testing.T, tasks ...model.Task) (Model, *testutil.BackendInstance) {
	t.Helper()
	backend := testutil.StartBackend(t, testutil.BackendConfig{Tasks: tasks})
	client, err := api.NewClient(backend.BaseURL, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	session, err := dashboard.NewSession(dashboard.Options{
		Backend:  client,
		Lang:     i18n.English,
		Location: time.UTC,
		Logger:   zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	ctx := testutil.Context(t, 5*time.Second)
	return NewModel(ctx, session, Options{NoColor: true, TickInterval: time.Hour}), backend
}

// send delivers msg and synchronously runs any returned command.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	if out := cmd(); out != nil {
		if _, ok := out.(snapshotMsg); ok {
			next, _ = m.Update(out)
			m = next.(Model)
		}
	}
	return m
}

func load(t *testing.T, m Model) Model {
	t.Helper()
	return send(t, m, m.run(m.session.LoadInitial)())
}

// TestModelNavigatesToDetail walks tab, enter and esc through the Results view.
func TestModelNavigatesToDetail(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	m, backend := newTestModel(t, model.Task{ID: "task-0001", Status: model.StatusCompleted, CreatedAt: model.Timestamp{Time: created}})
	backend.Stub.SetResults("task-0001", model.Results{"m": {"1-1": {"score": 0.9}}})

	m = load(t, m)
	view := m.View()
	if !strings.Contains(view, "Recent Tasks") || !strings.Contains(view, "task-000...") {
		t.Fatalf("expected recent tasks on the landing view:\n%s", view)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.State().View != dashboard.ViewResults || len(m.State().Tasks) != 1 {
		t.Fatalf("expected results view with tasks, got %+v", m.State())
	}
	if cursor := m.table.Cursor(); cursor != 0 {
		t.Fatalf("expected cursor on the first task after an empty load, got %d", cursor)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State().Detail == nil {
		t.Fatalf("expected detail to open")
	}
	if view := m.View(); !strings.Contains(view, "Task Detail") || !strings.Contains(view, "0.900") {
		t.Fatalf("expected detail with results:\n%s", view)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State().Detail != nil {
		t.Fatalf("expected detail to close")
	}
}

// TestModelToggleLanguage verifies the view re-localizes after "l".
func TestModelToggleLanguage(t *testing.T) {
	m, _ := newTestModel(t)
	m = load(t, m)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if m.State().Lang != i18n.Chinese {
		t.Fatalf("expected zh, got %q", m.State().Lang)
	}
	if view := m.View(); !strings.Contains(view, "评测任务") {
		t.Fatalf("expected chinese tabs:\n%s", view)
	}
}

// TestModelShowsInitFailure verifies load failures surface as a notification.
func TestModelShowsInitFailure(t *testing.T) {
	m, backend := newTestModel(t)
	backend.Close()
	m = load(t, m)
	if len(m.State().Notifications) == 0 {
		t.Fatalf("expected an init failure notification")
	}
	if view := m.View(); !strings.Contains(view, "Failed to load initial data") {
		t.Fatalf("expected init failure banner:\n%s", view)
	}
}

// TestModelQuit verifies q stops the program.
func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}
