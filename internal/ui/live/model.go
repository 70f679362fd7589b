package live

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"legalkit/internal/dashboard"
	"legalkit/internal/render"
)

// Model renders the live dashboard using Bubble Tea.
type Model struct {
	ctx          context.Context
	session      *dashboard.Session
	state        State
	table        table.Model
	tickInterval time.Duration
	now          time.Time
	width        int
	noColor      bool
}

// Options configures the live UI model.
type Options struct {
	NoColor bool
	// TickInterval defaults to the session refresh interval.
	TickInterval time.Duration
}

// NewModel constructs a live UI model driving session.
func NewModel(ctx context.Context, session *dashboard.Session, opts Options) Model {
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = session.RefreshInterval()
	}
	r := render.New(session.Translator(), opts.NoColor)
	t := table.New(
		table.WithColumns(columnsForWidth(r, 0)),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(10),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{
		ctx:          ctx,
		session:      session,
		table:        t,
		tickInterval: tickInterval,
		now:          time.Now(),
		noColor:      opts.NoColor,
	}
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Init loads the initial data and starts polling.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.run(m.session.LoadInitial), tick(m.tickInterval))
}

// Update consumes key presses, snapshots and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-12, 3))
		m.table.SetColumns(columnsForWidth(m.renderer(), typed.Width))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case snapshotMsg:
		return m.apply(typed.snap), nil
	case tickMsg:
		m.now = time.Time(typed)
		return m, tea.Batch(m.run(m.session.Tick), tick(m.tickInterval))
	}
	return m, nil
}

// handleKey dispatches the action bound to a key.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch KeyAction(m.state, msg.String()) {
	case ActionQuit:
		return m, tea.Quit
	case ActionNextView:
		next := m.state.View.Next()
		return m, m.run(func(ctx context.Context) error { return m.session.Navigate(ctx, next) })
	case ActionRefresh:
		view := m.state.View
		return m, m.run(func(ctx context.Context) error {
			if err := m.session.Navigate(ctx, view); err != nil {
				return err
			}
			return m.session.Tick(ctx)
		})
	case ActionToggleLang:
		return m, m.run(func(context.Context) error {
			_, err := m.session.ToggleLanguage()
			return err
		})
	case ActionOpenTask:
		cursor := m.table.Cursor()
		if cursor < 0 || cursor >= len(m.state.Tasks) {
			return m, nil
		}
		id := m.state.Tasks[cursor].ID
		return m, m.run(func(ctx context.Context) error {
			_, err := m.session.OpenTask(ctx, id)
			return err
		})
	case ActionCloseTask:
		m.session.CloseTask()
		return m.apply(m.session.Snapshot()), nil
	}
	if m.state.View == dashboard.ViewResults && m.state.Detail == nil {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// apply reduces a snapshot and syncs the task table.
func (m Model) apply(snap dashboard.Snapshot) Model {
	m.state = Reduce(m.state, snap)
	r := m.renderer()
	m.table.SetColumns(columnsForWidth(r, m.width))
	m.table.SetRows(rowsForTasks(r, m.state.Tasks))
	if n := len(m.state.Tasks); n > 0 {
		if cursor := m.table.Cursor(); cursor < 0 {
			m.table.SetCursor(0)
		} else if cursor >= n {
			m.table.SetCursor(n - 1)
		}
	}
	if m.state.View == dashboard.ViewResults {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
	return m
}

// View renders the live UI.
func (m Model) View() string {
	r := m.renderer()
	parts := []string{renderHeader(r, m.state, m.noColor)}
	if notes := renderNotifications(m.state.Notifications, m.noColor); notes != "" {
		parts = append(parts, notes)
	}
	parts = append(parts, "", m.body(r), "", renderFooter(r, m.state, m.now, m.noColor))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// body renders the active tab.
func (m Model) body(r render.Renderer) string {
	if !m.state.Loaded {
		return r.Translator().T("loading")
	}
	switch m.state.View {
	case dashboard.ViewResults:
		if d := m.state.Detail; d != nil {
			return r.Heading("modal_task_detail") + "\n" + r.TaskDetail(d.Task, d.Results, d.ResultsErr)
		}
		if len(m.state.Tasks) == 0 {
			return r.TaskTable(nil)
		}
		return m.table.View()
	case dashboard.ViewSystem:
		if !m.state.SystemLoaded {
			return r.Translator().T("loading")
		}
		return r.SystemPanel(m.state.System)
	default:
		return renderEvaluation(r, m.state)
	}
}

func (m Model) renderer() render.Renderer {
	return render.New(m.session.Translator(), m.noColor)
}

// run executes fn against the session and reports the resulting snapshot.
// Failures already surface as session notifications.
func (m Model) run(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		_ = fn(m.ctx)
		return snapshotMsg{snap: m.session.Snapshot()}
	}
}

// tick emits a periodic tick message.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}
