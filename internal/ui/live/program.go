package live

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"legalkit/internal/dashboard"
)

// Run shows the live dashboard on stdout until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, session *dashboard.Session, stdout io.Writer, opts Options) error {
	if stdout == nil {
		stdout = os.Stdout
	}
	model := NewModel(ctx, session, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
