package live

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"legalkit/internal/model"
	"legalkit/internal/render"
)

// Default column widths: id, status, datasets, models, created, progress.
var columnWidths = []int{12, 10, 24, 32, 20, 8}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = styles.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// columnsForWidth localizes headers and shrinks the free-text columns to fit.
func columnsForWidth(r render.Renderer, width int) []table.Column {
	headers := r.TaskHeaders()
	widths := append([]int(nil), columnWidths...)
	if width > 0 {
		total := 0
		for _, w := range widths {
			total += w + 2
		}
		for excess := total - width; excess > 0; excess-- {
			switch {
			case widths[3] > 12:
				widths[3]--
			case widths[2] > 10:
				widths[2]--
			default:
				excess = 0
			}
		}
	}
	columns := make([]table.Column, len(headers))
	for i, title := range headers {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}
	return columns
}

// rowsForTasks converts tasks into table rows.
func rowsForTasks(r render.Renderer, tasks []model.Task) []table.Row {
	rows := make([]table.Row, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, table.Row(r.TaskRow(task)))
	}
	return rows
}
