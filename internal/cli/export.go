package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"legalkit/internal/dashboard"
	"legalkit/internal/duckdb"
	"legalkit/internal/render"
)

// now is a test seam for export timestamps.
var now = time.Now

// runExport builds the handler for the export command.
func runExport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		globals := addGlobalFlags(fs)
		dbPath := fs.String("db", "", "DuckDB file to write")
		ids, code, ok := parseCommandFlags(cmd, fs, args, stdout, stderr)
		if !ok {
			return code
		}
		if *dbPath == "" {
			fmt.Fprintln(stderr, "Missing --db")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		e, err := loadEnv(globals, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		ctx, stop := signalContext()
		defer stop()

		if len(ids) == 0 {
			listCtx, cancel := e.requestContext()
			tasks, err := e.backend.ListTasks(listCtx)
			cancel()
			if err != nil {
				return e.failure(stderr, "err_load_tasks", err)
			}
			for _, task := range tasks {
				ids = append(ids, task.ID)
			}
		}

		db, err := duckdb.Open(ctx, *dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open database: %v\n", err)
			return ExitError
		}
		defer db.Close()

		exported := 0
		for _, id := range ids {
			if err := exportOne(ctx, e, db, id); err != nil {
				return e.failure(stderr, "err_get_task_detail", err)
			}
			exported++
		}
		fmt.Fprintln(stdout, e.tr.T("export_done")+strconv.Itoa(exported))
		return ExitOK
	}
}

// exportOne loads a task with its results and writes it to db. Tasks whose
// results are unavailable are exported without metrics.
func exportOne(ctx context.Context, e *env, db *sql.DB, id string) error {
	reqCtx, cancel := e.requestContext()
	defer cancel()
	detail, err := dashboard.LoadTaskDetail(reqCtx, e.backend, id)
	if err != nil {
		return err
	}
	if detail.ResultsErr != "" {
		e.logger.Warn().Str("task_id", id).Str("reason", detail.ResultsErr).Msg("exporting task without results")
	}
	summary, err := duckdb.ExportTask(ctx, db, detail.Task, detail.Results, now())
	if err != nil {
		return fmt.Errorf("export task %s: %w", id, err)
	}
	e.logger.Debug().
		Str("task_id", summary.TaskID).
		Int("metrics", summary.Metrics).
		Msg("task exported")
	return nil
}

// runScores builds the handler for the scores command.
func runScores(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		globals := addGlobalFlags(fs)
		dbPath := fs.String("db", "", "DuckDB file written by export")
		modelID := fs.String("model", "", "Only show this model")
		positional, code, ok := parseCommandFlags(cmd, fs, args, stdout, stderr)
		if !ok {
			return code
		}
		if !expectArgs(cmd, positional, 0, "", stderr) {
			return ExitUsage
		}
		if *dbPath == "" {
			fmt.Fprintln(stderr, "Missing --db")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		e, err := loadEnv(globals, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		ctx, cancel := e.requestContext()
		defer cancel()
		db, err := duckdb.Open(ctx, *dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open database: %v\n", err)
			return ExitError
		}
		defer db.Close()
		points, err := duckdb.Scores(ctx, db, *modelID)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to query scores: %v\n", err)
			return ExitError
		}
		if len(points) == 0 {
			fmt.Fprintln(stdout, e.tr.T("detail_no_results"))
			return ExitOK
		}
		fmt.Fprintln(stdout, scoreTable(e, points))
		return ExitOK
	}
}

// scoreTable renders exported scores with their badge class.
func scoreTable(e *env, points []duckdb.ScorePoint) string {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			render.ShortID(p.TaskID),
			e.tr.FormatDate(p.CreatedAt),
			p.Model,
			p.Subtask,
			render.FormatMetric(p.Score),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(
			e.tr.T("detail_task_id"),
			e.tr.T("detail_created_at"),
			e.tr.T("model"),
			e.tr.T("subtask"),
			e.tr.T("results_primary"),
		).
		Rows(rows...)
	if !e.cfg.UI.NoColor {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			if col == 4 && row >= 0 && row < len(points) {
				return style.Foreground(render.SeverityColor(render.ScoreClass(points[row].Score)))
			}
			return style
		})
	}
	return t.String()
}
