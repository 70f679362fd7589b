package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"legalkit/internal/model"
	"legalkit/internal/render"
)

// ExportSummary reports what one ExportTask call wrote.
type ExportSummary struct {
	TaskID   string
	Models   int
	Datasets int
	Metrics  int
}

// ExportTask upserts a task row and replaces its config and metric rows.
// Re-exporting the same task is idempotent.
func ExportTask(ctx context.Context, db *sql.DB, task model.Task, results model.Results, now time.Time) (ExportSummary, error) {
	if ctx == nil {
		return ExportSummary{}, errors.New("duckdb: context is nil")
	}
	if db == nil {
		return ExportSummary{}, errors.New("duckdb: db is nil")
	}
	if task.ID == "" {
		return ExportSummary{}, errors.New("duckdb: task id is required")
	}
	if results == nil {
		results = task.Results
	}

	var configValue, configKey any
	if len(task.Config) > 0 && string(task.Config) != "null" {
		canonical, err := CanonicalJSON(task.Config)
		if err != nil {
			return ExportSummary{}, fmt.Errorf("canonical config: %w", err)
		}
		configValue = string(canonical)
		configKey = fingerprintBytes(canonical)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ExportSummary{}, fmt.Errorf("begin export: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tasks (task_id, status, progress, created_at, started_at, completed_at, error, config, config_key, exported_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (task_id) DO UPDATE SET
		   status = excluded.status,
		   progress = excluded.progress,
		   created_at = excluded.created_at,
		   started_at = excluded.started_at,
		   completed_at = excluded.completed_at,
		   error = excluded.error,
		   config = excluded.config,
		   config_key = excluded.config_key,
		   exported_at = excluded.exported_at`,
		task.ID,
		string(task.Status),
		task.Progress,
		nullableTime(task.CreatedAt.Time),
		nullableTime(task.StartedAt.Time),
		nullableTime(task.CompletedAt.Time),
		nullableString(task.Error),
		configValue,
		configKey,
		now.UTC(),
	); err != nil {
		return ExportSummary{}, fmt.Errorf("upsert task: %w", err)
	}

	for _, table := range []string{"task_models", "task_datasets", "metrics"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE task_id = ?", task.ID); err != nil {
			return ExportSummary{}, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	summary := ExportSummary{TaskID: task.ID}
	cfg := task.ParsedConfig()
	for _, m := range dedupe(cfg.Models) {
		if _, err := tx.ExecContext(ctx, "INSERT INTO task_models (task_id, model) VALUES (?, ?)", task.ID, m); err != nil {
			return ExportSummary{}, fmt.Errorf("insert model: %w", err)
		}
		summary.Models++
	}
	for _, d := range dedupe(cfg.Datasets) {
		if _, err := tx.ExecContext(ctx, "INSERT INTO task_datasets (task_id, dataset) VALUES (?, ?)", task.ID, d); err != nil {
			return ExportSummary{}, fmt.Errorf("insert dataset: %w", err)
		}
		summary.Datasets++
	}

	for _, row := range metricRows(results) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO metrics (metric_id, task_id, model, subtask, metric_key, metric_group, value_num, value_text)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), task.ID, row.model, row.subtask, row.key, row.group, row.num, row.text,
		); err != nil {
			return ExportSummary{}, fmt.Errorf("insert metric: %w", err)
		}
		summary.Metrics++
	}

	if err := tx.Commit(); err != nil {
		return ExportSummary{}, fmt.Errorf("commit export: %w", err)
	}
	return summary, nil
}

// ScorePoint is one primary score from the v_scores view.
type ScorePoint struct {
	TaskID    string
	CreatedAt time.Time
	Model     string
	Subtask   string
	Score     float64
}

// Scores lists exported primary scores, oldest task first. An empty model
// returns every model.
func Scores(ctx context.Context, db *sql.DB, modelID string) ([]ScorePoint, error) {
	if db == nil {
		return nil, errors.New("duckdb: db is nil")
	}
	query := `SELECT task_id, COALESCE(created_at, TIMESTAMP '1970-01-01'), model, subtask, score FROM v_scores`
	var args []any
	if modelID != "" {
		query += " WHERE model = ?"
		args = append(args, modelID)
	}
	query += " ORDER BY created_at, task_id, model, subtask"
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()
	var out []ScorePoint
	for rows.Next() {
		var p ScorePoint
		if err := rows.Scan(&p.TaskID, &p.CreatedAt, &p.Model, &p.Subtask, &p.Score); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type metricRow struct {
	model, subtask, key, group string
	num, text                  any
}

// metricRows flattens results in deterministic order.
func metricRows(results model.Results) []metricRow {
	var rows []metricRow
	for _, modelID := range sortedKeys(results) {
		subtasks := results[modelID]
		for _, subtask := range sortedKeys(subtasks) {
			rec := subtasks[subtask]
			for _, key := range render.SortedKeys(rec) {
				row := metricRow{model: modelID, subtask: subtask, key: key, group: render.GroupOf(key).String()}
				if n, ok := model.Number(rec[key]); ok {
					row.num = n
				} else {
					row.text = render.FormatMetric(rec[key])
				}
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.UTC()
}
