package duckdb_test

import (
	"encoding/json"
	"testing"
	"time"

	"legalkit/internal/duckdb"
	"legalkit/internal/model"
)

func exportFixture() (model.Task, model.Results) {
	task := model.Task{
		ID:        "task-1",
		Status:    model.StatusCompleted,
		Progress:  100,
		CreatedAt: model.Timestamp{Time: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		Config:    json.RawMessage(`{"datasets":["LawBench","LawBench"],"models":["hf::qwen"]}`),
	}
	results := model.Results{
		"hf::qwen": {
			"1-1": {"score": 0.91, "judge_score": 0.8, "classic_bleu": 12.5, "note": "ok"},
			"1-2": {"score": "n/a"},
		},
	}
	return task, results
}

// TestExportTaskIdempotent verifies a re-export replaces rather than duplicates rows.
func TestExportTaskIdempotent(t *testing.T) {
	db, ctx := openTestDB(t)
	task, results := exportFixture()
	now := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		summary, err := duckdb.ExportTask(ctx, db, task, results, now)
		if err != nil {
			t.Fatalf("export %d: %v", i, err)
		}
		if summary.Models != 1 || summary.Datasets != 1 || summary.Metrics != 5 {
			t.Fatalf("unexpected summary %+v", summary)
		}
	}
	if got := queryInt(t, ctx, db, "SELECT COUNT(*) FROM tasks"); got != 1 {
		t.Fatalf("expected one task row, got %d", got)
	}
	if got := queryInt(t, ctx, db, "SELECT COUNT(*) FROM metrics WHERE task_id = 'task-1'"); got != 5 {
		t.Fatalf("expected five metric rows, got %d", got)
	}
	if got := queryInt(t, ctx, db, "SELECT COUNT(*) FROM metrics WHERE metric_group = 'judge'"); got != 1 {
		t.Fatalf("expected one judge metric, got %d", got)
	}
	if got := queryInt(t, ctx, db, "SELECT COUNT(*) FROM metrics WHERE value_text = 'n/a' AND value_num IS NULL"); got != 1 {
		t.Fatalf("expected the text score to be kept as text")
	}
}

// TestScoresOnlyNumericPrimary verifies the score view skips non-numeric scores.
func TestScoresOnlyNumericPrimary(t *testing.T) {
	db, ctx := openTestDB(t)
	task, results := exportFixture()
	if _, err := duckdb.ExportTask(ctx, db, task, results, time.Now()); err != nil {
		t.Fatalf("export: %v", err)
	}
	points, err := duckdb.Scores(ctx, db, "hf::qwen")
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if len(points) != 1 || points[0].Subtask != "1-1" || points[0].Score != 0.91 {
		t.Fatalf("unexpected points %+v", points)
	}
	others, err := duckdb.Scores(ctx, db, "other")
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if len(others) != 0 {
		t.Fatalf("expected no points for unknown model, got %+v", others)
	}
}

// TestExportUsesInlineResults verifies inline task results are exported when none are passed.
func TestExportUsesInlineResults(t *testing.T) {
	db, ctx := openTestDB(t)
	task, results := exportFixture()
	task.Results = results
	summary, err := duckdb.ExportTask(ctx, db, task, nil, time.Now())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if summary.Metrics != 5 {
		t.Fatalf("expected inline metrics, got %+v", summary)
	}
}

// TestConfigFingerprintIgnoresKeyOrder verifies configs are stored canonically.
func TestConfigFingerprintIgnoresKeyOrder(t *testing.T) {
	left, err := duckdb.FingerprintJSON(json.RawMessage(`{"a":1,"b":[1,2]}`))
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	right, err := duckdb.FingerprintJSON(json.RawMessage(`{"b":[1,2],"a":1}`))
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if left != right {
		t.Fatalf("expected stable fingerprint")
	}
}

// TestExportRequiresTaskID verifies argument validation.
func TestExportRequiresTaskID(t *testing.T) {
	db, ctx := openTestDB(t)
	if _, err := duckdb.ExportTask(ctx, db, model.Task{}, nil, time.Now()); err == nil {
		t.Fatalf("expected missing id error")
	}
}
