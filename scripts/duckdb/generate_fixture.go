package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"legalkit/internal/duckdb"
	"legalkit/internal/model"
)

// fixtureConfig defines the JSON config for generating a DuckDB fixture.
type fixtureConfig struct {
	Name     string `json:"name"`
	Tasks    int    `json:"tasks"`
	Models   int    `json:"models"`
	Subtasks int    `json:"subtasks"`
}

func main() {
	configPath := flag.String("config", "", "path to fixture config JSON")
	outPath := flag.String("out", "", "output duckdb file path")
	flag.Parse()
	if *configPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: generate_fixture --config <path> --out <duckdb file>")
		os.Exit(2)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir output dir: %v\n", err)
		os.Exit(1)
	}
	if err := removeIfExists(*outPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := generateFixture(ctx, *outPath, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "generate fixture: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (fixtureConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixtureConfig{}, err
	}
	var cfg fixtureConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fixtureConfig{}, err
	}
	if cfg.Tasks <= 0 || cfg.Models <= 0 || cfg.Subtasks <= 0 {
		return fixtureConfig{}, fmt.Errorf("tasks, models and subtasks must be positive")
	}
	return cfg, nil
}

// generateFixture exports cfg.Tasks completed tasks with synthetic scores.
func generateFixture(ctx context.Context, path string, cfg fixtureConfig) error {
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	models := make([]string, 0, cfg.Models)
	for i := 0; i < cfg.Models; i++ {
		models = append(models, fmt.Sprintf("/models/%s-%d", cfg.Name, i))
	}
	for i := 0; i < cfg.Tasks; i++ {
		created := start.Add(time.Duration(i) * time.Hour)
		config, err := json.Marshal(model.EvaluationRequest{
			Models:          models,
			Datasets:        []string{"LawBench"},
			Task:            model.PhaseAll,
			RetrievalMethod: model.RetrievalNone,
		})
		if err != nil {
			return err
		}
		task := model.Task{
			ID:          deterministicID("task", i),
			Status:      model.StatusCompleted,
			Progress:    100,
			Config:      config,
			CreatedAt:   model.Timestamp{Time: created},
			CompletedAt: model.Timestamp{Time: created.Add(30 * time.Minute)},
		}
		if _, err := duckdb.ExportTask(ctx, db, task, syntheticResults(models, cfg.Subtasks, i), created); err != nil {
			return fmt.Errorf("export task %d: %w", i, err)
		}
	}
	return nil
}

// syntheticResults builds a deterministic score grid for one task.
func syntheticResults(models []string, subtasks, taskIndex int) model.Results {
	results := model.Results{}
	for m, modelID := range models {
		records := map[string]model.ResultRecord{}
		for s := 0; s < subtasks; s++ {
			score := float64((taskIndex*7+m*3+s)%100) / 100
			records[fmt.Sprintf("2-%d", s+1)] = model.ResultRecord{
				model.ScoreKey:     score,
				"judge_score":      score * 0.9,
				"classic_accuracy": score,
			}
		}
		results[modelID] = records
	}
	return results
}

// removeIfExists deletes an existing fixture file so we always start fresh.
func removeIfExists(path string) error {
	err := os.Remove(path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return fmt.Errorf("remove existing fixture: %w", err)
}

// deterministicID generates a repeatable UUID for fixture rows.
func deterministicID(prefix string, index int) string {
	return uuid.NewSHA1(fixtureNamespace, []byte(fmt.Sprintf("%s-%d", prefix, index))).String()
}

// fixtureNamespace ensures stable UUIDs across fixture runs.
var fixtureNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
