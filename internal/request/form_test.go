package request

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"legalkit/internal/model"
)

func TestParseFormAppliesDefaults(t *testing.T) {
	form, err := ParseForm([]byte(`
model_type: hf
model_paths: [Qwen/Qwen2.5-7B]
datasets: [CaseGen, LexRAG]
judge:
  enabled: true
  spec: hf:Qwen/Qwen2.5-72B
  batch_size: 8
`))
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	if form.Task != model.PhaseAll || form.NumWorkers != 1 || form.RepetitionPenalty != 1.0 {
		t.Fatalf("expected defaults to survive, got %+v", form)
	}
	if form.Judge.BatchSize == nil || *form.Judge.BatchSize != 8 {
		t.Fatalf("expected judge batch size 8, got %v", form.Judge.BatchSize)
	}
}

func TestParseFormRejectsUnknownFields(t *testing.T) {
	_, err := ParseForm([]byte("modle_type: hf\n"))
	if err == nil || !strings.Contains(err.Error(), "parse form") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestParseFormRejectsBadEnums(t *testing.T) {
	if _, err := ParseForm([]byte("model_type: onnx\n")); err == nil {
		t.Fatalf("expected model_type error")
	}
	if _, err := ParseForm([]byte("task: train\n")); err == nil {
		t.Fatalf("expected task error")
	}
}

func TestParseFormRejectsMultipleDocuments(t *testing.T) {
	if _, err := ParseForm([]byte("task: all\n---\ntask: eval\n")); err == nil {
		t.Fatalf("expected multiple documents error")
	}
}

func TestParseFormEmptyIsDefault(t *testing.T) {
	form, err := ParseForm(nil)
	if err != nil {
		t.Fatalf("parse empty form: %v", err)
	}
	if form.ModelType != ModelLocal || form.Task != model.PhaseAll {
		t.Fatalf("expected default form, got %+v", form)
	}
}

func TestLoadFormMissingFile(t *testing.T) {
	_, err := LoadForm(filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil || !strings.Contains(err.Error(), "read form") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestLoadForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yml")
	if err := os.WriteFile(path, []byte("datasets: [A]\nmodel_paths: [m]\n"), 0o644); err != nil {
		t.Fatalf("write form: %v", err)
	}
	form, err := LoadForm(path)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	if _, _, err := BuildAndValidate(form); err != nil {
		t.Fatalf("expected loaded form to validate, got %v", err)
	}
}
