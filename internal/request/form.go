package request

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"legalkit/internal/model"
)

// ModelType selects how model paths are prefixed.
type ModelType string

const (
	ModelLocal ModelType = "local"
	ModelHF    ModelType = "hf"
	ModelAPI   ModelType = "api"
)

// FormState holds the raw values of the evaluation form.
type FormState struct {
	ModelType  ModelType `yaml:"model_type"`
	ModelPaths []string  `yaml:"model_paths"`
	APIURL     string    `yaml:"api_url"`
	APIKey     string    `yaml:"api_key"`

	Datasets []string `yaml:"datasets"`
	// SubTasks is the comma separated subtask text, e.g. "2-1,2-2".
	SubTasks string `yaml:"sub_tasks"`

	Task              model.TaskPhase `yaml:"task"`
	Accelerator       string          `yaml:"accelerator"`
	NumWorkers        int             `yaml:"num_workers"`
	TensorParallel    int             `yaml:"tensor_parallel"`
	BatchSize         int             `yaml:"batch_size"`
	Temperature       float64         `yaml:"temperature"`
	TopP              float64         `yaml:"top_p"`
	MaxTokens         int             `yaml:"max_tokens"`
	RepetitionPenalty float64         `yaml:"repetition_penalty"`

	JSONEval  JSONEvalForm  `yaml:"json_eval"`
	Retrieval RetrievalForm `yaml:"retrieval"`
	Judge     JudgeForm     `yaml:"judge"`
}

// JSONEvalForm is the offline evaluation block of the form.
type JSONEvalForm struct {
	Enabled bool `yaml:"enabled"`
	// Paths holds one dataset=path entry per line.
	Paths      string `yaml:"paths"`
	ModelLabel string `yaml:"model_label"`
}

// RetrievalForm is the retrieval stage block of the form.
type RetrievalForm struct {
	Enabled        bool   `yaml:"enabled"`
	Method         string `yaml:"method"`
	K              *int   `yaml:"k"`
	FaissType      string `yaml:"faiss_type"`
	EmbedBatchSize *int   `yaml:"embed_batch_size"`
	EmbedModelName string `yaml:"embed_model_name"`
	EmbedAPIURL    string `yaml:"embed_api_url"`
	EmbedAPIKey    string `yaml:"embed_api_key"`
}

// JudgeForm is the LLM judge block of the form.
type JudgeForm struct {
	Enabled           bool     `yaml:"enabled"`
	Spec              string   `yaml:"spec"`
	BatchSize         *int     `yaml:"batch_size"`
	TensorParallel    *int     `yaml:"tensor_parallel"`
	Temperature       *float64 `yaml:"temperature"`
	TopP              *float64 `yaml:"top_p"`
	MaxTokens         *int     `yaml:"max_tokens"`
	RepetitionPenalty *float64 `yaml:"repetition_penalty"`
	Accelerator       string   `yaml:"accelerator"`
	APIURL            string   `yaml:"api_url"`
	APIKey            string   `yaml:"api_key"`
}

// DefaultForm returns the form with its initial field values.
func DefaultForm() FormState {
	return FormState{
		ModelType:         ModelLocal,
		Task:              model.PhaseAll,
		NumWorkers:        1,
		TensorParallel:    1,
		BatchSize:         1,
		Temperature:       0.7,
		TopP:              0.9,
		MaxTokens:         2048,
		RepetitionPenalty: 1.0,
	}
}

// ParseForm decodes a YAML form file on top of the default form values.
func ParseForm(data []byte) (FormState, error) {
	form := DefaultForm()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&form); err != nil {
		if err == io.EOF {
			return form, nil
		}
		return FormState{}, fmt.Errorf("parse form: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return FormState{}, fmt.Errorf("parse form: multiple YAML documents are not supported")
		}
		return FormState{}, fmt.Errorf("parse form: %w", err)
	}
	switch form.ModelType {
	case "":
		form.ModelType = ModelLocal
	case ModelLocal, ModelHF, ModelAPI:
	default:
		return FormState{}, fmt.Errorf("parse form: unsupported model_type %q", form.ModelType)
	}
	if form.Task == "" {
		form.Task = model.PhaseAll
	}
	if !form.Task.Valid() {
		return FormState{}, fmt.Errorf("parse form: unsupported task %q", form.Task)
	}
	return form, nil
}

// LoadForm reads and parses a form file.
func LoadForm(path string) (FormState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FormState{}, fmt.Errorf("read form: %w", err)
	}
	return ParseForm(data)
}
