package model

import "strings"

// TaskPhase selects which pipeline stages the backend runs.
type TaskPhase string

const (
	PhaseAll   TaskPhase = "all"
	PhaseInfer TaskPhase = "infer"
	PhaseEval  TaskPhase = "eval"
)

// Valid reports whether the phase is one the backend accepts.
func (p TaskPhase) Valid() bool {
	switch p {
	case PhaseAll, PhaseInfer, PhaseEval:
		return true
	default:
		return false
	}
}

// Model spec prefixes understood by the backend.
const (
	APIModelPrefix = "api:"
	HFModelPrefix  = "hf:"
)

// Retrieval methods with special handling on the client.
const (
	RetrievalNone     = "none"
	RetrievalDenseAPI = "dense-api"
)

// IsDenseRetrieval reports whether a retrieval method uses a dense index.
func IsDenseRetrieval(method string) bool {
	return strings.HasPrefix(method, "dense")
}

// EvaluationRequest is the body of POST /submit_task.
type EvaluationRequest struct {
	Models            []string  `json:"models"`
	Datasets          []string  `json:"datasets"`
	Task              TaskPhase `json:"task"`
	NumWorkers        int       `json:"num_workers"`
	TensorParallel    int       `json:"tensor_parallel"`
	BatchSize         int       `json:"batch_size"`
	Temperature       float64   `json:"temperature"`
	TopP              float64   `json:"top_p"`
	MaxTokens         int       `json:"max_tokens"`
	RepetitionPenalty float64   `json:"repetition_penalty"`
	Accelerator       string    `json:"accelerator,omitempty"`
	SubTasks          []string  `json:"sub_tasks,omitempty"`

	APIURL string `json:"api_url,omitempty"`
	APIKey string `json:"api_key,omitempty"`

	JSONEval       bool     `json:"json_eval,omitempty"`
	JSONPaths      []string `json:"json_paths,omitempty"`
	JSONModelLabel string   `json:"json_model_label,omitempty"`

	RetrievalMethod    string `json:"retrieval_method,omitempty"`
	RetrievalK         *int   `json:"retrieval_k,omitempty"`
	RetrievalFaissType string `json:"retrieval_faiss_type,omitempty"`
	EmbedBatchSize     *int   `json:"embed_batch_size,omitempty"`
	EmbedModelName     string `json:"embed_model_name,omitempty"`
	EmbedAPIURL        string `json:"embed_api_url,omitempty"`
	EmbedAPIKey        string `json:"embed_api_key,omitempty"`

	Judge                  string   `json:"judge,omitempty"`
	JudgeBatchSize         *int     `json:"judge_batch_size,omitempty"`
	JudgeTensorParallel    *int     `json:"judge_tensor_parallel,omitempty"`
	JudgeTemperature       *float64 `json:"judge_temperature,omitempty"`
	JudgeTopP              *float64 `json:"judge_top_p,omitempty"`
	JudgeMaxTokens         *int     `json:"judge_max_tokens,omitempty"`
	JudgeRepetitionPenalty *float64 `json:"judge_repetition_penalty,omitempty"`
	JudgeAccelerator       string   `json:"judge_accelerator,omitempty"`
	JudgeAPIURL            string   `json:"judge_api_url,omitempty"`
	JudgeAPIKey            string   `json:"judge_api_key,omitempty"`
}

// HasAPIModel reports whether any model is served through a remote API.
func (r EvaluationRequest) HasAPIModel() bool {
	for _, m := range r.Models {
		if strings.HasPrefix(m, APIModelPrefix) {
			return true
		}
	}
	return false
}

// SubmitResponse is the success body of POST /submit_task.
type SubmitResponse struct {
	TaskID string `json:"task_id"`
}

// DiscoverRequest is the body of POST /discover_models.
type DiscoverRequest struct {
	Path string `json:"path"`
}

// DiscoveredModel is one entry returned by model discovery.
type DiscoveredModel struct {
	ModelPath string `json:"model_path"`
	ModelType string `json:"model_type"`
}

// ErrorResponse is the body the backend sends with non-2xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
