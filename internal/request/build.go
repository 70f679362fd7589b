package request

import (
	"strings"

	"legalkit/internal/model"
)

// DefaultJudgeBatchSize applies when a judge is configured without a batch size.
const DefaultJudgeBatchSize = 4

// Overrides records values the builder forced in the request that the form
// should reflect back to the user.
type Overrides struct {
	TaskForcedEval      bool
	RetrievalForcedNone bool
}

// ApplyTo mirrors the forced task phase into the form.
func (o Overrides) ApplyTo(form *FormState) {
	if form == nil {
		return
	}
	if o.TaskForcedEval {
		form.Task = model.PhaseEval
	}
}

// Build converts form values into the submission request. The form is not
// modified; forced values are reported through Overrides.
func Build(form FormState) (model.EvaluationRequest, Overrides) {
	var overrides Overrides
	req := model.EvaluationRequest{
		Models:            buildModels(form.ModelType, form.ModelPaths),
		Datasets:          uniqueTrimmed(form.Datasets),
		Task:              form.Task,
		NumWorkers:        form.NumWorkers,
		TensorParallel:    form.TensorParallel,
		BatchSize:         form.BatchSize,
		Temperature:       form.Temperature,
		TopP:              form.TopP,
		MaxTokens:         form.MaxTokens,
		RepetitionPenalty: form.RepetitionPenalty,
		Accelerator:       strings.TrimSpace(form.Accelerator),
		SubTasks:          splitSubTasks(form.SubTasks),
	}

	if form.JSONEval.Enabled {
		req.JSONEval = true
		req.JSONPaths = splitLines(form.JSONEval.Paths)
		req.JSONModelLabel = strings.TrimSpace(form.JSONEval.ModelLabel)
		if req.Task != model.PhaseEval {
			overrides.TaskForcedEval = true
		}
		req.Task = model.PhaseEval
	}

	if form.Retrieval.Enabled {
		applyRetrieval(&req, form.Retrieval)
	} else {
		req.RetrievalMethod = model.RetrievalNone
		overrides.RetrievalForcedNone = true
	}

	if form.Judge.Enabled {
		applyJudge(&req, form.Judge)
	}

	if form.ModelType == ModelAPI {
		req.APIURL = strings.TrimSpace(form.APIURL)
		req.APIKey = strings.TrimSpace(form.APIKey)
	}
	return req, overrides
}

func applyRetrieval(req *model.EvaluationRequest, form RetrievalForm) {
	method := strings.TrimSpace(form.Method)
	req.RetrievalMethod = method
	req.RetrievalK = copyInt(form.K)
	if !model.IsDenseRetrieval(method) {
		return
	}
	req.RetrievalFaissType = strings.TrimSpace(form.FaissType)
	req.EmbedBatchSize = copyInt(form.EmbedBatchSize)
	if method != model.RetrievalDenseAPI {
		return
	}
	req.EmbedModelName = strings.TrimSpace(form.EmbedModelName)
	req.EmbedAPIURL = strings.TrimSpace(form.EmbedAPIURL)
	req.EmbedAPIKey = strings.TrimSpace(form.EmbedAPIKey)
}

func applyJudge(req *model.EvaluationRequest, form JudgeForm) {
	req.Judge = strings.TrimSpace(form.Spec)
	req.JudgeBatchSize = copyInt(form.BatchSize)
	req.JudgeTensorParallel = copyInt(form.TensorParallel)
	req.JudgeTemperature = copyFloat(form.Temperature)
	req.JudgeTopP = copyFloat(form.TopP)
	req.JudgeMaxTokens = copyInt(form.MaxTokens)
	req.JudgeRepetitionPenalty = copyFloat(form.RepetitionPenalty)
	req.JudgeAccelerator = strings.TrimSpace(form.Accelerator)
	req.JudgeAPIURL = strings.TrimSpace(form.APIURL)
	req.JudgeAPIKey = strings.TrimSpace(form.APIKey)
	if req.Judge != "" && (req.JudgeBatchSize == nil || *req.JudgeBatchSize == 0) {
		size := DefaultJudgeBatchSize
		req.JudgeBatchSize = &size
	}
}

// buildModels prefixes every non-empty path according to the model type.
func buildModels(kind ModelType, paths []string) []string {
	prefix := ""
	switch kind {
	case ModelAPI:
		prefix = model.APIModelPrefix
	case ModelHF:
		prefix = model.HFModelPrefix
	}
	models := make([]string, 0, len(paths))
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if prefix != "" && !strings.HasPrefix(path, prefix) {
			path = prefix + path
		}
		models = append(models, path)
	}
	return models
}

// uniqueTrimmed drops blanks and duplicates while keeping selection order.
func uniqueTrimmed(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func splitSubTasks(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
