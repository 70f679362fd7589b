package request

import (
	"strings"

	"legalkit/internal/i18n"
	"legalkit/internal/model"
)

// Rule identifies a client-side precondition of the backend.
type Rule int

const (
	RuleNeedModel Rule = iota + 1
	RuleNeedDataset
	RuleNeedAPI
	RuleNeedJSONPaths
	RuleJSONTaskEval
	RuleNeedEmbedAPI
)

var ruleKeys = map[Rule]string{
	RuleNeedModel:     "validate_need_model",
	RuleNeedDataset:   "validate_need_dataset",
	RuleNeedAPI:       "validate_need_api",
	RuleNeedJSONPaths: "validate_need_json_paths",
	RuleJSONTaskEval:  "validate_json_task_eval",
	RuleNeedEmbedAPI:  "validate_need_embed_api",
}

// MessageKey returns the translation key for the rule's message.
func (r Rule) MessageKey() string {
	return ruleKeys[r]
}

// ValidationError reports the first violated rule.
type ValidationError struct {
	Rule Rule
}

// Error renders the rule message in English.
func (err *ValidationError) Error() string {
	if err == nil {
		return "request validation failed"
	}
	return i18n.New(i18n.English).T(err.Rule.MessageKey())
}

// Message renders the rule message with tr.
func (err *ValidationError) Message(tr i18n.Translator) string {
	return tr.T(err.Rule.MessageKey())
}

// Validate checks the request against backend preconditions and stops at
// the first violation.
func Validate(req model.EvaluationRequest) error {
	if len(req.Models) == 0 {
		return &ValidationError{Rule: RuleNeedModel}
	}
	if len(req.Datasets) == 0 {
		return &ValidationError{Rule: RuleNeedDataset}
	}
	if req.HasAPIModel() && (blank(req.APIURL) || blank(req.APIKey)) {
		return &ValidationError{Rule: RuleNeedAPI}
	}
	if req.JSONEval {
		if len(req.JSONPaths) == 0 {
			return &ValidationError{Rule: RuleNeedJSONPaths}
		}
		if req.Task != model.PhaseEval {
			return &ValidationError{Rule: RuleJSONTaskEval}
		}
	}
	if req.RetrievalMethod == model.RetrievalDenseAPI {
		if blank(req.EmbedAPIURL) || blank(req.EmbedAPIKey) || blank(req.EmbedModelName) {
			return &ValidationError{Rule: RuleNeedEmbedAPI}
		}
	}
	return nil
}

// BuildAndValidate builds the request from the form and validates it.
func BuildAndValidate(form FormState) (model.EvaluationRequest, Overrides, error) {
	req, overrides := Build(form)
	if err := Validate(req); err != nil {
		return req, overrides, err
	}
	return req, overrides, nil
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}
