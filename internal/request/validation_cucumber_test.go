//go:build cucumber

package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"legalkit/internal/model"
)

// TestValidationScenarios runs the request validation feature scenarios.
func TestValidationScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "features", "request-validation.feature")
	suite := godog.TestSuite{
		Name:                "request-validation",
		ScenarioInitializer: InitializeValidationScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{featurePath},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeValidationScenario wires steps for request validation scenarios.
func InitializeValidationScenario(ctx *godog.ScenarioContext) {
	state := &validationScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a default evaluation form with one model and one dataset$`, state.givenBaseForm)
	ctx.Step(`^the form is modified by "([^"]+)"$`, state.givenChange)
	ctx.Step(`^the request is built and validated$`, state.whenBuilt)
	ctx.Step(`^validation fails with "([^"]+)"$`, state.thenFailsWith)
	ctx.Step(`^validation succeeds$`, state.thenSucceeds)
	ctx.Step(`^the request has retrieval method "([^"]+)"$`, state.thenRetrievalMethod)
	ctx.Step(`^the request has no "([^"]+)" or "([^"]+)" fields$`, state.thenFieldsAbsent)
	ctx.Step(`^the request task is "([^"]+)"$`, state.thenTask)
}

type validationScenarioState struct {
	form FormState
	req  model.EvaluationRequest
	err  error
}

func (s *validationScenarioState) reset() {
	s.form = FormState{}
	s.req = model.EvaluationRequest{}
	s.err = nil
}

func (s *validationScenarioState) givenBaseForm() error {
	s.form = baseForm()
	return nil
}

var formChanges = map[string]func(*FormState){
	"no models":   func(f *FormState) { f.ModelPaths = nil },
	"no datasets": func(f *FormState) { f.Datasets = nil },
	"api without key": func(f *FormState) {
		f.ModelType = ModelAPI
		f.ModelPaths = []string{"gpt-4o"}
		f.APIURL = "https://api.example.com/v1"
	},
	"json without paths": func(f *FormState) {
		f.JSONEval.Enabled = true
	},
	"json with paths": func(f *FormState) {
		f.JSONEval.Enabled = true
		f.JSONEval.Paths = "LawBench=/data/a.json"
	},
	"dense api no model": func(f *FormState) {
		f.Retrieval.Enabled = true
		f.Retrieval.Method = model.RetrievalDenseAPI
		f.Retrieval.EmbedAPIURL = "https://embed.example.com"
		f.Retrieval.EmbedAPIKey = "key"
	},
}

func (s *validationScenarioState) givenChange(change string) error {
	apply, ok := formChanges[change]
	if !ok {
		return fmt.Errorf("unknown form change %q", change)
	}
	apply(&s.form)
	return nil
}

func (s *validationScenarioState) whenBuilt() error {
	s.req, _, s.err = BuildAndValidate(s.form)
	return nil
}

func (s *validationScenarioState) thenFailsWith(message string) error {
	var verr *ValidationError
	if !errors.As(s.err, &verr) {
		return fmt.Errorf("expected validation error, got %v", s.err)
	}
	if verr.Error() != message {
		return fmt.Errorf("expected %q, got %q", message, verr.Error())
	}
	return nil
}

func (s *validationScenarioState) thenSucceeds() error {
	if s.err != nil {
		return fmt.Errorf("expected valid request, got %v", s.err)
	}
	return nil
}

func (s *validationScenarioState) thenRetrievalMethod(method string) error {
	if s.req.RetrievalMethod != method {
		return fmt.Errorf("expected retrieval method %q, got %q", method, s.req.RetrievalMethod)
	}
	return nil
}

func (s *validationScenarioState) thenFieldsAbsent(first, second string) error {
	data, err := json.Marshal(s.req)
	if err != nil {
		return err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, name := range []string{first, second} {
		if _, ok := fields[name]; ok {
			return fmt.Errorf("expected no %q field in %s", name, data)
		}
	}
	return nil
}

func (s *validationScenarioState) thenTask(task string) error {
	if string(s.req.Task) != task {
		return fmt.Errorf("expected task %q, got %q", task, s.req.Task)
	}
	return nil
}
