package live

import (
	"testing"

	"legalkit/internal/dashboard"
	"legalkit/internal/model"
)

// TestKeyActionDependsOnState verifies enter and esc only act where they make sense.
func TestKeyActionDependsOnState(t *testing.T) {
	results := State{View: dashboard.ViewResults, Tasks: []model.Task{{ID: "a"}}}
	if got := KeyAction(results, "enter"); got != ActionOpenTask {
		t.Fatalf("expected open on results, got %v", got)
	}
	if got := KeyAction(State{View: dashboard.ViewEvaluation, Tasks: results.Tasks}, "enter"); got != ActionNone {
		t.Fatalf("expected no action outside results, got %v", got)
	}
	if got := KeyAction(State{View: dashboard.ViewResults}, "enter"); got != ActionNone {
		t.Fatalf("expected no action without tasks, got %v", got)
	}
	if got := KeyAction(results, "esc"); got != ActionNone {
		t.Fatalf("expected esc to be ignored without detail, got %v", got)
	}
	results.Detail = &dashboard.TaskDetail{}
	if got := KeyAction(results, "esc"); got != ActionCloseTask {
		t.Fatalf("expected close with detail, got %v", got)
	}
	for key, want := range map[string]Action{"q": ActionQuit, "ctrl+c": ActionQuit, "tab": ActionNextView, "r": ActionRefresh, "l": ActionToggleLang, "x": ActionNone} {
		if got := KeyAction(State{}, key); got != want {
			t.Fatalf("key %q: expected %v, got %v", key, want, got)
		}
	}
}

// TestReduceCountsTasks verifies counts prefer the full list over recent tasks.
func TestReduceCountsTasks(t *testing.T) {
	snap := dashboard.Snapshot{
		Recent: []model.Task{{Status: model.StatusRunning}},
	}
	state := Reduce(State{}, snap)
	if !state.Loaded || state.Counts.Running != 1 {
		t.Fatalf("expected recent counts, got %+v", state.Counts)
	}
	snap.Tasks = []model.Task{
		{Status: model.StatusCompleted},
		{Status: model.StatusCompleted},
		{Status: model.StatusFailed},
		{Status: model.StatusPending},
	}
	state = Reduce(state, snap)
	want := StatusCounts{Pending: 1, Completed: 2, Failed: 1}
	if state.Counts != want {
		t.Fatalf("expected %+v, got %+v", want, state.Counts)
	}
}
