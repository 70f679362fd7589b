package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"legalkit/internal/i18n"
	"legalkit/internal/model"
)

func plain(lang i18n.Lang) Renderer {
	return New(i18n.New(lang).WithLocation(time.UTC), true)
}

func TestGroupMetricKeysIsTotal(t *testing.T) {
	rec := model.ResultRecord{
		"score":          0.9,
		"judge_score":    0.8,
		"judge_reason":   "ok",
		"classic_bleu":   0.3,
		"classic_rouge":  0.4,
		"num_samples":    120,
		"scores":         0.1,
		"judgement_note": "x",
	}
	groups := GroupMetricKeys(rec)
	total := len(groups.Primary) + len(groups.Judge) + len(groups.Classic) + len(groups.Other)
	if total != len(rec) {
		t.Fatalf("expected %d keys across groups, got %d", len(rec), total)
	}
	if len(groups.Primary) != 1 || groups.Primary["score"] != 0.9 {
		t.Fatalf("unexpected primary group %v", groups.Primary)
	}
	if len(groups.Judge) != 2 || len(groups.Classic) != 2 {
		t.Fatalf("unexpected judge/classic groups %v %v", groups.Judge, groups.Classic)
	}
	for _, key := range []string{"num_samples", "scores", "judgement_note"} {
		if _, ok := groups.Other[key]; !ok {
			t.Fatalf("expected %q in other group", key)
		}
	}
}

func TestScoreBadge(t *testing.T) {
	cases := []struct {
		name string
		rec  model.ResultRecord
		text string
		sev  Severity
	}{
		{name: "high", rec: model.ResultRecord{"score": 0.95}, text: "0.950", sev: SeverityHigh},
		{name: "boundary high", rec: model.ResultRecord{"score": 0.8}, text: "0.800", sev: SeverityHigh},
		{name: "medium", rec: model.ResultRecord{"score": 0.7}, text: "0.700", sev: SeverityMedium},
		{name: "boundary medium", rec: model.ResultRecord{"score": 0.6}, text: "0.600", sev: SeverityMedium},
		{name: "low", rec: model.ResultRecord{"score": 0.4}, text: "0.400", sev: SeverityLow},
		{name: "missing", rec: model.ResultRecord{"accuracy": 0.9}, text: "N/A", sev: SeverityNone},
		{name: "non numeric", rec: model.ResultRecord{"score": "n/a"}, text: "N/A", sev: SeverityNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text, sev := ScoreBadge(tc.rec, "N/A")
			if text != tc.text || sev != tc.sev {
				t.Fatalf("expected %q/%q, got %q/%q", tc.text, tc.sev, text, sev)
			}
		})
	}
}

func TestFormatMetric(t *testing.T) {
	if got := FormatMetric(0.12345); got != "0.123" {
		t.Fatalf("unexpected number format %q", got)
	}
	if got := FormatMetric(json.Number("2")); got != "2.000" {
		t.Fatalf("unexpected json number format %q", got)
	}
	if got := FormatMetric("text"); got != "text" {
		t.Fatalf("unexpected string format %q", got)
	}
	if got := FormatMetric(nil); got != "null" {
		t.Fatalf("unexpected nil format %q", got)
	}
}

func TestShortIDAndModel(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567..." {
		t.Fatalf("unexpected short id %q", got)
	}
	if got := ShortID("abc"); got != "abc..." {
		t.Fatalf("unexpected short id %q", got)
	}
	long := strings.Repeat("m", 31)
	if got := ShortModel(long); got != strings.Repeat("m", 30)+"..." {
		t.Fatalf("unexpected short model %q", got)
	}
	if got := ShortModel("hf:org/model"); got != "hf:org/model" {
		t.Fatalf("short models must not be cut, got %q", got)
	}
}

func completedTask() model.Task {
	return model.Task{
		ID:        "abcdef0123456789",
		Status:    model.StatusCompleted,
		CreatedAt: model.Timestamp{Time: time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC)},
		Progress:  100,
		Config:    json.RawMessage(`{"models":["m1"],"datasets":["A","B"]}`),
	}
}

func TestTaskDetailResultsUnavailable(t *testing.T) {
	out := plain(i18n.English).TaskDetail(completedTask(), nil, "not ready")
	if !strings.Contains(out, "Results unavailable: not ready") {
		t.Fatalf("expected unavailable message, got:\n%s", out)
	}
	if strings.Contains(out, "No results") {
		t.Fatalf("unavailable results must not render as empty:\n%s", out)
	}
}

func TestTaskDetailNoResults(t *testing.T) {
	r := plain(i18n.English)
	out := r.TaskDetail(completedTask(), model.Results{}, "")
	if !strings.Contains(out, r.Translator().T("detail_no_results")) {
		t.Fatalf("expected empty results message, got:\n%s", out)
	}
	if strings.Contains(out, "Results unavailable") {
		t.Fatalf("empty results must not render as unavailable:\n%s", out)
	}
}

func TestTaskDetailHidesResultsUntilCompleted(t *testing.T) {
	task := completedTask()
	task.Status = model.StatusRunning
	task.Error = "worker crashed"
	r := plain(i18n.English)
	out := r.TaskDetail(task, nil, "")
	if strings.Contains(out, r.Translator().T("modal_results")) {
		t.Fatalf("running task must not show results:\n%s", out)
	}
	if !strings.Contains(out, "worker crashed") {
		t.Fatalf("expected error section:\n%s", out)
	}
	if !strings.Contains(out, `"datasets": [`) {
		t.Fatalf("expected pretty config:\n%s", out)
	}
}

func TestResultsRendersGroupedCards(t *testing.T) {
	results := model.Results{
		"m1": {
			"A": model.ResultRecord{"score": 0.95, "judge_score": 0.7, "classic_bleu": 0.2, "extra": "x"},
			"B": model.ResultRecord{"accuracy": 1},
		},
	}
	r := plain(i18n.English)
	out := r.Results(results)
	for _, want := range []string{"m1", "A  [0.950]", "B  [" + r.Translator().T("na") + "]", "judge_score: 0.700", "classic_bleu: 0.200", "extra: x"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "A  [") > strings.Index(out, "B  [") {
		t.Fatalf("expected subtasks in lexical order:\n%s", out)
	}
}

func TestTaskRowTruncates(t *testing.T) {
	task := completedTask()
	task.Config = json.RawMessage(`{"models":["` + strings.Repeat("x", 40) + `"]}`)
	row := plain(i18n.English).TaskRow(task)
	if row[0] != "abcdef01..." {
		t.Fatalf("unexpected id cell %q", row[0])
	}
	if row[2] != "N/A" {
		t.Fatalf("expected N/A datasets, got %q", row[2])
	}
	if row[3] != strings.Repeat("x", 30)+"..." {
		t.Fatalf("unexpected model cell %q", row[3])
	}
	if row[5] != "100%" {
		t.Fatalf("unexpected progress cell %q", row[5])
	}
}

func TestRecentTasksLocalized(t *testing.T) {
	out := plain(i18n.Chinese).RecentTasks([]model.Task{completedTask()})
	if !strings.Contains(out, "2024/3/1 09:05:00") {
		t.Fatalf("expected zh date format, got %q", out)
	}
	if !strings.Contains(out, i18n.New(i18n.Chinese).T("status_completed")) {
		t.Fatalf("expected zh status, got %q", out)
	}
	empty := plain(i18n.English).RecentTasks(nil)
	if empty != i18n.New(i18n.English).T("no_tasks") {
		t.Fatalf("unexpected empty list %q", empty)
	}
}

func TestSystemPanelFallbacks(t *testing.T) {
	out := plain(i18n.English).SystemPanel(model.SystemInfo{GPUCount: 0})
	for _, want := range []string{": 18", ": 312", ": 3", i18n.New(i18n.English).T("no_gpu"), i18n.New(i18n.English).T("no_backends")} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}
