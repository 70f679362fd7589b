package report

import (
	"fmt"
	"maps"
	"net/url"
	"slices"

	"github.com/a-h/templ"

	"legalkit/internal/i18n"
	"legalkit/internal/model"
	"legalkit/internal/render"
)

// TaskData is everything a task report shows.
type TaskData struct {
	Task       model.Task
	Results    model.Results
	ResultsErr string
}

const styles = `body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2933}
table{border-collapse:collapse;margin:1rem 0}th,td{border:1px solid #d9e2ec;padding:.35rem .6rem;text-align:left}
pre{background:#f5f7fa;padding:1rem;overflow:auto}.badge{padding:.1rem .4rem;border-radius:.25rem}
.high{background:#c6f6d5}.medium{background:#fefcbf}.low{background:#fed7d7}.na{background:#e2e8f0}
.status-completed{color:#2f855a}.status-running{color:#2b6cb0}.status-failed{color:#c53030}.status-pending{color:#718096}
.warn{color:#b7791f}.error{color:#c53030}`

// basicRow is one label/value line of the task summary table.
type basicRow struct {
	Label string
	Value string
	Class string
}

func basicRows(tr i18n.Translator, task model.Task) []basicRow {
	return []basicRow{
		{Label: tr.T("detail_task_id"), Value: task.ID},
		{Label: tr.T("detail_status"), Value: tr.StatusText(task.Status), Class: statusClass(task.Status)},
		{Label: tr.T("detail_created_at"), Value: tr.FormatDate(task.CreatedAt.Time)},
		{Label: tr.T("detail_started_at"), Value: tr.FormatDate(task.StartedAt.Time)},
		{Label: tr.T("detail_completed_at"), Value: tr.FormatDate(task.CompletedAt.Time)},
		{Label: tr.T("detail_progress"), Value: fmt.Sprintf("%g%%", task.Progress)},
	}
}

func taskTitle(tr i18n.Translator, task model.Task) string {
	return tr.T("title") + " · " + render.ShortID(task.ID)
}

func statusClass(status model.TaskStatus) string {
	return "status-" + string(status)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// scoreBadge returns the badge text and its severity class.
func scoreBadge(tr i18n.Translator, rec model.ResultRecord) (string, string) {
	badge, sev := render.ScoreBadge(rec, tr.T("na"))
	if sev == render.SeverityNone {
		return badge, "na"
	}
	return badge, string(sev)
}

// metricColumns splits a record into the judge, classic and other columns.
func metricColumns(rec model.ResultRecord) []model.ResultRecord {
	groups := render.GroupMetricKeys(rec)
	return []model.ResultRecord{groups.Judge, groups.Classic, groups.Other}
}

func metricLines(rec model.ResultRecord) []string {
	keys := render.SortedKeys(rec)
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, key+": "+render.FormatMetric(rec[key]))
	}
	return lines
}

func taskLink(linkPrefix, id string) templ.SafeURL {
	return templ.URL(linkPrefix + url.PathEscape(id))
}
