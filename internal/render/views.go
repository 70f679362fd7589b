package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"legalkit/internal/i18n"
	"legalkit/internal/model"
)

// Renderer turns fetched JSON into terminal text.
type Renderer struct {
	tr      i18n.Translator
	noColor bool
}

// New returns a renderer for the translator's language.
func New(tr i18n.Translator, noColor bool) Renderer {
	return Renderer{tr: tr, noColor: noColor}
}

// Translator returns the renderer's translator.
func (r Renderer) Translator() i18n.Translator {
	return r.tr
}

// WithTranslator returns a copy rendering in tr's language.
func (r Renderer) WithTranslator(tr i18n.Translator) Renderer {
	r.tr = tr
	return r
}

// Heading renders a section title.
func (r Renderer) Heading(key string) string {
	return paint(bold(r.tr.T(key), r.noColor), r.noColor, colorHeading)
}

// SystemInfo renders the GPU count and catalogue counters.
func (r Renderer) SystemInfo(info model.SystemInfo) string {
	lines := []string{
		bold(strconv.Itoa(info.GPUCount), r.noColor) + " " + r.tr.T("metric_gpu_available"),
		fmt.Sprintf("%s: %d   %s: %d   %s: %d",
			r.tr.T("metric_datasets"), info.DatasetsCount(),
			r.tr.T("metric_subtasks"), info.Subtasks(),
			r.tr.T("metric_accelerators"), info.AcceleratorsCount(),
		),
	}
	return strings.Join(lines, "\n")
}

// GPUInfo renders one line per GPU card.
func (r Renderer) GPUInfo(gpus []model.GPUInfo) string {
	if len(gpus) == 0 {
		return paint(r.tr.T("no_gpu"), r.noColor, colorWarn)
	}
	lines := make([]string, 0, len(gpus))
	for _, gpu := range gpus {
		memory := strconv.FormatFloat(gpu.MemoryTotal, 'f', -1, 64)
		lines = append(lines, fmt.Sprintf("GPU %d: %s  %s GB", gpu.ID, gpu.Name, memory))
	}
	return strings.Join(lines, "\n")
}

// Datasets renders the supported dataset list.
func (r Renderer) Datasets(datasets []string) string {
	return bulletList(datasets)
}

// Backends renders the supported accelerator list.
func (r Renderer) Backends(backends []string) string {
	if len(backends) == 0 {
		return paint(r.tr.T("no_backends"), r.noColor, colorWarn)
	}
	return bulletList(backends)
}

// SystemPanel renders the whole system tab.
func (r Renderer) SystemPanel(info model.SystemInfo) string {
	sections := []string{
		r.Heading("system_title"), r.SystemInfo(info), "",
		r.Heading("gpu_title"), r.GPUInfo(info.GPUInfo), "",
		r.Heading("datasets_title"), r.Datasets(info.Datasets), "",
		r.Heading("backends_title"), r.Backends(info.Accelerators),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// StatusBadge renders a localized, colored task status.
func (r Renderer) StatusBadge(status model.TaskStatus) string {
	return paint(r.tr.StatusText(status), r.noColor, StatusColor(status))
}

// RecentTasks renders the compact recent-task list.
func (r Renderer) RecentTasks(tasks []model.Task) string {
	if len(tasks) == 0 {
		return paint(r.tr.T("no_tasks"), r.noColor, colorMuted)
	}
	lines := make([]string, 0, len(tasks))
	for _, task := range tasks {
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			bold(ShortID(task.ID), r.noColor),
			paint(r.tr.FormatDate(task.CreatedAt.Time), r.noColor, colorMuted),
			r.StatusBadge(task.Status),
		))
	}
	return strings.Join(lines, "\n")
}

// TaskHeaders returns the localized task table headers.
func (r Renderer) TaskHeaders() []string {
	return []string{
		r.tr.T("detail_task_id"),
		r.tr.T("detail_status"),
		r.tr.T("metric_datasets"),
		r.tr.T("model"),
		r.tr.T("detail_created_at"),
		r.tr.T("detail_progress"),
	}
}

// TaskRow returns the cells of one task table row without styling.
func (r Renderer) TaskRow(task model.Task) []string {
	cfg := task.ParsedConfig()
	models := make([]string, 0, len(cfg.Models))
	for _, m := range cfg.Models {
		models = append(models, ShortModel(m))
	}
	return []string{
		ShortID(task.ID),
		r.tr.StatusText(task.Status),
		joinOrNA(cfg.Datasets, "N/A"),
		joinOrNA(models, "N/A"),
		r.tr.FormatDate(task.CreatedAt.Time),
		formatProgress(task.Progress),
	}
}

// TaskTable renders the full task list as a bordered table.
func (r Renderer) TaskTable(tasks []model.Task) string {
	if len(tasks) == 0 {
		return paint(r.tr.T("no_eval_tasks"), r.noColor, colorInfo)
	}
	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, r.TaskRow(task))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(r.TaskHeaders()...).
		Rows(rows...)
	if !r.noColor {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			if col == 1 && row >= 0 && row < len(tasks) {
				return style.Foreground(StatusColor(tasks[row].Status))
			}
			return style
		})
	}
	return t.String()
}

// TaskDetail renders basic info, config, error and the results section.
// resultsErr is the reason lazily loaded results could not be fetched.
func (r Renderer) TaskDetail(task model.Task, results model.Results, resultsErr string) string {
	basic := [][2]string{
		{r.tr.T("detail_task_id"), task.ID},
		{r.tr.T("detail_status"), r.StatusBadge(task.Status)},
		{r.tr.T("detail_created_at"), r.tr.FormatDate(task.CreatedAt.Time)},
		{r.tr.T("detail_started_at"), r.tr.FormatDate(task.StartedAt.Time)},
		{r.tr.T("detail_completed_at"), r.tr.FormatDate(task.CompletedAt.Time)},
		{r.tr.T("detail_progress"), formatProgress(task.Progress) + " " + progressBar(task.Progress, 20)},
	}
	width := 0
	for _, row := range basic {
		width = max(width, lipgloss.Width(row[0]))
	}
	sections := []string{r.Heading("detail_basic")}
	for _, row := range basic {
		pad := strings.Repeat(" ", width-lipgloss.Width(row[0]))
		sections = append(sections, row[0]+pad+"  "+row[1])
	}
	sections = append(sections, "", r.Heading("detail_config"), task.PrettyConfig())
	if task.Error != "" {
		sections = append(sections, "", r.Heading("detail_error"), paint(task.Error, r.noColor, colorError))
	}
	if section := r.resultsSection(task, results, resultsErr); section != "" {
		sections = append(sections, "", section)
	}
	return strings.Join(sections, "\n")
}

// resultsSection renders the results block shown for completed tasks only.
func (r Renderer) resultsSection(task model.Task, results model.Results, resultsErr string) string {
	if task.Status != model.StatusCompleted {
		return ""
	}
	heading := r.Heading("modal_results")
	if resultsErr != "" {
		return heading + "\n" + paint(r.ResultsUnavailable(resultsErr), r.noColor, colorWarn)
	}
	return heading + "\n" + r.Results(results)
}

// ResultsUnavailable renders the failed lazy-load state.
func (r Renderer) ResultsUnavailable(reason string) string {
	return r.tr.T("err_get_results") + ": " + reason
}

// Results renders per-model, per-subtask metric cards.
func (r Renderer) Results(results model.Results) string {
	if len(results) == 0 {
		return paint(r.tr.T("detail_no_results"), r.noColor, colorInfo)
	}
	modelIDs := make([]string, 0, len(results))
	for id := range results {
		modelIDs = append(modelIDs, id)
	}
	sort.Strings(modelIDs)

	var blocks []string
	for _, modelID := range modelIDs {
		blocks = append(blocks, bold(modelID, r.noColor))
		subtasks := results[modelID]
		subtaskIDs := make([]string, 0, len(subtasks))
		for id := range subtasks {
			subtaskIDs = append(subtaskIDs, id)
		}
		sort.Strings(subtaskIDs)
		for _, subtaskID := range subtaskIDs {
			blocks = append(blocks, r.resultCard(subtaskID, subtasks[subtaskID]))
		}
	}
	return strings.Join(blocks, "\n")
}

// resultCard renders one subtask's badge and metric groups.
func (r Renderer) resultCard(subtaskID string, rec model.ResultRecord) string {
	badge, sev := ScoreBadge(rec, r.tr.T("na"))
	lines := []string{"  " + subtaskID + "  [" + paint(badge, r.noColor, SeverityColor(sev)) + "]"}
	groups := GroupMetricKeys(rec)
	for _, g := range []struct {
		key  string
		data model.ResultRecord
	}{
		{"results_primary", groups.Primary},
		{"results_judge", groups.Judge},
		{"results_classic", groups.Classic},
		{"results_other", groups.Other},
	} {
		if line := r.metricGroup(r.tr.T(g.key), g.data); line != "" {
			lines = append(lines, "    "+line)
		}
	}
	return strings.Join(lines, "\n")
}

// metricGroup renders "title: k: v, k: v" or nothing for an empty group.
func (r Renderer) metricGroup(title string, data model.ResultRecord) string {
	if len(data) == 0 {
		return ""
	}
	parts := make([]string, 0, len(data))
	for _, key := range SortedKeys(data) {
		parts = append(parts, key+": "+FormatMetric(data[key]))
	}
	return bold(title, r.noColor) + "  " + paint(strings.Join(parts, ", "), r.noColor, colorMuted)
}

// DiscoveredModels renders model discovery output.
func (r Renderer) DiscoveredModels(models []model.DiscoveredModel) string {
	if len(models) == 0 {
		return paint(r.tr.T("no_valid_models"), r.noColor, colorWarn)
	}
	lines := []string{bold(r.tr.T("discovered_models"), r.noColor)}
	for _, m := range models {
		lines = append(lines, "  "+m.ModelPath+"  "+paint(m.ModelType, r.noColor, colorInfo))
	}
	return strings.Join(lines, "\n")
}

// bulletList renders one item per line.
func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "• "+item)
	}
	return strings.Join(lines, "\n")
}
