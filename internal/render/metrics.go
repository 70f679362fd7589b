package render

import (
	"sort"
	"strings"

	"legalkit/internal/model"
)

// Metric key prefixes that select a group.
const (
	JudgePrefix   = "judge_"
	ClassicPrefix = "classic_"
)

// MetricGroup names one partition of a result record.
type MetricGroup int

const (
	GroupPrimary MetricGroup = iota
	GroupJudge
	GroupClassic
	GroupOther
)

// MetricGroups partitions a result record by key name.
type MetricGroups struct {
	Primary model.ResultRecord
	Judge   model.ResultRecord
	Classic model.ResultRecord
	Other   model.ResultRecord
}

// GroupOf returns the group a metric key belongs to.
func GroupOf(key string) MetricGroup {
	switch {
	case key == model.ScoreKey:
		return GroupPrimary
	case strings.HasPrefix(key, JudgePrefix):
		return GroupJudge
	case strings.HasPrefix(key, ClassicPrefix):
		return GroupClassic
	default:
		return GroupOther
	}
}

// GroupMetricKeys places every key of rec in exactly one group.
func GroupMetricKeys(rec model.ResultRecord) MetricGroups {
	groups := MetricGroups{
		Primary: model.ResultRecord{},
		Judge:   model.ResultRecord{},
		Classic: model.ResultRecord{},
		Other:   model.ResultRecord{},
	}
	for key, value := range rec {
		switch GroupOf(key) {
		case GroupPrimary:
			groups.Primary[key] = value
		case GroupJudge:
			groups.Judge[key] = value
		case GroupClassic:
			groups.Classic[key] = value
		default:
			groups.Other[key] = value
		}
	}
	return groups
}

// SortedKeys returns the record keys in lexical order.
func SortedKeys(rec model.ResultRecord) []string {
	keys := make([]string, 0, len(rec))
	for key := range rec {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Severity is the badge class of a primary score.
type Severity string

const (
	SeverityNone   Severity = ""
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ScoreClass maps a score to its severity.
func ScoreClass(score float64) Severity {
	switch {
	case score >= 0.8:
		return SeverityHigh
	case score >= 0.6:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ScoreBadge returns the badge text and severity of a record's primary
// score. Records without a numeric score render as N/A with no severity.
func ScoreBadge(rec model.ResultRecord, na string) (string, Severity) {
	score, ok := rec.Score()
	if !ok {
		return na, SeverityNone
	}
	return FormatMetric(score), ScoreClass(score)
}

// String returns the group name used in exports.
func (g MetricGroup) String() string {
	switch g {
	case GroupPrimary:
		return "primary"
	case GroupJudge:
		return "judge"
	case GroupClassic:
		return "classic"
	default:
		return "other"
	}
}
