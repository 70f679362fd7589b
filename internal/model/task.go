package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TaskStatus is the lifecycle state of a backend task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusRunning   TaskStatus = "running"
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
)

// Task is the backend record for one evaluation run.
type Task struct {
	ID          string          `json:"id"`
	Status      TaskStatus      `json:"status"`
	CreatedAt   Timestamp       `json:"created_at"`
	StartedAt   Timestamp       `json:"started_at"`
	CompletedAt Timestamp       `json:"completed_at"`
	Progress    float64         `json:"progress"`
	Config      json.RawMessage `json:"config,omitempty"`
	Error       string          `json:"error,omitempty"`
	Results     Results         `json:"results,omitempty"`
}

// TaskConfig is the subset of the echoed request the client displays.
type TaskConfig struct {
	Models   []string `json:"models"`
	Datasets []string `json:"datasets"`
}

// ParsedConfig decodes the echoed request. Unknown or malformed configs
// yield an empty TaskConfig.
func (t Task) ParsedConfig() TaskConfig {
	var cfg TaskConfig
	if len(t.Config) == 0 {
		return cfg
	}
	if err := json.Unmarshal(t.Config, &cfg); err != nil {
		return TaskConfig{}
	}
	return cfg
}

// PrettyConfig renders the echoed request as indented JSON.
func (t Task) PrettyConfig() string {
	if len(t.Config) == 0 || string(t.Config) == "null" {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, t.Config, "", "  "); err != nil {
		return string(t.Config)
	}
	return buf.String()
}

// Results maps model id to subtask id to metric record.
type Results map[string]map[string]ResultRecord

// ResultRecord maps metric names to numeric or string values.
type ResultRecord map[string]any

// ScoreKey is the primary metric of a result record.
const ScoreKey = "score"

// Score returns the primary metric when it is numeric.
func (r ResultRecord) Score() (float64, bool) {
	v, ok := r[ScoreKey]
	if !ok {
		return 0, false
	}
	return Number(v)
}

// Number converts a decoded JSON metric value to float64.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Timestamp accepts the timestamp layouts the backend emits, including
// naive ISO strings without a zone and null.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses one of the supported layouts.
func ParseTimestamp(value string) (Timestamp, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unsupported timestamp %q", value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*ts = Timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Time.Format(time.RFC3339Nano))
}
