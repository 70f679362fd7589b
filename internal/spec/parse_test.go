package spec

import "testing"

// TestParseConfigValid verifies valid config parsing succeeds.
func TestParseConfigValid(t *testing.T) {
	data := []byte(`version: 1
backend:
  base_url: "http://eval.internal:5000/api"
  timeout_seconds: 15
ui:
  lang: zh
  mode: plain
  refresh_seconds: 10
  recent_limit: 8
log:
  level: debug
  format: json
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if cfg.Backend.BaseURL != "http://eval.internal:5000/api" || cfg.UI.Lang != "zh" || cfg.UI.RecentLimit != 8 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

// TestParseConfigEmpty verifies an empty file yields the zero config.
func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	if err != nil {
		t.Fatalf("expected empty parse to succeed, got %v", err)
	}
	if cfg != (Config{}) {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

// TestParseConfigUnknownField verifies unknown fields are rejected.
func TestParseConfigUnknownField(t *testing.T) {
	data := []byte(`version: 1
backend:
  base_url: "http://localhost:5000/api"
  retries: 3
`)
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for unknown field")
	}
}

// TestParseConfigRejectsMultipleDocs verifies multiple YAML docs are rejected.
func TestParseConfigRejectsMultipleDocs(t *testing.T) {
	data := []byte("version: 1\n---\nversion: 1\n")
	if _, err := ParseConfig(data); err == nil {
		t.Fatalf("expected parse error for multiple documents")
	}
}
