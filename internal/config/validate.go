package config

import (
	"fmt"
	"net/url"
	"strings"

	"legalkit/internal/i18n"
	"legalkit/internal/logging"
	"legalkit/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a normalized config for correctness.
func Validate(cfg *spec.Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if parsed, err := url.Parse(cfg.Backend.BaseURL); err != nil {
		add("backend.base_url", fmt.Sprintf("invalid url %q", cfg.Backend.BaseURL))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		add("backend.base_url", fmt.Sprintf("unsupported scheme %q (expected http|https)", parsed.Scheme))
	} else if parsed.Host == "" {
		add("backend.base_url", "host is required")
	}
	if cfg.Backend.TimeoutSeconds < 0 {
		add("backend.timeout_seconds", "must be >= 0")
	}

	if strings.TrimSpace(cfg.UI.Lang) != "" {
		if _, err := i18n.ParseLang(cfg.UI.Lang); err != nil {
			add("ui.lang", err.Error())
		}
	}
	switch cfg.UI.Mode {
	case "auto", "live", "plain":
	default:
		add("ui.mode", fmt.Sprintf("invalid ui mode %q (expected auto|live|plain)", cfg.UI.Mode))
	}
	if cfg.UI.RefreshSeconds < 1 {
		add("ui.refresh_seconds", "must be >= 1")
	}
	if cfg.UI.RecentLimit < 1 {
		add("ui.recent_limit", "must be >= 1")
	}
	if cfg.UI.NotificationSeconds < 1 {
		add("ui.notification_seconds", "must be >= 1")
	}

	if err := logging.ValidateLevel(cfg.Log.Level); err != nil {
		add("log.level", err.Error())
	}
	if err := logging.ValidateFormat(cfg.Log.Format); err != nil {
		add("log.format", err.Error())
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
