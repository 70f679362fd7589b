package config

import (
	"strings"
	"time"

	"legalkit/internal/api"
	"legalkit/internal/logging"
	"legalkit/internal/spec"
)

// Defaults applied by Normalize.
const (
	DefaultTimeoutSeconds      = 10
	DefaultRefreshSeconds      = 5
	DefaultRecentLimit         = 5
	DefaultNotificationSeconds = 5
	DefaultUIMode              = "auto"
	DefaultLogLevel            = "info"
)

// Normalize fills unset fields with defaults.
func Normalize(cfg *spec.Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	cfg.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Backend.BaseURL), "/")
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = api.DefaultBaseURL
	}
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = DefaultTimeoutSeconds
	}
	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = DefaultUIMode
	}
	if cfg.UI.RefreshSeconds == 0 {
		cfg.UI.RefreshSeconds = DefaultRefreshSeconds
	}
	if cfg.UI.RecentLimit == 0 {
		cfg.UI.RecentLimit = DefaultRecentLimit
	}
	if cfg.UI.NotificationSeconds == 0 {
		cfg.UI.NotificationSeconds = DefaultNotificationSeconds
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = logging.FormatConsole
	}
}

// Defaults returns a normalized empty config.
func Defaults() spec.Config {
	var cfg spec.Config
	Normalize(&cfg)
	return cfg
}

// Timeout returns the per-request backend timeout.
func Timeout(cfg spec.Config) time.Duration {
	return time.Duration(cfg.Backend.TimeoutSeconds) * time.Second
}

// RefreshInterval returns the dashboard polling period.
func RefreshInterval(cfg spec.Config) time.Duration {
	return time.Duration(cfg.UI.RefreshSeconds) * time.Second
}

// NotificationTTL returns how long a notification stays visible.
func NotificationTTL(cfg spec.Config) time.Duration {
	return time.Duration(cfg.UI.NotificationSeconds) * time.Second
}
