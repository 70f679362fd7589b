package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"legalkit/internal/spec"
)

// Environment variables that override file settings.
const (
	EnvBaseURL      = "LEGALKIT_BASE_URL"
	EnvTimeout      = "LEGALKIT_TIMEOUT_SECONDS"
	EnvLang         = "LEGALKIT_LANG"
	EnvUIMode       = "LEGALKIT_UI_MODE"
	EnvRefresh      = "LEGALKIT_REFRESH_SECONDS"
	EnvRecentLimit  = "LEGALKIT_RECENT_LIMIT"
	EnvLogLevel     = "LEGALKIT_LOG_LEVEL"
	EnvLogFormat    = "LEGALKIT_LOG_FORMAT"
	EnvPrefsPath    = "LEGALKIT_PREFS_PATH"
	EnvNoColor      = "NO_COLOR"
	EnvNotification = "LEGALKIT_NOTIFICATION_SECONDS"
)

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// LoadEnv returns a lookup over the process environment layered on top of
// the .env file in dir, if any. Process variables win over the file.
func LoadEnv(dir string) (LookupFunc, error) {
	values := map[string]string{}
	path := filepath.Join(dir, EnvFileName)
	if _, err := os.Stat(path); err == nil {
		values, err = godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		value, ok := values[key]
		return value, ok
	}, nil
}

// MapLookup adapts a map for tests and embedded callers.
func MapLookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

// ApplyEnv overrides cfg with LEGALKIT_* variables. Malformed numbers are
// reported as validation issues.
func ApplyEnv(cfg *spec.Config, lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}
	var issues []Issue
	str := func(key string, dst *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*dst = strings.TrimSpace(value)
		}
	}
	num := func(key string, dst *int) {
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			issues = append(issues, Issue{Field: key, Message: fmt.Sprintf("invalid integer %q", value)})
			return
		}
		*dst = n
	}

	str(EnvBaseURL, &cfg.Backend.BaseURL)
	num(EnvTimeout, &cfg.Backend.TimeoutSeconds)
	str(EnvLang, &cfg.UI.Lang)
	str(EnvUIMode, &cfg.UI.Mode)
	num(EnvRefresh, &cfg.UI.RefreshSeconds)
	num(EnvRecentLimit, &cfg.UI.RecentLimit)
	num(EnvNotification, &cfg.UI.NotificationSeconds)
	str(EnvLogLevel, &cfg.Log.Level)
	str(EnvLogFormat, &cfg.Log.Format)
	str(EnvPrefsPath, &cfg.PrefsPath)
	if value, ok := lookup(EnvNoColor); ok && value != "" {
		cfg.UI.NoColor = true
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
