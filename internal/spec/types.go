package spec

// Config is the .legalkit.yml client configuration.
type Config struct {
	Version   int           `yaml:"version"`
	Backend   BackendConfig `yaml:"backend"`
	UI        UIConfig      `yaml:"ui"`
	Log       LogConfig     `yaml:"log"`
	PrefsPath string        `yaml:"prefs_path"`
}

// BackendConfig locates the evaluation backend.
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// UIConfig tunes the dashboard views.
type UIConfig struct {
	Lang                string `yaml:"lang"`
	Mode                string `yaml:"mode"`
	NoColor             bool   `yaml:"no_color"`
	RefreshSeconds      int    `yaml:"refresh_seconds"`
	RecentLimit         int    `yaml:"recent_limit"`
	NotificationSeconds int    `yaml:"notification_seconds"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
