package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"legalkit/internal/spec"
)

// Load reads, parses, applies environment overrides, normalizes, and
// validates a config file. An empty path means defaults plus environment.
// The .env file next to the config (or in the working directory) is
// consulted for overrides.
func Load(path string) (spec.Config, error) {
	dir := "."
	if path != "" {
		dir = filepath.Dir(path)
	}
	lookup, err := LoadEnv(dir)
	if err != nil {
		return spec.Config{}, err
	}
	return LoadWith(path, lookup)
}

// LoadWith is Load with an explicit environment lookup.
func LoadWith(path string, lookup LookupFunc) (spec.Config, error) {
	var cfg spec.Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return spec.Config{}, fmt.Errorf("read config: %w", err)
		}
		cfg, err = spec.ParseConfig(data)
		if err != nil {
			return spec.Config{}, err
		}
	}
	if err := ApplyEnv(&cfg, lookup); err != nil {
		return spec.Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return spec.Config{}, err
	}
	return cfg, nil
}

// Resolve returns the explicit path when set, otherwise the nearest
// .legalkit.yml above startDir, or "" when there is none.
func Resolve(explicit, startDir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	path, err := FindConfigPath(startDir)
	if errors.Is(err, ErrConfigNotFound) {
		return "", nil
	}
	return path, err
}
