package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"legalkit/internal/config"
)

// resolveConfigPath normalizes a config path or finds one from CWD. An
// empty result means no config file; defaults and environment apply.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		return config.Resolve("", wd)
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}
