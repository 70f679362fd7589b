package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PrefsFileName is the preferences file inside the legalkit config dir.
const PrefsFileName = "prefs.yml"

type prefsFile struct {
	UILang Lang `yaml:"ui_lang"`
}

// Store persists the language preference in a small YAML file.
type Store struct {
	Path string
}

// DefaultStore returns a store under the user's config directory.
func DefaultStore() (Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Store{}, fmt.Errorf("resolve config dir: %w", err)
	}
	return Store{Path: filepath.Join(dir, "legalkit", PrefsFileName)}, nil
}

// Load returns the stored language, or DefaultLang when nothing valid is stored.
func (s Store) Load() (Lang, error) {
	if s.Path == "" {
		return DefaultLang, nil
	}
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultLang, nil
	}
	if err != nil {
		return DefaultLang, fmt.Errorf("read prefs: %w", err)
	}
	var prefs prefsFile
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return DefaultLang, fmt.Errorf("parse prefs: %w", err)
	}
	if !prefs.UILang.Valid() {
		return DefaultLang, nil
	}
	return prefs.UILang, nil
}

// Save writes the language preference.
func (s Store) Save(lang Lang) error {
	if !lang.Valid() {
		return fmt.Errorf("unsupported language %q", lang)
	}
	if s.Path == "" {
		return errors.New("prefs path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := yaml.Marshal(prefsFile{UILang: lang})
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}
