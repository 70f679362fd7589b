package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported UI language.
type Lang string

const (
	English Lang = "en"
	Chinese Lang = "zh"
)

// DefaultLang is used when no preference is stored.
const DefaultLang = English

// Other returns the language the toggle switches to.
func (l Lang) Other() Lang {
	if l == English {
		return Chinese
	}
	return English
}

// Valid reports whether the language has a string table.
func (l Lang) Valid() bool {
	return l == English || l == Chinese
}

// ParseLang maps a BCP 47 tag or POSIX locale ("zh_CN.UTF-8") to a
// supported language.
func ParseLang(value string) (Lang, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("language is empty")
	}
	if idx := strings.IndexAny(value, ".@"); idx >= 0 {
		value = value[:idx]
	}
	value = strings.ReplaceAll(value, "_", "-")
	tag, err := language.Parse(value)
	if err != nil {
		return "", fmt.Errorf("parse language %q: %w", value, err)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return English, nil
	case "zh":
		return Chinese, nil
	default:
		return "", fmt.Errorf("unsupported language %q (expected en|zh)", value)
	}
}
