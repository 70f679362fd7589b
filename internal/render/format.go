package render

import (
	"fmt"
	"strconv"
	"strings"

	"legalkit/internal/model"
)

// FormatMetric renders numbers with three decimals and other values as-is.
func FormatMetric(value any) string {
	if n, ok := model.Number(value); ok {
		return strconv.FormatFloat(n, 'f', 3, 64)
	}
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return "null"
	default:
		return fmt.Sprint(v)
	}
}

// ShortID returns the first eight characters of a task id followed by "...".
func ShortID(id string) string {
	return truncate(id, 8, true)
}

// ShortModel truncates model specs longer than 30 characters.
func ShortModel(spec string) string {
	return truncate(spec, 30, false)
}

// truncate cuts value to limit runes, appending "..." when cut. With always
// set the suffix is appended even when nothing was cut.
func truncate(value string, limit int, always bool) string {
	runes := []rune(value)
	if len(runes) <= limit {
		if always {
			return value + "..."
		}
		return value
	}
	return string(runes[:limit]) + "..."
}

// formatProgress renders task progress as an integer percentage.
func formatProgress(progress float64) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return strconv.FormatFloat(progress, 'f', -1, 64) + "%"
}

// progressBar draws a fixed-width bar for a 0-100 progress value.
func progressBar(progress float64, width int) string {
	if width <= 0 {
		return ""
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	filled := int(progress / 100 * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// joinOrNA joins values with ", " or returns na when there are none.
func joinOrNA(values []string, na string) string {
	if len(values) == 0 {
		return na
	}
	return strings.Join(values, ", ")
}
