package report

//go:generate templ generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"

	"legalkit/internal/i18n"
)

// RenderHTML renders a component into a string.
func RenderHTML(ctx context.Context, component templ.Component) (string, error) {
	var builder strings.Builder
	if err := component.Render(ctx, &builder); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return builder.String(), nil
}

// WriteTaskReport renders the task page to path, creating parent
// directories as needed.
func WriteTaskReport(ctx context.Context, path string, tr i18n.Translator, data TaskData) error {
	html, err := RenderHTML(ctx, TaskPage(tr, data))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
