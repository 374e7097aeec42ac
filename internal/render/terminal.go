package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/ziadkadry99/nebula-docs/internal/theme"
)

// RenderTerminal renders markdown for a terminal using the glamour style that
// matches the theme.
func RenderTerminal(markdown string, pref theme.Preference, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	style := "light"
	if pref == theme.Dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
