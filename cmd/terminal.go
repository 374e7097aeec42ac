package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nebula-docs/internal/config"
	"github.com/ziadkadry99/nebula-docs/internal/content"
	"github.com/ziadkadry99/nebula-docs/internal/prefs"
	"github.com/ziadkadry99/nebula-docs/internal/theme"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// terminalTheme returns the persisted CLI theme. Without a stored choice the
// terminal background decides.
func terminalTheme(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*theme.State, func() error, error) {
	backend, closer, err := openPrefs(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	system := func() (theme.Preference, bool) {
		if lipgloss.HasDarkBackground() {
			return theme.Dark, true
		}
		return theme.Light, true
	}
	return theme.New(prefs.ForScope(backend, cliScope), system, logger), closer, nil
}

// resolvePage looks slug up, telling the user when the default page is shown
// instead.
func resolvePage(store *content.Store, slug string) *content.Page {
	page, ok := store.Lookup(slug)
	if !ok {
		page = store.Page(slug)
		fmt.Fprintln(os.Stderr, warningStyle.Render(fmt.Sprintf("No page %q; showing %q instead.", slug, page.Slug)))
	}
	return page
}
