// Package shell composes navigation, theme, page rendering and the assistant
// into one display session.
package shell

import (
	"sync"

	"go.uber.org/zap"

	"github.com/ziadkadry99/nebula-docs/internal/assistant"
	"github.com/ziadkadry99/nebula-docs/internal/content"
	"github.com/ziadkadry99/nebula-docs/internal/keys"
	"github.com/ziadkadry99/nebula-docs/internal/llm"
	"github.com/ziadkadry99/nebula-docs/internal/logging"
	"github.com/ziadkadry99/nebula-docs/internal/navigation"
	"github.com/ziadkadry99/nebula-docs/internal/prefs"
	"github.com/ziadkadry99/nebula-docs/internal/render"
	"github.com/ziadkadry99/nebula-docs/internal/theme"
)

// AssistantShortcut toggles the assistant from anywhere in the shell.
var AssistantShortcut = keys.MustParse("Mod+K")

// Config holds the collaborators shared by every shell of a process plus the
// per-visitor preference store.
type Config struct {
	SiteName string
	Content  *content.Store
	Renderer *render.Renderer

	// Client answers assistant questions. AssistantEnabled=false hides the
	// panel and leaves the shortcut unbound.
	Client           llm.ChatClient
	AssistantEnabled bool
	AssistantOptions []assistant.Option

	Prefs       prefs.Store
	SystemTheme theme.SystemPreference
	Logger      *zap.Logger
}

// Shell is one display session.
type Shell struct {
	siteName  string
	store     *content.Store
	renderer  *render.Renderer
	nav       *navigation.State
	theme     *theme.State
	assistant *assistant.Controller
	scroll    *ScrollLock
	keymap    *Keymap
	enabled   bool
	logger    *zap.Logger

	unbind    func()
	closeOnce sync.Once
}

// New creates a shell positioned on the default page.
func New(cfg Config) *Shell {
	logger := logging.OrNop(cfg.Logger)
	store := cfg.Content
	if store == nil {
		store = content.Default()
	}
	r := cfg.Renderer
	if r == nil {
		r = render.New()
	}

	s := &Shell{
		siteName: cfg.SiteName,
		store:    store,
		renderer: r,
		nav:      navigation.New(store.DefaultPage().Slug),
		theme:    theme.New(cfg.Prefs, cfg.SystemTheme, logger),
		scroll:   &ScrollLock{},
		keymap:   NewKeymap(),
		enabled:  cfg.AssistantEnabled,
		logger:   logger.Named("shell"),
	}

	opts := append([]assistant.Option{
		assistant.WithScrollLock(s.scroll),
		assistant.WithLogger(logger),
	}, cfg.AssistantOptions...)
	if cfg.SiteName != "" {
		opts = append(opts, assistant.WithSiteName(cfg.SiteName))
	}
	s.assistant = assistant.New(cfg.Client, opts...)
	s.assistant.SetContext(s.ActivePage())

	s.unbind = func() {}
	if s.enabled {
		s.unbind = s.keymap.Bind(AssistantShortcut, func(keys.Event) { s.ToggleAssistant() })
	}
	return s
}

// ActivePage returns the page being displayed.
func (s *Shell) ActivePage() *content.Page {
	return s.store.Page(s.nav.ActiveSlug())
}

// Navigate shows slug and re-grounds an open assistant on the new page.
func (s *Shell) Navigate(slug string, fromMobile bool) {
	s.nav.Navigate(slug, fromMobile)
	s.assistant.SetContext(s.ActivePage())
}

func (s *Shell) ToggleGroup(nodeID string) bool { return s.nav.ToggleGroup(nodeID) }

func (s *Shell) OpenMobileMenu()      { s.nav.OpenMobileMenu() }
func (s *Shell) CloseMobileMenu()     { s.nav.CloseMobileMenu() }
func (s *Shell) MobileMenuOpen() bool { return s.nav.MobileMenuOpen() }

// ToggleTheme flips the colour scheme and returns the new one.
func (s *Shell) ToggleTheme() theme.Preference { return s.theme.Toggle() }

func (s *Shell) Theme() *theme.State { return s.theme }

// Assistant exposes the panel controller.
func (s *Shell) Assistant() *assistant.Controller { return s.assistant }

// AssistantEnabled reports whether the panel is offered at all.
func (s *Shell) AssistantEnabled() bool { return s.enabled }

func (s *Shell) OpenAssistant() {
	if s.enabled {
		s.assistant.Open(s.ActivePage())
	}
}

func (s *Shell) CloseAssistant() { s.assistant.Close() }

func (s *Shell) ToggleAssistant() {
	if s.enabled {
		s.assistant.Toggle(s.ActivePage())
	}
}

// HandleKey dispatches a key pressed anywhere in the shell. The result
// reports whether the surface should prevent the key's default action.
func (s *Shell) HandleKey(ev keys.Event) bool {
	return s.keymap.Dispatch(ev)
}

// HandleInputKey dispatches a key pressed in the assistant input.
func (s *Shell) HandleInputKey(ev keys.Event) bool {
	if s.keymap.Dispatch(ev) {
		return true
	}
	return s.assistant.HandleInputKey(ev)
}

// ScrollLocked reports whether background scrolling is suspended.
func (s *Shell) ScrollLocked() bool { return s.scroll.Locked() }

// Close tears the session down. The shortcut is unbound and the assistant
// shut down, which cancels any request, releases the scroll lock and ends
// every assistant subscription.
func (s *Shell) Close() {
	s.closeOnce.Do(func() {
		s.unbind()
		s.assistant.Shutdown()
		s.logger.Debug("display session closed")
	})
}
