// Package site serves the documentation shell over HTTP: server-rendered
// pages, a small JSON API that drives each visitor's display session, and a
// WebSocket that streams assistant updates.
package site

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nebula-docs/internal/content"
	"github.com/ziadkadry99/nebula-docs/internal/logging"
	"github.com/ziadkadry99/nebula-docs/internal/shell"
)

// apiTimeout bounds every JSON API request. The WebSocket is not subject to it.
const apiTimeout = 30 * time.Second

// Config holds what the site needs from the rest of the process.
type Config struct {
	Content       *content.Store
	Registry      *shell.Registry
	SecureCookies bool
	Logger        *zap.Logger
}

// Site is the HTTP front end of the display sessions.
type Site struct {
	store    *content.Store
	registry *shell.Registry
	secure   bool
	tmpl     *template.Template
	logger   *zap.Logger
}

// New creates a Site.
func New(cfg Config) (*Site, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, err
	}
	return &Site{
		store:    cfg.Content,
		registry: cfg.Registry,
		secure:   cfg.SecureCookies,
		tmpl:     tmpl,
		logger:   logging.OrNop(cfg.Logger).Named("site"),
	}, nil
}

// Mount registers the site's routes on r.
func (s *Site) Mount(r chi.Router) {
	r.Get("/static/style.css", staticAsset("text/css; charset=utf-8", cssContent))
	r.Get("/static/script.js", staticAsset("application/javascript; charset=utf-8", jsContent))

	r.Group(func(r chi.Router) {
		r.Use(s.visitor)
		r.Use(clientHints)

		r.Get("/", s.handleRoot)
		r.Get("/docs", s.handleRoot)
		r.Get("/docs/*", s.handleDoc)
		r.Get("/ws/assistant", s.handleAssistantSocket)

		r.Route("/api", func(r chi.Router) {
			r.Use(middleware.Timeout(apiTimeout))
			r.Use(middleware.SetHeader("Content-Type", "application/json"))

			r.Get("/view", s.handleView)
			r.Post("/nav/toggle/{id}", s.handleToggleGroup)
			r.Post("/menu/open", s.handleMenu(true))
			r.Post("/menu/close", s.handleMenu(false))
			r.Post("/theme/toggle", s.handleThemeToggle)
			r.Post("/keys", s.handleKeys)

			r.Get("/assistant", s.handleAssistantSnapshot)
			r.Post("/assistant/open", s.handleAssistantAction(func(sh *shell.Shell) { sh.OpenAssistant() }))
			r.Post("/assistant/close", s.handleAssistantAction(func(sh *shell.Shell) { sh.CloseAssistant() }))
			r.Post("/assistant/toggle", s.handleAssistantAction(func(sh *shell.Shell) { sh.ToggleAssistant() }))
			r.Post("/assistant/send", s.handleAssistantSend)

			r.Get("/pages", s.handleListPages)
			r.Get("/pages/*", s.handleGetPage)
		})
	})
}

func staticAsset(contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.Write([]byte(body))
	}
}

// slugParam returns the wildcard part of the path without surrounding slashes.
func slugParam(r *http.Request) string {
	return strings.Trim(chi.URLParam(r, "*"), "/")
}
