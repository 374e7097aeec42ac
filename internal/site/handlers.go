package site

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nebula-docs/internal/keys"
	"github.com/ziadkadry99/nebula-docs/internal/render"
	"github.com/ziadkadry99/nebula-docs/internal/shell"
)

// pageData is the template input for a full page.
type pageData struct {
	View          *shell.View
	Sidebar       template.HTML
	ShortcutLabel string
}

func (s *Site) handleRoot(w http.ResponseWriter, r *http.Request) {
	sh := s.shellFor(r)
	http.Redirect(w, r, docPath(sh.ActivePage().Slug), http.StatusFound)
}

func (s *Site) handleDoc(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	if slug == "" {
		s.handleRoot(w, r)
		return
	}

	sh := s.shellFor(r)
	sh.Navigate(slug, r.URL.Query().Get("from") == "mobile")

	view, err := sh.View()
	if err != nil {
		s.logger.Error("rendering page", zap.String("slug", slug), zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	data := pageData{
		View:          view,
		Sidebar:       sidebarHTML(view.Nav),
		ShortcutLabel: strings.Replace(view.Shortcut, "Mod+", "⌘", 1),
	}
	if err := s.tmpl.Execute(&buf, data); err != nil {
		s.logger.Error("executing page template", zap.String("slug", slug), zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Site) handleView(w http.ResponseWriter, r *http.Request) {
	view, err := s.shellFor(r).View()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Site) handleToggleGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	open := s.shellFor(r).ToggleGroup(id)
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "open": open})
}

func (s *Site) handleMenu(open bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sh := s.shellFor(r)
		if open {
			sh.OpenMobileMenu()
		} else {
			sh.CloseMobileMenu()
		}
		writeJSON(w, http.StatusOK, map[string]bool{"mobile_menu_open": sh.MobileMenuOpen()})
	}
}

func (s *Site) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	sh := s.shellFor(r)
	p := sh.ToggleTheme()
	writeJSON(w, http.StatusOK, map[string]string{
		"theme":      string(p),
		"root_class": sh.Theme().RootClass(),
	})
}

// keyRequest is a key press forwarded by the page script.
type keyRequest struct {
	keys.Event
	// Target is "assistant-input" for keys typed in the assistant input.
	Target string  `json:"target"`
	Input  *string `json:"input,omitempty"`
}

func (s *Site) handleKeys(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid key event")
		return
	}

	sh := s.shellFor(r)
	var prevent bool
	if req.Target == "assistant-input" {
		if req.Input != nil {
			sh.Assistant().SetInput(*req.Input)
		}
		prevent = sh.HandleInputKey(req.Event)
	} else {
		prevent = sh.HandleKey(req.Event)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"prevent_default": prevent})
}

func (s *Site) handleAssistantSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.shellFor(r).Assistant().Snapshot())
}

func (s *Site) handleAssistantAction(action func(*shell.Shell)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sh := s.shellFor(r)
		if !sh.AssistantEnabled() {
			writeError(w, http.StatusNotFound, "assistant is disabled")
			return
		}
		action(sh)
		writeJSON(w, http.StatusOK, sh.Assistant().Snapshot())
	}
}

type sendRequest struct {
	Text string `json:"text"`
}

func (s *Site) handleAssistantSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sh := s.shellFor(r)
	if !sh.AssistantEnabled() {
		writeError(w, http.StatusNotFound, "assistant is disabled")
		return
	}
	accepted := sh.Assistant().Send(req.Text)
	status := http.StatusOK
	if accepted {
		status = http.StatusAccepted
	}
	writeJSON(w, status, map[string]any{
		"accepted": accepted,
		"snapshot": sh.Assistant().Snapshot(),
	})
}

type pageSummary struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

func (s *Site) handleListPages(w http.ResponseWriter, r *http.Request) {
	pages := s.store.Pages()
	out := make([]pageSummary, 0, len(pages))
	for _, p := range pages {
		out = append(out, pageSummary{Slug: p.Slug, Title: p.Title})
	}
	writeJSON(w, http.StatusOK, out)
}

type pageResponse struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Headings []string `json:"headings"`
	Fallback bool     `json:"fallback"`
}

func (s *Site) handleGetPage(w http.ResponseWriter, r *http.Request) {
	slug := slugParam(r)
	page, ok := s.store.Lookup(slug)
	if !ok {
		page = s.store.Page(slug)
	}
	headings := render.ExtractHeadings(page.Content)
	if headings == nil {
		headings = []string{}
	}
	writeJSON(w, http.StatusOK, pageResponse{
		Slug:     page.Slug,
		Title:    page.Title,
		Content:  page.Content,
		Headings: headings,
		Fallback: !ok,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
