package site

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ziadkadry99/nebula-docs/internal/shell"
	"github.com/ziadkadry99/nebula-docs/internal/theme"
)

// VisitorCookie names the cookie that identifies a display session.
const VisitorCookie = "nebuladocs_visitor"

// colorSchemeHint is the client hint carrying the visitor's system theme.
const colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"

type visitorKey struct{}

// visitor makes sure the request carries a visitor ID, issuing a cookie
// when it does not.
func (s *Site) visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(VisitorCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     VisitorCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				HttpOnly: true,
				Secure:   s.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), visitorKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clientHints asks the browser to send its colour scheme preference.
func clientHints(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-CH", colorSchemeHint)
		w.Header().Set("Critical-CH", colorSchemeHint)
		w.Header().Add("Vary", colorSchemeHint)
		next.ServeHTTP(w, r)
	})
}

// VisitorID returns the visitor ID stored by the visitor middleware.
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}

// systemTheme reads the colour scheme client hint.
func systemTheme(r *http.Request) theme.SystemPreference {
	hint := strings.Trim(r.Header.Get(colorSchemeHint), `" `)
	return func() (theme.Preference, bool) {
		p, err := theme.Parse(hint)
		return p, err == nil
	}
}

func (s *Site) shellFor(r *http.Request) *shell.Shell {
	return s.registry.Get(VisitorID(r.Context()), systemTheme(r))
}
