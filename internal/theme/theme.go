// Package theme tracks the light/dark preference of a display session.
//
// The in-memory value is authoritative. Every change, including the value
// chosen at construction, is written to the preference store; write and read
// failures are logged and otherwise ignored.
package theme

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ziadkadry99/nebula-docs/internal/logging"
	"github.com/ziadkadry99/nebula-docs/internal/prefs"
)

// Preference is a colour scheme.
type Preference string

const (
	Light Preference = "light"
	Dark  Preference = "dark"
)

// Default is used when neither storage nor the system offer a preference.
const Default = Light

// StorageKey is the preference key the theme is persisted under.
const StorageKey = "theme"

// SystemPreference reports the platform colour scheme, if known.
type SystemPreference func() (Preference, bool)

// Parse converts a stored or user-supplied value to a Preference.
func Parse(s string) (Preference, error) {
	switch Preference(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Opposite returns the other preference.
func (p Preference) Opposite() Preference {
	if p == Dark {
		return Light
	}
	return Dark
}

// State is the theme of one display session.
type State struct {
	mu     sync.RWMutex
	store  prefs.Store
	logger *zap.Logger
	cur    Preference
}

// New resolves the initial theme: stored value, then system preference, then
// Default. store and system may be nil.
func New(store prefs.Store, system SystemPreference, logger *zap.Logger) *State {
	s := &State{store: store, logger: logging.OrNop(logger).Named("theme")}
	s.cur = s.resolve(system)
	s.persist(s.cur)
	return s
}

func (s *State) resolve(system SystemPreference) Preference {
	if s.store != nil {
		v, ok, err := s.store.Get(StorageKey)
		switch {
		case err != nil:
			s.logger.Warn("reading stored theme", zap.Error(err))
		case ok:
			if p, err := Parse(v); err == nil {
				return p
			}
			s.logger.Warn("ignoring stored theme", zap.String("value", v))
		}
	}
	if system != nil {
		if p, ok := system(); ok {
			return p
		}
	}
	return Default
}

// persist writes p to the store. Callers hold s.mu so the stored value
// follows the same order as the in-memory one.
func (s *State) persist(p Preference) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(StorageKey, string(p)); err != nil {
		s.logger.Warn("persisting theme", zap.String("theme", string(p)), zap.Error(err))
	}
}

// Current returns the active preference.
func (s *State) Current() Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Toggle flips between light and dark and returns the new value.
func (s *State) Toggle() Preference {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = s.cur.Opposite()
	s.persist(s.cur)
	return s.cur
}

// Set switches to p.
func (s *State) Set(p Preference) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = p
	s.persist(p)
}

// RootClass is the class applied to the root element of the display surface.
func (s *State) RootClass() string {
	if s.Current() == Dark {
		return "dark"
	}
	return ""
}
