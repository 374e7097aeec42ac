// Package keys describes keyboard events coming from a display surface and
// the chords they are matched against.
package keys

import (
	"fmt"
	"strings"
)

// Event is a key press as reported by the surface. Key follows the DOM
// KeyboardEvent.key convention ("k", "Enter", "Escape").
type Event struct {
	Key   string `json:"key"`
	Shift bool   `json:"shift,omitempty"`
	Ctrl  bool   `json:"ctrl,omitempty"`
	Meta  bool   `json:"meta,omitempty"`
	Alt   bool   `json:"alt,omitempty"`
}

// Chord is a key plus required modifiers. Mod matches either Ctrl or Meta so
// one binding covers every platform's primary modifier.
type Chord struct {
	Key   string
	Mod   bool
	Shift bool
	Alt   bool
}

// Parse reads chords written as "Mod+K" or "Shift+Enter". Modifier names are
// case-insensitive; single-letter keys are normalised to lower case.
func Parse(s string) (Chord, error) {
	parts := strings.Split(s, "+")
	var c Chord
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == len(parts)-1 {
			if p == "" {
				return Chord{}, fmt.Errorf("chord %q has no key", s)
			}
			c.Key = normalise(p)
			break
		}
		switch strings.ToLower(p) {
		case "mod", "ctrl", "cmd", "meta":
			c.Mod = true
		case "shift":
			c.Shift = true
		case "alt", "option":
			c.Alt = true
		default:
			return Chord{}, fmt.Errorf("chord %q: unknown modifier %q", s, p)
		}
	}
	return c, nil
}

// MustParse is Parse for chords known at compile time.
func MustParse(s string) Chord {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Matches reports whether ev is this chord.
func (c Chord) Matches(ev Event) bool {
	if normalise(ev.Key) != c.Key {
		return false
	}
	if c.Mod != (ev.Ctrl || ev.Meta) {
		return false
	}
	return c.Shift == ev.Shift && c.Alt == ev.Alt
}

func (c Chord) String() string {
	var parts []string
	if c.Mod {
		parts = append(parts, "Mod")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	if c.Alt {
		parts = append(parts, "Alt")
	}
	key := c.Key
	if len(key) == 1 {
		key = strings.ToUpper(key)
	}
	return strings.Join(append(parts, key), "+")
}

func normalise(key string) string {
	if len(key) == 1 {
		return strings.ToLower(key)
	}
	return key
}
