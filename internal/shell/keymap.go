package shell

import (
	"sync"

	"github.com/ziadkadry99/nebula-docs/internal/keys"
)

// Keymap dispatches key events to scoped bindings.
type Keymap struct {
	mu       sync.Mutex
	bindings map[int]binding
	next     int
}

type binding struct {
	chord keys.Chord
	fn    func(keys.Event)
}

func NewKeymap() *Keymap {
	return &Keymap{bindings: make(map[int]binding)}
}

// Bind runs fn for every event matching chord until the returned function
// is called. Unbinding twice is harmless.
func (k *Keymap) Bind(chord keys.Chord, fn func(keys.Event)) (unbind func()) {
	k.mu.Lock()
	id := k.next
	k.next++
	k.bindings[id] = binding{chord: chord, fn: fn}
	k.mu.Unlock()

	return func() {
		k.mu.Lock()
		delete(k.bindings, id)
		k.mu.Unlock()
	}
}

// Dispatch runs the handlers bound to ev and reports whether any matched, in
// which case the surface should suppress the key's default action.
func (k *Keymap) Dispatch(ev keys.Event) bool {
	k.mu.Lock()
	var matched []func(keys.Event)
	for id := 0; id < k.next; id++ {
		if b, ok := k.bindings[id]; ok && b.chord.Matches(ev) {
			matched = append(matched, b.fn)
		}
	}
	k.mu.Unlock()

	for _, fn := range matched {
		fn(ev)
	}
	return len(matched) > 0
}

// Len returns the number of active bindings.
func (k *Keymap) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.bindings)
}
