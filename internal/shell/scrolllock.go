package shell

import "sync"

// ScrollLock suspends background scrolling while any holder has it.
type ScrollLock struct {
	mu    sync.Mutex
	depth int
}

func (l *ScrollLock) Acquire() {
	l.mu.Lock()
	l.depth++
	l.mu.Unlock()
}

// Release gives up one hold. Extra releases are ignored.
func (l *ScrollLock) Release() {
	l.mu.Lock()
	if l.depth > 0 {
		l.depth--
	}
	l.mu.Unlock()
}

// Locked reports whether scrolling is suspended.
func (l *ScrollLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.depth > 0
}
