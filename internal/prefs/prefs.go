// Package prefs persists small per-visitor preference values such as the
// colour theme. Reads and writes are best-effort: callers keep their own
// in-memory state and treat the store as a cache of it.
package prefs

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrUnavailable is returned by stores that cannot reach their backend.
var ErrUnavailable = errors.New("preference storage unavailable")

// Backend persists preference values for many visitors, partitioned by scope.
type Backend interface {
	Load(ctx context.Context, scope, key string) (string, bool, error)
	Save(ctx context.Context, scope, key, value string) error
}

// Store is the synchronous, single-visitor view of a Backend.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// DefaultTimeout bounds each backend call made through a scoped Store.
const DefaultTimeout = 2 * time.Second

type scopedStore struct {
	backend Backend
	scope   string
	timeout time.Duration
}

// ForScope returns a Store that reads and writes keys of one visitor.
func ForScope(b Backend, scope string) Store {
	return &scopedStore{backend: b, scope: scope, timeout: DefaultTimeout}
}

func (s *scopedStore) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.backend.Load(ctx, s.scope, key)
}

func (s *scopedStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.backend.Save(ctx, s.scope, key, value)
}

// MemoryBackend keeps preferences in process memory. Values are lost on restart.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (m *MemoryBackend) Load(_ context.Context, scope, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[scope+"\x00"+key]
	return v, ok, nil
}

func (m *MemoryBackend) Save(_ context.Context, scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[scope+"\x00"+key] = value
	return nil
}
