package shell

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nebula-docs/internal/logging"
	"github.com/ziadkadry99/nebula-docs/internal/theme"
)

// Factory builds the shell of a new visitor. system is the colour scheme the
// visitor's surface reported, if any.
type Factory func(visitorID string, system theme.SystemPreference) *Shell

// Registry keeps one Shell per visitor and closes shells that sit idle for
// longer than the TTL.
type Registry struct {
	mu      sync.Mutex
	cache   *cache.Cache
	ttl     time.Duration
	factory Factory
	logger  *zap.Logger
}

// NewRegistry creates a registry. Expired shells are closed by Run.
func NewRegistry(ttl time.Duration, factory Factory, logger *zap.Logger) *Registry {
	r := &Registry{
		cache:   cache.New(ttl, 0),
		ttl:     ttl,
		factory: factory,
		logger:  logging.OrNop(logger).Named("registry"),
	}
	r.cache.OnEvicted(func(id string, v interface{}) {
		r.logger.Debug("closing display session", zap.String("visitor", id))
		v.(*Shell).Close()
	})
	return r
}

// Get returns the visitor's shell, creating it on first use. Every call
// extends the shell's lifetime by the TTL. system is only consulted when a
// shell is created.
func (r *Registry) Get(visitorID string, system theme.SystemPreference) *Shell {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.cache.Get(visitorID); ok {
		r.cache.SetDefault(visitorID, v)
		return v.(*Shell)
	}
	// An expired entry that the sweeper has not reached yet is closed here
	// before being replaced.
	r.cache.Delete(visitorID)

	s := r.factory(visitorID, system)
	r.cache.SetDefault(visitorID, s)
	r.logger.Debug("created display session", zap.String("visitor", visitorID))
	return s
}

// Lookup returns the visitor's shell without creating one.
func (r *Registry) Lookup(visitorID string) (*Shell, bool) {
	v, ok := r.cache.Get(visitorID)
	if !ok {
		return nil, false
	}
	return v.(*Shell), true
}

// Touch extends the lifetime of sh if it is still the visitor's live shell.
// It reports false once sh has been evicted or replaced.
func (r *Registry) Touch(visitorID string, sh *Shell) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.cache.Get(visitorID)
	if !ok || v.(*Shell) != sh {
		return false
	}
	r.cache.SetDefault(visitorID, v)
	return true
}

// Len returns the number of shells held, including expired ones not yet swept.
func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

// Sweep closes every expired shell.
func (r *Registry) Sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.DeleteExpired()
}

// Run sweeps expired shells until ctx is done, then closes every shell.
func (r *Registry) Run(ctx context.Context) error {
	interval := r.ttl / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.CloseAll()
			return nil
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// CloseAll closes and forgets every shell.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.DeleteExpired()
	for id := range r.cache.Items() {
		r.cache.Delete(id)
	}
}
