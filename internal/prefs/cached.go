package prefs

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedBackend is a read-through cache in front of a slower backend.
type CachedBackend struct {
	next  Backend
	cache *cache.Cache
}

// NewCachedBackend wraps next; entries expire after ttl.
func NewCachedBackend(next Backend, ttl time.Duration) *CachedBackend {
	return &CachedBackend{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func cacheKey(scope, key string) string { return scope + "\x00" + key }

func (c *CachedBackend) Load(ctx context.Context, scope, key string) (string, bool, error) {
	if v, ok := c.cache.Get(cacheKey(scope, key)); ok {
		return v.(string), true, nil
	}
	v, ok, err := c.next.Load(ctx, scope, key)
	if err != nil || !ok {
		return v, ok, err
	}
	c.cache.SetDefault(cacheKey(scope, key), v)
	return v, true, nil
}

// Save writes through; the cache is only updated when the write succeeds.
func (c *CachedBackend) Save(ctx context.Context, scope, key, value string) error {
	if err := c.next.Save(ctx, scope, key, value); err != nil {
		c.cache.Delete(cacheKey(scope, key))
		return err
	}
	c.cache.SetDefault(cacheKey(scope, key), value)
	return nil
}
