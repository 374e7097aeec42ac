package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores each visitor's preferences in a Redis hash, so that
// several server replicas share them.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend connects to the given redis:// URL. A plain host:port is
// accepted as well.
func NewRedisBackend(url string) (*RedisBackend, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	if opt.Addr == "" {
		return nil, fmt.Errorf("invalid redis url %q", url)
	}
	return &RedisBackend{client: redis.NewClient(opt), prefix: "nebuladocs:prefs:"}, nil
}

// Ping checks connectivity.
func (r *RedisBackend) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (r *RedisBackend) Load(ctx context.Context, scope, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.prefix+scope, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("loading preference %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisBackend) Save(ctx context.Context, scope, key, value string) error {
	if err := r.client.HSet(ctx, r.prefix+scope, key, value).Err(); err != nil {
		return fmt.Errorf("saving preference %s: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (r *RedisBackend) Close() error {
	return r.client.Close()
}
