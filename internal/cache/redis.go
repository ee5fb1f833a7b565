// Package cache is the optional redis layer shared by dashboard replicas.
// Every function degrades to a no-op when redis is not connected.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces every key written by the dashboard.
const KeyPrefix = "subsidy:"

var client *redis.Client

// Init connects to redis at addr. On failure the client stays nil and
// callers fall back to in-process state only.
func Init(addr, password string) error {
	if addr == "" {
		addr = "redis:6379"
	}

	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		client = nil
		return err
	}
	client = c
	return nil
}

// UseClient installs an already connected client.
func UseClient(c *redis.Client) {
	client = c
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// Close releases the connection.
func Close() {
	if client == nil {
		return
	}
	client.Close()
	client = nil
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, KeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, KeyPrefix+key, data, ttl)
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = KeyPrefix + k
	}
	client.Del(ctx, prefixed...)
}

// InvalidatePrefix removes every key starting with prefix.
func InvalidatePrefix(ctx context.Context, prefix string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, KeyPrefix+prefix+"*").Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateStatistics drops every cached statistics payload.
func InvalidateStatistics(ctx context.Context) {
	InvalidatePrefix(ctx, "stats:")
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// Shared exposes the package-level client to the stores.
type Shared struct{}

func (Shared) Get(ctx context.Context, key string) ([]byte, bool) {
	return GetCached(ctx, key)
}

func (Shared) Set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	SetCached(ctx, key, data, ttl)
}

func (Shared) DeletePrefix(ctx context.Context, prefix string) {
	InvalidatePrefix(ctx, prefix)
}
