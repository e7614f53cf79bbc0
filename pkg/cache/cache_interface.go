package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer so that the
// implementation (Redis, in-memory) can be swapped.
type Cache interface {
	// Get reads data from cache and unmarshals into dest.
	// found = false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores data in cache with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from cache.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes all keys matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
