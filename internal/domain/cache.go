package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache defines the interface (port) for the key-value store holding answer keys.
type Cache interface {
	// Get retrieves an item from the cache.
	// It returns ErrCacheMiss if the key is not found or has expired.
	Get(ctx context.Context, key string) (string, error)

	// Set stores an item, overwriting an existing one.
	// The item becomes unreachable once expiration elapses.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Ping checks the health of the cache service.
	Ping(ctx context.Context) error
}
