package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented TTL cache
type Cache interface {
	// Get returns the value stored under key if it has not expired
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key
	Delete(ctx context.Context, key string) error

	// Clear removes every entry
	Clear(ctx context.Context) error
}

// Stats reports cache usage
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Entries   int   `json:"entries"`
	Capacity  int   `json:"capacity"`
}
