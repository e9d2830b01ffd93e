// Package cache stores computed planarity results keyed by a content hash of
// the input graph and the options that shaped the result.
//
// Backends: [NullCache] stores nothing, [FileCache] keeps one file per entry
// for CLI use, [RedisCache] is shared between server replicas and
// [BadgerCache] is an embedded store for a single long-running process.
// [Open] picks one from a [Config]. Wrap a backend with [Instrument] to
// report hits and misses to the observability hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}
