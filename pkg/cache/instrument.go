package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/planarity/pkg/observability"
)

// Instrumented reports the traffic of a backend to the cache hooks. The key
// type reported is the key up to its first colon.
type Instrumented struct {
	Cache
	hooks observability.CacheHooks
}

// Instrument wraps c. A nil hooks value means the registered hooks at call
// time.
func Instrument(c Cache, hooks observability.CacheHooks) *Instrumented {
	return &Instrumented{Cache: c, hooks: hooks}
}

func (c *Instrumented) h() observability.CacheHooks {
	if c.hooks != nil {
		return c.hooks
	}
	return observability.Cache()
}

// Get implements [Cache].
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if hit {
		c.h().OnCacheHit(ctx, keyType(key))
	} else {
		c.h().OnCacheMiss(ctx, keyType(key))
	}
	return data, hit, nil
}

// Set implements [Cache].
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	c.h().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// Clear forwards to the backend when it supports clearing.
func (c *Instrumented) Clear(ctx context.Context) error {
	if cl, ok := c.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}

func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}
