package lodestone

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// DefaultFetchTimeout bounds a shared fetch when the client has no timeout.
const DefaultFetchTimeout = 2 * time.Minute

// responseCache is a bounded TTL cache keyed by request. Concurrent misses
// for the same key share a single fetch. Errors are never cached.
type responseCache struct {
	entries      *expirable.LRU[string, any]
	group        singleflight.Group
	fetchTimeout time.Duration
}

// newResponseCache returns nil when ttl or size disable caching.
func newResponseCache(ttl time.Duration, size int, fetchTimeout time.Duration) *responseCache {
	if ttl <= 0 || size <= 0 {
		return nil
	}
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &responseCache{
		entries:      expirable.NewLRU[string, any](size, nil, ttl),
		fetchTimeout: fetchTimeout,
	}
}

// cached returns the cached value for key or runs fetch once to fill it.
//
// The shared fetch is detached from any single caller's cancellation and is
// bounded by fetchTimeout instead. Each caller stops waiting when its own
// context is done.
func cached[T any](ctx context.Context, c *responseCache, key string, onHit func(), fetch func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return fetch(ctx)
	}

	if v, ok := c.entries.Get(key); ok {
		if onHit != nil {
			onHit()
		}
		return v.(T), nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		if v, ok := c.entries.Get(key); ok {
			return v, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()

		fresh, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, fresh)
		return fresh, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
