package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type options struct {
	now func() time.Time
}

// Option configures a TTL cache.
type Option func(*options)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// TTL is a keyed cache whose entries expire a fixed duration after they were
// stored. Concurrent misses for the same key share one computation.
type TTL[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry[V]
	gen     uint64
	group   singleflight.Group
}

// New creates a TTL cache.
func New[V any](ttl time.Duration, opts ...Option) *TTL[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &TTL[V]{
		ttl:     ttl,
		now:     o.now,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the value for key if it has not expired.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// GetOrCompute returns the cached value for key, or runs compute and caches
// its result. Errors are returned but never cached. The bool reports a hit.
//
// Concurrent misses share one compute, which runs under a context detached
// from any single caller's cancellation. Each caller still stops waiting when
// its own ctx is done.
func (c *TTL[V]) GetOrCompute(ctx context.Context, key string, compute func(context.Context) (V, error)) (V, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		v, err := compute(shared)
		if err != nil {
			return v, err
		}

		c.mu.Lock()
		// A Clear that ran while we were computing wins.
		if c.gen == gen {
			c.entries[key] = entry[V]{value: v, expiresAt: c.now().Add(c.ttl)}
		}
		c.mu.Unlock()
		return v, nil
	})

	select {
	case res := <-ch:
		v, _ := res.Val.(V)
		return v, false, res.Err
	case <-ctx.Done():
		var zero V
		return zero, false, ctx.Err()
	}
}

// Clear removes every entry.
func (c *TTL[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
	c.gen++
}
