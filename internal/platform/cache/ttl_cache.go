// Package cache provides the in-process and Redis-backed caches used by the
// snapshot and price pipelines.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const (
	// DefaultTTL is the freshness window applied when a non-positive TTL is given.
	DefaultTTL = 60 * time.Second
	// DefaultCapacity bounds the number of distinct keys kept in memory.
	DefaultCapacity = 1024
)

// Option configures a TTLCache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// entry is an immutable (value, timestamp) pair. Recomputations replace the
// entry rather than mutating it.
type entry[V any] struct {
	key      string
	value    V
	storedAt time.Time
}

// TTLCache is a bounded LRU cache whose entries are considered fresh while
// now-storedAt < ttl. Stale entries are bypassed at read time and replaced on
// the next store; the least recently used key is evicted once capacity is hit.
//
// The table is guarded by a single mutex. GetOrCompute runs compute outside
// the lock, so two concurrent misses for the same key may both compute.
type TTLCache[V any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	items    map[string]*list.Element
	order    *list.List // front = most recently used
	now      func() time.Time
}

// NewTTLCache creates a TTLCache. If ttl is 0 or negative it defaults to
// DefaultTTL; if capacity is 0 or negative it defaults to DefaultCapacity.
func NewTTLCache[V any](ttl time.Duration, capacity int, opts ...Option) *TTLCache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &TTLCache[V]{
		ttl:      ttl,
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		now:      o.now,
	}
}

// Get returns the cached value for key if it is still fresh.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	v, _, ok := c.get(key)
	return v, ok
}

func (c *TTLCache[V]) get(key string) (V, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		return zero, time.Time{}, false
	}
	e := el.Value.(*entry[V])
	if c.now().Sub(e.storedAt) >= c.ttl {
		return zero, time.Time{}, false
	}
	c.order.MoveToFront(el)
	return e.value, e.storedAt, true
}

// Set stores value under key with the current timestamp.
func (c *TTLCache[V]) Set(key string, value V) {
	c.SetAt(key, value, c.now())
}

// SetAt stores value under key as if it had been stored at storedAt, so a
// value copied from another tier keeps its original age.
func (c *TTLCache[V]) SetAt(key string, value V, storedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry[V]{key: key, value: value, storedAt: storedAt}
	if el, ok := c.items[key]; ok {
		el.Value = e
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(e)
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*entry[V]).key)
	}
}

// GetOrCompute returns the fresh cached value for key, or invokes compute,
// stores its result and returns it. Errors from compute are returned as-is
// and nothing is stored.
func (c *TTLCache[V]) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (V, error)) (V, error) {
	v, _, err := c.GetOrComputeAt(ctx, key, compute)
	return v, err
}

// GetOrComputeAt is GetOrCompute that also reports when the value was stored.
func (c *TTLCache[V]) GetOrComputeAt(ctx context.Context, key string, compute func(ctx context.Context) (V, error)) (V, time.Time, error) {
	if v, at, ok := c.get(key); ok {
		return v, at, nil
	}
	v, err := compute(ctx)
	if err != nil {
		var zero V
		return zero, time.Time{}, err
	}
	at := c.now()
	c.SetAt(key, v, at)
	return v, at, nil
}

// Len reports the number of entries currently held, fresh or stale.
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
