package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a shared, cross-process cache tier backed by Redis.
// Values are stored as JSON with a TTL; Redis expiry does the invalidation.
// Each payload records when it was stored so other tiers can age it.
type RedisCache[V any] struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	now       func() time.Time
}

// envelope is the JSON payload kept under each key.
type envelope[V any] struct {
	StoredAt time.Time `json:"stored_at"`
	Value    V         `json:"value"`
}

var _ AgedLoader[int] = (*RedisCache[int])(nil)

// NewRedisCache creates a RedisCache. If ttl is 0 it defaults to DefaultTTL.
// If namespace is empty, it uses "snapshot". A nil client turns every call
// into a direct compute.
func NewRedisCache[V any](rdb *redis.Client, ttl time.Duration, namespace string, opts ...Option) *RedisCache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "snapshot"
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &RedisCache[V]{
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		now:       o.now,
	}
}

// GetOrCompute checks Redis first and falls back to compute on a miss,
// storing the result best effort.
func (c *RedisCache[V]) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (V, error)) (V, error) {
	v, _, err := c.GetOrComputeAt(ctx, key, compute)
	return v, err
}

// GetOrComputeAt is GetOrCompute that also reports when the value was stored.
func (c *RedisCache[V]) GetOrComputeAt(ctx context.Context, key string, compute func(ctx context.Context) (V, error)) (V, time.Time, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		v, err := compute(ctx)
		return v, c.now(), err
	}

	k := c.cacheKey(key)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, k).Bytes(); err == nil && len(b) > 0 {
		var env envelope[V]
		if err := json.Unmarshal(b, &env); err == nil && !env.StoredAt.IsZero() {
			return env.Value, env.StoredAt, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, k).Err()
	}

	// 2) Compute
	out, err := compute(ctx)
	if err != nil {
		var zero V
		return zero, time.Time{}, err
	}

	// 3) Store in cache (best effort)
	at := c.now()
	if b, err := json.Marshal(envelope[V]{StoredAt: at, Value: out}); err == nil {
		_ = c.rdb.Set(ctx, k, b, c.ttl).Err()
	}
	return out, at, nil
}

// cacheKey generates the namespaced Redis key.
func (c *RedisCache[V]) cacheKey(key string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(key))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
