package cache

import (
	"context"
	"time"
)

// Loader is anything that can serve a key from cache or compute it.
type Loader[V any] interface {
	GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (V, error)) (V, error)
}

// AgedLoader is a Loader that also reports when the returned value was stored.
type AgedLoader[V any] interface {
	Loader[V]
	GetOrComputeAt(ctx context.Context, key string, compute func(ctx context.Context) (V, error)) (V, time.Time, error)
}

// Tiered chains an in-process front with a back tier: a miss in front is
// served by back, and only a miss in back reaches compute. Values copied
// from back keep the time back stored them, so the front never extends
// an entry's lifetime past the shared TTL.
type Tiered[V any] struct {
	front *TTLCache[V]
	back  AgedLoader[V]
}

// NewTiered creates a Tiered cache.
func NewTiered[V any](front *TTLCache[V], back AgedLoader[V]) *Tiered[V] {
	return &Tiered[V]{front: front, back: back}
}

// GetOrCompute implements Loader.
func (t *Tiered[V]) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := t.front.Get(key); ok {
		return v, nil
	}
	v, at, err := t.back.GetOrComputeAt(ctx, key, compute)
	if err != nil {
		var zero V
		return zero, err
	}
	t.front.SetAt(key, v, at)
	return v, nil
}
