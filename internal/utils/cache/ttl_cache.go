// Package cache provides a small expiring cache whose clock can be replaced in tests.
package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Clock returns the current time.
type Clock func() time.Time

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache maps keys to values that expire ttl after being set. Capacity is
// bounded; the least recently used key is evicted first.
type TTLCache[K comparable, V any] struct {
	store *lru.Cache[K, entry[V]]
	ttl   time.Duration
	now   Clock
}

// Option configures a TTLCache.
type Option func(*options)

type options struct {
	now Clock
}

// WithClock overrides time.Now.
func WithClock(c Clock) Option {
	return func(o *options) { o.now = c }
}

// NewTTLCache creates a cache holding at most size entries.
func NewTTLCache[K comparable, V any](size int, ttl time.Duration, opts ...Option) (*TTLCache[K, V], error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", ttl)
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	store, err := lru.New[K, entry[V]](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru store: %w", err)
	}
	return &TTLCache[K, V]{store: store, ttl: ttl, now: o.now}, nil
}

// Get returns the value for key if present and not expired. Expired entries are dropped.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	e, ok := c.store.Get(key)
	if !ok {
		return zero, false
	}
	if !c.now().Before(e.expiresAt) {
		c.store.Remove(key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous value and resetting its expiry.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.store.Add(key, entry[V]{value: value, expiresAt: c.now().Add(c.ttl)})
}

// Invalidate drops key.
func (c *TTLCache[K, V]) Invalidate(key K) {
	c.store.Remove(key)
}

// TTL is the configured entry lifetime.
func (c *TTLCache[K, V]) TTL() time.Duration { return c.ttl }

// Len counts stored entries, including ones that have expired but not yet been read.
func (c *TTLCache[K, V]) Len() int { return c.store.Len() }
