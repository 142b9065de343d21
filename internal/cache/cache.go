// Package cache holds remote documents for a short time so repeated reads in
// one process do not refetch them.
package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultSize bounds the number of entries a cache keeps.
const DefaultSize = 512

// Clock reports the current time. Tests inject a fake one to control staleness.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Loader produces the value for a key on a miss.
type Loader[V any] func(ctx context.Context) (V, error)

type entry[V any] struct {
	value   V
	expires time.Time
}

// Cache is a size-bounded, time-boxed cache. Concurrent misses for the same
// key share a single loader call. Loader errors are never cached.
type Cache[V any] struct {
	entries *lru.Cache[string, entry[V]]
	group   singleflight.Group
	clock   Clock
}

// New returns a cache holding at most size entries. A nil clock means
// SystemClock.
func New[V any](size int, clock Clock) (*Cache[V], error) {
	if size <= 0 {
		size = DefaultSize
	}
	if clock == nil {
		clock = SystemClock
	}
	entries, err := lru.New[string, entry[V]](size)
	if err != nil {
		return nil, fmt.Errorf("cannot create cache: %w", err)
	}
	return &Cache[V]{entries: entries, clock: clock}, nil
}

// Get returns the cached value for key if it is still fresh, otherwise it
// calls loader and stores the result for ttl. A ttl of zero or less disables
// storing, though concurrent callers are still coalesced.
func (c *Cache[V]) Get(ctx context.Context, key string, loader Loader[V], ttl time.Duration) (V, error) {
	if v, ok := c.Peek(key); ok {
		return v, nil
	}

	res, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have filled the entry while we waited.
		if v, ok := c.Peek(key); ok {
			return v, nil
		}
		v, err := loader(ctx)
		if err != nil {
			return v, err
		}
		if ttl > 0 {
			c.entries.Add(key, entry[V]{value: v, expires: c.clock.Now().Add(ttl)})
		}
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	v, _ := res.(V)
	return v, nil
}

// Peek returns the value for key without loading. Expired entries are
// evicted and reported as missing.
func (c *Cache[V]) Peek(key string) (V, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	if !c.clock.Now().Before(e.expires) {
		c.entries.Remove(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Invalidate drops key.
func (c *Cache[V]) Invalidate(key string) {
	c.entries.Remove(key)
}

// Purge drops every entry.
func (c *Cache[V]) Purge() {
	c.entries.Purge()
}

// Len reports the number of stored entries, fresh or not.
func (c *Cache[V]) Len() int {
	return c.entries.Len()
}
