// Package cache holds the in-process snapshot of the order collection.
// Reads within the TTL window never touch the object store; mutations go
// write-through so the snapshot stays consistent with durable state.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"orderdesk/internal/core/domain"
	"orderdesk/internal/ports/outbound"
)

const DefaultTTL = 5 * time.Minute

type CollectionCache struct {
	store outbound.ObjectStore
	key   string
	ttl   time.Duration
	now   func() time.Time

	mu        sync.RWMutex
	snapshot  []domain.Order
	fetchedAt time.Time

	stats *Stats
}

func NewCollectionCache(store outbound.ObjectStore, key string, ttl time.Duration) *CollectionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CollectionCache{
		store: store,
		key:   key,
		ttl:   ttl,
		now:   time.Now,
		stats: NewStats(),
	}
}

// Read returns the collection, reloading through the store when the snapshot
// is missing or older than the TTL. On reload failure the error is returned;
// any previous snapshot is kept only so a later Read may retry, it is never
// served in place of a failed reload.
func (c *CollectionCache) Read(ctx context.Context) ([]domain.Order, error) {
	c.mu.RLock()
	if c.snapshot != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		out := domain.Clone(c.snapshot)
		c.mu.RUnlock()
		c.stats.IncHit()
		return out, nil
	}
	c.mu.RUnlock()

	c.stats.IncMiss()
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("store get %q: %w", c.key, err)
	}

	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("decode collection %q: %w", c.key, err)
	}

	c.mu.Lock()
	c.snapshot = orders
	c.fetchedAt = c.now()
	c.mu.Unlock()
	c.stats.IncReload()

	return domain.Clone(orders), nil
}

// Invalidate drops the snapshot; the next Read reloads. Called when the
// backing document may have changed out-of-band.
func (c *CollectionCache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}

// WriteThrough persists the collection and, only after a successful put,
// replaces the snapshot and resets its freshness. A failed put leaves the
// in-memory view untouched so it cannot diverge from durable state.
func (c *CollectionCache) WriteThrough(ctx context.Context, orders []domain.Order) error {
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if err := c.store.Put(ctx, c.key, data); err != nil {
		return fmt.Errorf("store put %q: %w", c.key, err)
	}

	c.mu.Lock()
	c.snapshot = domain.Clone(orders)
	c.fetchedAt = c.now()
	c.mu.Unlock()

	return nil
}

func (c *CollectionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snapshot)
}

func (c *CollectionCache) Stats() (hits, misses, reloads uint64) {
	return c.stats.Snapshot()
}

var _ outbound.OrderSource = (*CollectionCache)(nil)
