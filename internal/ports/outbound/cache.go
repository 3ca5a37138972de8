package outbound

import (
	"context"

	"orderdesk/internal/core/domain"
)

// OrderSource serves the order collection from a freshness-gated snapshot
// backed by the object store.
type OrderSource interface {
	// Read returns the collection, reloading from the store when the
	// snapshot is missing or stale. A reload failure is surfaced, never
	// papered over with stale data.
	Read(ctx context.Context) ([]domain.Order, error)
	// Invalidate drops the snapshot so the next Read reloads.
	Invalidate()
	// WriteThrough persists the collection and, only on success, replaces
	// the snapshot.
	WriteThrough(ctx context.Context, orders []domain.Order) error
}
