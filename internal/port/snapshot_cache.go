package port

import (
	"context"
	"time"

	"github.com/HansLim7/inventoryapp/internal/core/domain"
)

type SnapshotCache interface {
	// Get returns the cached snapshot for a table name, with false when the
	// snapshot is absent or expired.
	Get(ctx context.Context, table string) (domain.Table, bool, error)

	// Set stores a snapshot under the table name for the given TTL.
	Set(ctx context.Context, table string, t domain.Table, ttl time.Duration) error

	// Invalidate drops the snapshot so the next read hits the store. Writers
	// must call this after any write that should be immediately visible.
	Invalidate(ctx context.Context, table string) error
}
