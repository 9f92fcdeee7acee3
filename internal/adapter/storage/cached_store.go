package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/HansLim7/inventoryapp/internal/core/domain"
	"github.com/HansLim7/inventoryapp/internal/port"
)

// CachePolicy is the explicit caching configuration: how long a read snapshot
// stays valid and whether a write drops the snapshot on its own. With
// InvalidateOnWrite off, invalidation is the caller's job; a read inside the
// TTL after an un-invalidated write returns stale data.
type CachePolicy struct {
	TTL               time.Duration
	InvalidateOnWrite bool
}

// CachedStore decorates a TableStore with a per-table-name snapshot cache.
// Cache failures degrade to direct store access rather than failing the read.
type CachedStore struct {
	inner  port.TableStore
	cache  port.SnapshotCache
	policy CachePolicy
	log    *zap.Logger
}

func NewCachedStore(inner port.TableStore, cache port.SnapshotCache, policy CachePolicy, log *zap.Logger) *CachedStore {
	return &CachedStore{inner: inner, cache: cache, policy: policy, log: log}
}

func (c *CachedStore) Read(ctx context.Context, table string) (domain.Table, error) {
	snap, ok, err := c.cache.Get(ctx, table)
	if err != nil {
		c.log.Warn("snapshot cache read failed, falling back to store",
			zap.String("table", table), zap.Error(err))
	} else if ok {
		return snap, nil
	}

	t, err := c.inner.Read(ctx, table)
	if err != nil {
		return t, err
	}

	if err := c.cache.Set(ctx, table, t, c.policy.TTL); err != nil {
		c.log.Warn("snapshot cache write failed",
			zap.String("table", table), zap.Error(err))
	}
	return t, nil
}

func (c *CachedStore) Write(ctx context.Context, table string, t domain.Table) error {
	if err := c.inner.Write(ctx, table, t); err != nil {
		return err
	}
	if c.policy.InvalidateOnWrite {
		if err := c.cache.Invalidate(ctx, table); err != nil {
			c.log.Warn("snapshot invalidate failed",
				zap.String("table", table), zap.Error(err))
		}
	}
	return nil
}

// Invalidate drops the cached snapshot for a table name.
func (c *CachedStore) Invalidate(ctx context.Context, table string) error {
	return c.cache.Invalidate(ctx, table)
}
