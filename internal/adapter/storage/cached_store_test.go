package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HansLim7/inventoryapp/internal/core/domain"
)

type countingStore struct {
	tables map[string]domain.Table
	reads  int
	writes int
}

func (c *countingStore) Read(ctx context.Context, table string) (domain.Table, error) {
	c.reads++
	return c.tables[table].Clone(), nil
}

func (c *countingStore) Write(ctx context.Context, table string, t domain.Table) error {
	c.writes++
	c.tables[table] = t.Clone()
	return nil
}

type mapCache struct {
	snapshots map[string]domain.Table
}

func newMapCache() *mapCache {
	return &mapCache{snapshots: make(map[string]domain.Table)}
}

func (m *mapCache) Get(ctx context.Context, table string) (domain.Table, bool, error) {
	t, ok := m.snapshots[table]
	return t, ok, nil
}

func (m *mapCache) Set(ctx context.Context, table string, t domain.Table, ttl time.Duration) error {
	m.snapshots[table] = t.Clone()
	return nil
}

func (m *mapCache) Invalidate(ctx context.Context, table string) error {
	delete(m.snapshots, table)
	return nil
}

func seedInventory() domain.Table {
	t := domain.NewTable([]string{domain.ColProduct, domain.ColSize, domain.ColQuantity})
	t.Rows = [][]string{{"Shirt", "M", "10"}}
	return t
}

func TestCachedStore_ReadServedFromSnapshot(t *testing.T) {
	inner := &countingStore{tables: map[string]domain.Table{"Sheet1": seedInventory()}}
	cached := NewCachedStore(inner, newMapCache(), CachePolicy{TTL: 5 * time.Second}, zap.NewNop())

	first, err := cached.Read(context.Background(), "Sheet1")
	require.NoError(t, err)
	second, err := cached.Read(context.Background(), "Sheet1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.reads)
}

func TestCachedStore_StaleReadAfterUninvalidatedWrite(t *testing.T) {
	inner := &countingStore{tables: map[string]domain.Table{"Sheet1": seedInventory()}}
	cached := NewCachedStore(inner, newMapCache(), CachePolicy{TTL: 5 * time.Second}, zap.NewNop())

	_, err := cached.Read(context.Background(), "Sheet1")
	require.NoError(t, err)

	updated := seedInventory()
	updated.SetQuantity(0, 15)
	require.NoError(t, cached.Write(context.Background(), "Sheet1", updated))

	// InvalidateOnWrite is off: the snapshot still serves the old quantity.
	stale, err := cached.Read(context.Background(), "Sheet1")
	require.NoError(t, err)
	item, _, _ := stale.FindItem("Shirt", "M")
	assert.Equal(t, 10, item.Quantity)

	// After explicit invalidation the fresh table comes back.
	require.NoError(t, cached.Invalidate(context.Background(), "Sheet1"))
	fresh, err := cached.Read(context.Background(), "Sheet1")
	require.NoError(t, err)
	item, _, _ = fresh.FindItem("Shirt", "M")
	assert.Equal(t, 15, item.Quantity)
}

func TestCachedStore_InvalidateOnWritePolicy(t *testing.T) {
	inner := &countingStore{tables: map[string]domain.Table{"Sheet1": seedInventory()}}
	cached := NewCachedStore(inner, newMapCache(),
		CachePolicy{TTL: 5 * time.Second, InvalidateOnWrite: true}, zap.NewNop())

	_, err := cached.Read(context.Background(), "Sheet1")
	require.NoError(t, err)

	updated := seedInventory()
	updated.SetQuantity(0, 15)
	require.NoError(t, cached.Write(context.Background(), "Sheet1", updated))

	fresh, err := cached.Read(context.Background(), "Sheet1")
	require.NoError(t, err)
	item, _, _ := fresh.FindItem("Shirt", "M")
	assert.Equal(t, 15, item.Quantity)
}
