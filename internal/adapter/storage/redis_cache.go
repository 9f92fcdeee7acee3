package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HansLim7/inventoryapp/internal/core/domain"
)

const snapshotKeyPrefix = "snapshot:"

// RedisCache stores short-lived table snapshots in Redis so repeated reads
// within the TTL skip the spreadsheet API. Snapshots are JSON-encoded whole
// tables keyed by table name; expiry is left to Redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, table string) (domain.Table, bool, error) {
	raw, err := r.client.Get(ctx, snapshotKeyPrefix+table).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Table{}, false, nil
	}
	if err != nil {
		return domain.Table{}, false, fmt.Errorf("snapshot get %s: %w", table, err)
	}

	var t domain.Table
	if err := json.Unmarshal(raw, &t); err != nil {
		// A corrupt snapshot is treated as a miss; the next Set overwrites it.
		return domain.Table{}, false, nil
	}
	return t, true, nil
}

func (r *RedisCache) Set(ctx context.Context, table string, t domain.Table, ttl time.Duration) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("snapshot encode %s: %w", table, err)
	}
	if err := r.client.Set(ctx, snapshotKeyPrefix+table, raw, ttl).Err(); err != nil {
		return fmt.Errorf("snapshot set %s: %w", table, err)
	}
	return nil
}

func (r *RedisCache) Invalidate(ctx context.Context, table string) error {
	if err := r.client.Del(ctx, snapshotKeyPrefix+table).Err(); err != nil {
		return fmt.Errorf("snapshot invalidate %s: %w", table, err)
	}
	return nil
}
