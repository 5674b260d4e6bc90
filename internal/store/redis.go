package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"attendsheet/internal/attendance"
)

// Redis wraps redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to redis with short timeouts.
func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Redis{Client: client}
}

// Healthy verifies redis connectivity.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}

// RecordCache keeps the full record list in redis, one entry per sort order.
// It is a read-through cache: misses and redis errors both fall back to the
// database, so a dead redis never takes reads down with it.
type RecordCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRecordCache builds a cache on top of an existing redis connection.
func NewRecordCache(r *Redis, ttl time.Duration) *RecordCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RecordCache{rdb: r.Client, ttl: ttl}
}

func cacheKey(order attendance.SortOrder) string {
	return "attendsheet:records:" + string(order)
}

// Get returns the cached record list for the given order, if present.
func (c *RecordCache) Get(ctx context.Context, order attendance.SortOrder) ([]attendance.Record, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, cacheKey(order)).Bytes()
	if err != nil {
		return nil, false
	}
	var records []attendance.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false
	}
	return records, true
}

// Set stores the record list for the given order.
func (c *RecordCache) Set(ctx context.Context, order attendance.SortOrder, records []attendance.Record) {
	if c == nil {
		return
	}
	data, err := json.Marshal(records)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, cacheKey(order), data, c.ttl)
}

// Invalidate drops both cached orders. Called after every write.
func (c *RecordCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, cacheKey(attendance.SortAsc), cacheKey(attendance.SortDesc))
}
