package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "crm:lead_score:"

// Cache stores computed scores in Redis so dashboards do not rescore on every
// request. A nil *Cache is a valid, always-missing cache.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func cacheKey(leadID uuid.UUID) string {
	return cacheKeyPrefix + leadID.String()
}

// Get returns the cached score and whether it was present.
func (c *Cache) Get(ctx context.Context, leadID uuid.UUID) (Result, bool, error) {
	if c == nil {
		return Result{}, false, nil
	}

	data, err := c.rdb.Get(ctx, cacheKey(leadID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, err
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, false, err
	}
	if result.Version != scoreVersion {
		return Result{}, false, nil
	}
	return result, true, nil
}

func (c *Cache) Set(ctx context.Context, result Result) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(result.LeadID), data, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, leadID uuid.UUID) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, cacheKey(leadID)).Err()
}
