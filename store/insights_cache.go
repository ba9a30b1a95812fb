// api/store/insights_cache.go
package store

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const insightsCacheTTL = 60 * time.Second

// InsightsCache is a short-TTL Redis cache in front of the composed
// insights/dashboard reads. A nil client disables it; every method then
// behaves as a miss.
type InsightsCache struct {
	rdb *redis.Client
}

func NewInsightsCache(rdb *redis.Client) *InsightsCache {
	return &InsightsCache{rdb: rdb}
}

// Get loads a cached payload into dest, reporting whether it was present.
func (c *InsightsCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("Cache read failed for %s: %v", key, err)
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("Cache payload for %s is corrupt, ignoring: %v", key, err)
		return false
	}

	return true
}

// Set stores a payload with the cache TTL. Failures are logged, never
// returned to the caller.
func (c *InsightsCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to encode cache payload for %s: %v", key, err)
		return
	}

	if err := c.rdb.Set(ctx, key, raw, insightsCacheTTL).Err(); err != nil {
		log.Printf("Cache write failed for %s: %v", key, err)
	}
}
