// internal/course/cache.go
// Redis cache for ranked recommendations.
// Keys embed the catalogue version and a fingerprint of profile + filters.
// Bumping the version invalidates every entry.

package course

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-redis/redis/v8"

	"github.com/imadgeboyega/datemate-backend/internal/preference"
)

const catalogVersionKey = "course:catalog:version"

// RecommendationCache stores ranked recommendations. Key is resolved once,
// before the catalogue is read, so a ranking is never stored under a
// catalogue version newer than the one it was computed from.
type RecommendationCache interface {
	// Key returns false when nothing should be cached
	Key(ctx context.Context, userID int64, profile preference.UserProfile, filters *RecommendFilters) (string, bool)
	Get(ctx context.Context, key string) ([]*ScoredCourse, bool)
	Set(ctx context.Context, key string, ranked []*ScoredCourse)
	InvalidateAll(ctx context.Context)
}

// cacheBackend is the slice of *redis.Client the cache uses
type cacheBackend interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

type redisCache struct {
	client cacheBackend
	ttl    time.Duration
}

// NewRedisCache returns a no-op cache when client is nil
func NewRedisCache(client *redis.Client, ttl time.Duration) RecommendationCache {
	if client == nil {
		return noopCache{}
	}
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Key(ctx context.Context, userID int64, profile preference.UserProfile, filters *RecommendFilters) (string, bool) {
	version, err := c.client.Get(ctx, catalogVersionKey).Int64()
	if err != nil && err != redis.Nil {
		log.Printf("⚠️  Recommendation cache version read failed: %v", err)
		return "", false
	}

	return fmt.Sprintf("course:recommend:%d:%d:%x", userID, version, fingerprint(profile, filters)), true
}

func (c *redisCache) Get(ctx context.Context, key string) ([]*ScoredCourse, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️  Recommendation cache read failed: %v", err)
		}
		recordCacheLookup(false)
		return nil, false
	}

	var ranked []*ScoredCourse
	if err := json.Unmarshal(data, &ranked); err != nil {
		recordCacheLookup(false)
		return nil, false
	}

	recordCacheLookup(true)
	return ranked, true
}

func (c *redisCache) Set(ctx context.Context, key string, ranked []*ScoredCourse) {
	data, err := json.Marshal(ranked)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("⚠️  Recommendation cache write failed: %v", err)
	}
}

func (c *redisCache) InvalidateAll(ctx context.Context) {
	if err := c.client.Incr(ctx, catalogVersionKey).Err(); err != nil {
		log.Printf("⚠️  Failed to bump course catalogue version: %v", err)
	}
}

// fingerprint hashes the inputs that change a ranking
func fingerprint(profile preference.UserProfile, filters *RecommendFilters) uint64 {
	payload, _ := json.Marshal(struct {
		Profile preference.UserProfile `json:"profile"`
		Filters *RecommendFilters      `json:"filters"`
	}{profile, filters})
	return xxhash.Sum64(payload)
}

type noopCache struct{}

func (noopCache) Key(context.Context, int64, preference.UserProfile, *RecommendFilters) (string, bool) {
	return "", false
}

func (noopCache) Get(context.Context, string) ([]*ScoredCourse, bool) {
	return nil, false
}

func (noopCache) Set(context.Context, string, []*ScoredCourse) {}

func (noopCache) InvalidateAll(context.Context) {}
