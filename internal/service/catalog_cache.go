package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prepmitra/mocktest-backend/internal/config"
	"github.com/prepmitra/mocktest-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CatalogCache caches the serialized test catalog. Implementations must
// treat every cache problem as a miss: listing correctness never depends
// on the cache being reachable.
type CatalogCache interface {
	Get(ctx context.Context) ([]model.TestSummary, bool)
	Set(ctx context.Context, summaries []model.TestSummary)
	Invalidate(ctx context.Context)
}

// RedisCatalogCache stores the catalog as a JSON blob in Redis with a TTL
// backstop; mutations invalidate it eagerly.
type RedisCatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewRedisCatalogCache creates a new RedisCatalogCache.
func NewRedisCatalogCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *RedisCatalogCache {
	return &RedisCatalogCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With().Str("component", "catalog_cache").Logger(),
	}
}

// Get returns the cached catalog, or a miss on absence or any failure.
func (c *RedisCatalogCache) Get(ctx context.Context) ([]model.TestSummary, bool) {
	raw, err := c.rdb.Get(ctx, config.CacheKey.TestCatalogKey()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("Catalog cache read failed")
		}
		return nil, false
	}

	var summaries []model.TestSummary
	if err := json.Unmarshal(raw, &summaries); err != nil {
		c.log.Warn().Err(err).Msg("Catalog cache payload corrupt, discarding")
		c.Invalidate(ctx)
		return nil, false
	}
	return summaries, true
}

// Set stores the catalog. Failures are logged and ignored.
func (c *RedisCatalogCache) Set(ctx context.Context, summaries []model.TestSummary) {
	raw, err := json.Marshal(summaries)
	if err != nil {
		c.log.Warn().Err(err).Msg("Catalog cache marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, config.CacheKey.TestCatalogKey(), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("Catalog cache write failed")
	}
}

// Invalidate drops the cached catalog.
func (c *RedisCatalogCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, config.CacheKey.TestCatalogKey()).Err(); err != nil {
		c.log.Warn().Err(err).Msg("Catalog cache invalidation failed")
	}
}
