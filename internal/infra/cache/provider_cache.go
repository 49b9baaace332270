package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/randevu-scheduler/internal/dto"
)

const keyPrefix = "providers:list:"

// allCategories is the field used for the unfiltered listing.
const allCategories = "*"

// ProviderCache keeps the public provider listing in Redis, one key per
// category filter. Cache failures are logged and treated as misses.
type ProviderCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProviderCache(client *redis.Client, ttl time.Duration) *ProviderCache {
	return &ProviderCache{client: client, ttl: ttl}
}

func key(category string) string {
	if category == "" {
		category = allCategories
	}
	return keyPrefix + category
}

func (c *ProviderCache) Get(ctx context.Context, category string) ([]dto.ProviderDTO, bool) {
	raw, err := c.client.Get(ctx, key(category)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("provider cache read failed")
		}
		return nil, false
	}

	var providers []dto.ProviderDTO
	if err := json.Unmarshal(raw, &providers); err != nil {
		log.Warn().Err(err).Msg("provider cache entry corrupt")
		return nil, false
	}
	return providers, true
}

func (c *ProviderCache) Set(ctx context.Context, category string, providers []dto.ProviderDTO) {
	raw, err := json.Marshal(providers)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(category), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("provider cache write failed")
	}
}

// Invalidate drops every cached listing.
func (c *ProviderCache) Invalidate(ctx context.Context) {
	var keys []string

	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("provider cache scan failed")
		return
	}

	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("provider cache invalidate failed")
	}
}

// Noop is used when Redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]dto.ProviderDTO, bool) { return nil, false }
func (Noop) Set(context.Context, string, []dto.ProviderDTO) {}
func (Noop) Invalidate(context.Context) {}
