package cachedresults

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Cache struct {
	Cache *cache.Cache[string]
}

// New returns nil without a redis client, and a nil *Cache is a cache that always misses
func New(client *redis.Client, expiration time.Duration) *Cache {
	if client == nil {
		return nil
	}

	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &Cache{
		Cache: cache.New[string](redisStore),
	}
}

// Get decodes a cached JSON value into out and reports whether it was found
func (c *Cache) Get(ctx context.Context, key string, out any) bool {
	if c == nil {
		return false
	}

	cachedObject, err := c.Cache.Get(ctx, key)
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(cachedObject), out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Discarding unreadable cached result")
		return false
	}

	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}

	valueJson, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.Cache.Set(ctx, key, string(valueJson)); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to store cached result")
	}
}
