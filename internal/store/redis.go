package store

import (
	"context"
	"encoding/json"
	"time"

	"linktrack/internal/config"
	"linktrack/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// LinkKeyPrefix namespaces cached link records
	LinkKeyPrefix = "lt:link:"
	// LinkCacheTTL bounds staleness of cached links
	LinkCacheTTL = 24 * time.Hour
)

// RedisCache is a read-through cache for resolved links on the
// redirect path. Cache errors are reported to the caller but must
// never fail a request; callers treat every error as a miss.
type RedisCache struct {
	client *redis.Client
	cfg    *config.RedisConfig
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(cfg *config.RedisConfig) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("Failed to connect to Redis")
	} else {
		log.Info().Msg("Redis connected successfully")
	}

	return &RedisCache{
		client: rdb,
		cfg:    cfg,
	}
}

// GetClient returns the Redis client
func (c *RedisCache) GetClient() *redis.Client {
	return c.client
}

// SaveLink caches a link record under its slug
func (c *RedisCache) SaveLink(ctx context.Context, link *model.Link, ttl time.Duration) error {
	data, err := json.Marshal(link)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.linkKey(link.Slug), data, ttl).Err()
}

// GetLink retrieves a cached link record; redis.Nil means a miss
func (c *RedisCache) GetLink(ctx context.Context, slug string) (*model.Link, error) {
	data, err := c.client.Get(ctx, c.linkKey(slug)).Bytes()
	if err != nil {
		return nil, err
	}

	var link model.Link
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// Invalidate drops the cached record for a slug. Called on every
// update and soft delete so the redirect path never serves a stale
// destination.
func (c *RedisCache) Invalidate(ctx context.Context, slug string) error {
	return c.client.Del(ctx, c.linkKey(slug)).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) linkKey(slug string) string {
	return LinkKeyPrefix + slug
}
