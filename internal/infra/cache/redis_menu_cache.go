// Package cache implements the menu read-through cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"playden/config"
	"playden/internal/domain/entity"
	"playden/internal/domain/service"
)

const (
	menuVersionKey = "menu:version"
	defaultMenuTTL = 5 * time.Minute
)

// redisMenuCache stores menu listings keyed by filter under a version prefix.
// Invalidation bumps the version counter so stale keys simply expire.
type redisMenuCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// CacheParams holds dependencies for MenuCache, injected by Fx
type CacheParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewMenuCache creates a MenuCache backed by Redis. When Redis is not
// configured a no-op cache is returned and every lookup is a miss.
func NewMenuCache(params CacheParams) service.MenuCache {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		params.Logger.Info("Redis not configured, menu cache disabled")

		return &noopMenuCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	ttl := cfg.MenuTTL
	if ttl <= 0 {
		ttl = defaultMenuTTL
	}

	return &redisMenuCache{
		client: client,
		ttl:    ttl,
		logger: params.Logger,
	}
}

// GetItems retrieves a cached listing. The second return is false on a miss.
func (c *redisMenuCache) GetItems(ctx context.Context, category string, availableOnly bool) ([]*entity.MenuItem, bool) {
	key, err := c.listKey(ctx, category, availableOnly)
	if err != nil {
		c.logger.Warn("menu cache read skipped", slog.Any("error", err))

		return nil, false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("menu cache read failed", slog.Any("error", err))
		}

		return nil, false
	}

	var items []*entity.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.Warn("menu cache entry corrupted", slog.Any("error", err))

		return nil, false
	}

	return items, true
}

// SetItems stores a listing under its filter key.
func (c *redisMenuCache) SetItems(ctx context.Context, category string, availableOnly bool, items []*entity.MenuItem) {
	key, err := c.listKey(ctx, category, availableOnly)
	if err != nil {
		c.logger.Warn("menu cache write skipped", slog.Any("error", err))

		return
	}

	raw, err := json.Marshal(items)
	if err != nil {
		c.logger.Warn("menu cache marshal failed", slog.Any("error", err))

		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("menu cache write failed", slog.Any("error", err))
	}
}

// Invalidate drops all cached listings by bumping the version counter.
// Old keys are left to expire with their TTL.
func (c *redisMenuCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, menuVersionKey).Err(); err != nil {
		c.logger.Warn("menu cache invalidation failed", slog.Any("error", err))
	}
}

func (c *redisMenuCache) listKey(ctx context.Context, category string, availableOnly bool) (string, error) {
	version, err := c.client.Get(ctx, menuVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}

	if category == "" {
		category = "all"
	}

	return fmt.Sprintf("menu:v%d:items:%s:%t", version, category, availableOnly), nil
}

// noopMenuCache is used when Redis is disabled. Every lookup is a miss.
type noopMenuCache struct{}

func (c *noopMenuCache) GetItems(ctx context.Context, category string, availableOnly bool) ([]*entity.MenuItem, bool) {
	return nil, false
}

func (c *noopMenuCache) SetItems(ctx context.Context, category string, availableOnly bool, items []*entity.MenuItem) {
}

func (c *noopMenuCache) Invalidate(ctx context.Context) {}

// Module provides the cache FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewMenuCache),
)
