package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nDmitry/ytblog/internal/app"
	"github.com/nDmitry/ytblog/internal/cache"
	"github.com/nDmitry/ytblog/internal/entity"
)

// CachedClient keeps successful API responses in a cache to save quota.
// Empty results are never cached.
type CachedClient struct {
	api    API
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedClient wraps api. A zero ttl disables caching entirely.
func NewCachedClient(api API, c cache.Cache, ttl time.Duration) *CachedClient {
	return &CachedClient{
		api:    api,
		cache:  c,
		ttl:    ttl,
		logger: app.Logger(),
	}
}

func (c *CachedClient) SearchChannelID(ctx context.Context, term string) (string, error) {
	return cached(ctx, c, "youtube:search:"+term,
		func() (string, error) { return c.api.SearchChannelID(ctx, term) },
		func(id string) bool { return id != "" },
	)
}

func (c *CachedClient) ChannelDetails(ctx context.Context, channelID string) (*entity.Channel, error) {
	return cached(ctx, c, "youtube:channel:"+channelID,
		func() (*entity.Channel, error) { return c.api.ChannelDetails(ctx, channelID) },
		func(ch *entity.Channel) bool { return ch != nil },
	)
}

func (c *CachedClient) RecentVideos(ctx context.Context, channelID string, limit int64) ([]entity.VideoSummary, error) {
	return cached(ctx, c, fmt.Sprintf("youtube:videos:%s:%d", channelID, limit),
		func() ([]entity.VideoSummary, error) { return c.api.RecentVideos(ctx, channelID, limit) },
		func(v []entity.VideoSummary) bool { return len(v) > 0 },
	)
}

func cached[T any](ctx context.Context, c *CachedClient, key string, fetch func() (T, error), keep func(T) bool) (T, error) {
	if c.ttl <= 0 {
		return fetch()
	}

	if raw, err := c.cache.Get(ctx, key); err == nil {
		var value T

		if err := json.Unmarshal(raw, &value); err == nil {
			return value, nil
		}

		c.logger.Error("Could not decode cached value", "key", key)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		c.logger.Error("Cache error", "key", key, "error", err)
	}

	value, err := fetch()

	if err != nil || !keep(value) {
		return value, err
	}

	raw, err := json.Marshal(value)

	if err != nil {
		c.logger.Error("Could not encode value for cache", "key", key, "error", err)
		return value, nil
	}

	// Use background context for caching to avoid cancellation
	cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.cache.Set(cacheCtx, key, raw, c.ttl); err != nil {
		c.logger.Error("Failed to cache value", "key", key, "error", err)
	}

	return value, nil
}
