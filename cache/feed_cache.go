package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ideaforge-backend/models"

	"github.com/redis/go-redis/v9"
)

const (
	feedVersionKey = "ideas:feed:version"
	DefaultFeedTTL = 30 * time.Second
)

// FeedCache stores ranked feed pages under a version counter. Invalidate
// bumps the counter so every cached page is skipped; stale keys expire by TTL.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeedCache creates a feed cache with the given page TTL
func NewFeedCache(client *redis.Client, ttl time.Duration) *FeedCache {
	if ttl <= 0 {
		ttl = DefaultFeedTTL
	}
	return &FeedCache{client: client, ttl: ttl}
}

// Version returns the current feed version. Callers read it once before
// loading a page and pass it to both Get and Set, so a page loaded before an
// Invalidate is stored under the old version and never served.
func (c *FeedCache) Version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, feedVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("get feed version: %w", err)
	}
	return version, nil
}

// Get returns the cached page for (sortBy, limit) at version; the bool is false on a miss
func (c *FeedCache) Get(ctx context.Context, version int64, sortBy models.SortOrder, limit int) ([]models.GeneratedIdea, bool, error) {
	data, err := c.client.Get(ctx, pageKey(version, sortBy, limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get feed page: %w", err)
	}

	var ideas []models.GeneratedIdea
	if err := json.Unmarshal(data, &ideas); err != nil {
		return nil, false, fmt.Errorf("decode feed page: %w", err)
	}

	return ideas, true, nil
}

// Set stores a ranked page under the version it was loaded at
func (c *FeedCache) Set(ctx context.Context, version int64, sortBy models.SortOrder, limit int, ideas []models.GeneratedIdea) error {
	data, err := json.Marshal(ideas)
	if err != nil {
		return fmt.Errorf("encode feed page: %w", err)
	}

	return c.client.Set(ctx, pageKey(version, sortBy, limit), data, c.ttl).Err()
}

// Invalidate makes every cached page stale
func (c *FeedCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, feedVersionKey).Err()
}

func pageKey(version int64, sortBy models.SortOrder, limit int) string {
	return fmt.Sprintf("ideas:feed:v%d:%s:%d", version, sortBy, limit)
}
