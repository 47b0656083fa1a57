package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	"github.com/octofitlabs/octofit-backend/pkg/redis"
)

// TopCache keeps the fully ordered leaderboard in Redis so repeated Top reads
// skip the store. All limits are served by slicing the cached list; a refresh
// or reindex drops the key.
type TopCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTopCache wires the cache; a nil client disables caching entirely.
func NewTopCache(client *redis.Client, ttl time.Duration) *TopCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &TopCache{client: client, ttl: ttl}
}

func (c *TopCache) key() string {
	return c.client.LeaderboardKey("top")
}

// Get returns the cached ordered entries, or false on miss or decode failure.
func (c *TopCache) Get(ctx context.Context) ([]models.LeaderboardEntry, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.key())
	if err != nil {
		return nil, false
	}
	var entries []models.LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// Set stores the ordered entries. Failures are reported but non-fatal to the
// read path.
func (c *TopCache) Set(ctx context.Context, entries []models.LeaderboardEntry) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(), string(data), c.ttl)
}

// Invalidate drops the cached ordering.
func (c *TopCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	err := c.client.Del(ctx, c.key())
	if errors.Is(err, redis.ErrCacheMiss) {
		return nil
	}
	return err
}
