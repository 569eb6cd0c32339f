package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
)

const (
	leaderboardTTL        = 30 * time.Second
	leaderboardKeyPattern = "leaderboard:top:*"
)

// LeaderboardCache caches top-accounts query results in Redis, keyed by
// the requested limit. Entries expire after leaderboardTTL and are
// dropped eagerly whenever a balance changes.
type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(client *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{client: client}
}

// Get returns the cached entries for limit and whether the key existed.
func (c *LeaderboardCache) Get(ctx context.Context, limit int) ([]*domain.Account, bool, error) {
	raw, err := c.client.Get(ctx, c.key(limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leaderboard get: %w", err)
	}

	var accounts []*domain.Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, false, fmt.Errorf("leaderboard decode: %w", err)
	}
	return accounts, true, nil
}

// Set stores the entries for limit with the cache TTL.
func (c *LeaderboardCache) Set(ctx context.Context, limit int, accounts []*domain.Account) error {
	raw, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("leaderboard encode: %w", err)
	}
	return c.client.Set(ctx, c.key(limit), raw, leaderboardTTL).Err()
}

// Invalidate removes every cached leaderboard key, whatever its limit.
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, leaderboardKeyPattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("leaderboard scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *LeaderboardCache) key(limit int) string {
	return fmt.Sprintf("leaderboard:top:%d", limit)
}
