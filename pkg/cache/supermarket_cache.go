package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const supermarketKeyPrefix = "supermarkets"

// SupermarketCache holds each user's distinct supermarket-name list for
// autocomplete. Keys are scoped by userID to prevent cross-user data leakage.
// Key format: "supermarkets:{userID}".
//
// The cache is a display-level optimization, never a correctness input: the
// TTL bounds staleness and the worker invalidates entries on receipt.changed
// events.
type SupermarketCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewSupermarketCache creates a SupermarketCache backed by the given
// RedisClient with the given entry TTL.
func NewSupermarketCache(r *RedisClient, ttl time.Duration) *SupermarketCache {
	return &SupermarketCache{client: r, ttl: ttl}
}

// Get retrieves the cached supermarket list for a user.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *SupermarketCache) Get(ctx context.Context, userID uuid.UUID) ([]string, error) {
	data, err := c.client.Client().Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("cache decode supermarkets: %w", err)
	}
	return names, nil
}

// Set stores the supermarket list for a user with the configured TTL.
func (c *SupermarketCache) Set(ctx context.Context, userID uuid.UUID, names []string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("cache encode supermarkets: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.key(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set supermarkets: %w", err)
	}
	return nil
}

// Invalidate drops the cached list for a user. Missing keys are not an error.
func (c *SupermarketCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate supermarkets: %w", err)
	}
	return nil
}

func (c *SupermarketCache) key(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", supermarketKeyPrefix, userID)
}
