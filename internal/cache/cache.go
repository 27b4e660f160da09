package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenCache holds token -> user id entries in Redis so authenticated
// requests skip a database lookup. A nil *TokenCache is a disabled cache:
// every operation is a no-op, which keeps the store as the source of truth.
type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a token cache and verifies Redis connectivity
func New(address, password string, db int, ttl time.Duration) (*TokenCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &TokenCache{client: client, ttl: ttl}, nil
}

func tokenKey(token string) string {
	return "auth:token:" + token
}

// Get returns the cached user id for a token, or "" on a miss
func (c *TokenCache) Get(ctx context.Context, token string) (string, error) {
	if c == nil {
		return "", nil
	}

	val, err := c.client.Get(ctx, tokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cached token: %w", err)
	}

	return val, nil
}

// Set stores a token -> user id entry. The entry expires with the cache TTL,
// capped at the token's remaining validity so a cached token can never
// outlive the credential itself.
func (c *TokenCache) Set(ctx context.Context, token, userID string, remaining time.Duration) error {
	if c == nil {
		return nil
	}
	if remaining <= 0 {
		return nil
	}

	if err := c.client.Set(ctx, tokenKey(token), userID, c.effectiveTTL(remaining)).Err(); err != nil {
		return fmt.Errorf("failed to cache token: %w", err)
	}

	return nil
}

// Delete drops a cached token entry (logout, revocation)
func (c *TokenCache) Delete(ctx context.Context, token string) error {
	if c == nil {
		return nil
	}

	if err := c.client.Del(ctx, tokenKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to drop cached token: %w", err)
	}

	return nil
}

// effectiveTTL caps the configured cache TTL at the token's remaining life
func (c *TokenCache) effectiveTTL(remaining time.Duration) time.Duration {
	if c.ttl > 0 && c.ttl < remaining {
		return c.ttl
	}
	return remaining
}

// Ping verifies Redis connectivity
func (c *TokenCache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *TokenCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
