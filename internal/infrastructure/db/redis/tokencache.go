package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenCache keeps the last-issued token per user, expiring with the token
// itself. Key format: token:last:<user_id>
//
// The cache mirrors the access_token field on the user record; neither copy
// is consulted during authorization, which always re-verifies the token
// presented on the request.
type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenCache creates a TokenCache whose entries live as long as the
// tokens they mirror.
func NewTokenCache(client *redis.Client, ttl time.Duration) *TokenCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenCache{client: client, ttl: ttl}
}

// SetLastToken records the token most recently issued to a user.
func (c *TokenCache) SetLastToken(ctx context.Context, userID int64, token string) error {
	return c.client.Set(ctx, c.key(userID), token, c.ttl).Err()
}

// LastToken returns the most recently issued token, or "" when none is cached.
func (c *TokenCache) LastToken(ctx context.Context, userID int64) (string, error) {
	val, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("token cache get: %w", err)
	}
	return val, nil
}

func (c *TokenCache) key(userID int64) string {
	return fmt.Sprintf("token:last:%d", userID)
}
