package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/workhive/workhive/internal/auth"
	"github.com/workhive/workhive/internal/model"
)

const (
	// identityCachePrefix is the Redis key prefix for verified-token cache.
	identityCachePrefix = "auth:id:"
	// identityCacheTTL caps how long a verified identity is cached.
	identityCacheTTL = 5 * time.Minute
)

// cachedIdentity represents a verified caller stored in Redis.
// ExpiresAt is the token's own expiry; an entry is never served past it.
type cachedIdentity struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"exp"`
}

func (c cachedIdentity) expired(now time.Time) bool {
	return now.Unix() >= c.ExpiresAt
}

// identityCacheTTLFor clamps the cache TTL to the token's remaining
// lifetime. A non-positive result means the entry must not be cached.
func identityCacheTTLFor(expiresAt, now time.Time) time.Duration {
	remaining := expiresAt.Sub(now)
	if remaining < identityCacheTTL {
		return remaining
	}
	return identityCacheTTL
}

// GetIdentity retrieves a cached identity by token cache key.
// Returns nil on a cache miss or when the cached token has expired.
func (c *Cache) GetIdentity(ctx context.Context, cacheKey string) (*auth.Identity, error) {
	key := identityCachePrefix + cacheKey

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached cachedIdentity
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	if cached.expired(time.Now()) {
		_ = c.client.Del(ctx, key).Err()
		return nil, nil
	}

	return &auth.Identity{
		UserID: cached.UserID,
		Role:   model.Role(cached.Role),
	}, nil
}

// SetIdentity caches a verified caller identity. The entry lives until
// the token's own expiry or the cache TTL, whichever comes first.
func (c *Cache) SetIdentity(ctx context.Context, cacheKey string, id *auth.Identity, expiresAt time.Time) error {
	ttl := identityCacheTTLFor(expiresAt, time.Now())
	if ttl <= 0 {
		return nil
	}

	key := identityCachePrefix + cacheKey

	data, err := json.Marshal(cachedIdentity{
		UserID:    id.UserID,
		Role:      string(id.Role),
		ExpiresAt: expiresAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// DeleteIdentity removes a cached identity.
func (c *Cache) DeleteIdentity(ctx context.Context, cacheKey string) error {
	key := identityCachePrefix + cacheKey
	return c.client.Del(ctx, key).Err()
}
