package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/license-service/internal/domain"
	"github.com/spec-kit/license-service/internal/persistence"
)

// LicenseCache is a read-through Redis cache for license projections keyed
// by owner id. Every mutation invalidates the owner's entry, so the store
// stays the source of truth and a stale read can only survive until the
// next write or TTL expiry.
type LicenseCache struct {
	redis  *persistence.Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewLicenseCache builds a cache around the shared Redis client. A nil
// redis wrapper yields a cache that misses on every lookup.
func NewLicenseCache(r *persistence.Redis, ttl time.Duration, logger *zap.Logger) *LicenseCache {
	return &LicenseCache{redis: r, ttl: ttl, logger: logger}
}

func (c *LicenseCache) key(userID string) string {
	return "license:user:" + userID
}

// Get returns the cached license for the owner, or (nil, nil) on a miss.
func (c *LicenseCache) Get(ctx context.Context, userID string) (*domain.License, error) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return nil, nil
	}
	raw, err := c.redis.Client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var license domain.License
	if err := json.Unmarshal(raw, &license); err != nil {
		// treat a corrupt entry as a miss and drop it
		c.Invalidate(ctx, userID)
		return nil, nil
	}
	return &license, nil
}

// Set stores the license projection under the owner's key.
func (c *LicenseCache) Set(ctx context.Context, license *domain.License) {
	if c == nil || c.redis == nil || c.redis.Client == nil || license == nil {
		return
	}
	raw, err := json.Marshal(license)
	if err != nil {
		return
	}
	if err := c.redis.Client.Set(ctx, c.key(license.UserID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("license cache set failed", zap.Error(err))
	}
}

// Invalidate removes the owner's entry after a mutation.
func (c *LicenseCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	if err := c.redis.Client.Del(ctx, c.key(userID)).Err(); err != nil {
		c.logger.Warn("license cache invalidate failed", zap.Error(err))
	}
}
