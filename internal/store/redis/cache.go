package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linksaver/linksaver/internal/domain"
	"github.com/linksaver/linksaver/internal/logger"
)

// DefaultMetadataTTL bounds how long an enrichment result is reused
// before the page is fetched again.
const DefaultMetadataTTL = 24 * time.Hour

// Cache stores enrichment results and revoked auth tokens in Redis.
// Every operation is best effort: Redis being down means cache misses
// and logged warnings, never a failed request.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, log logger.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultMetadataTTL
	}
	return &Cache{client: client, ttl: ttl, log: log}
}

// GetMetadata returns a previously cached enrichment result for rawURL.
func (c *Cache) GetMetadata(ctx context.Context, rawURL string) (*domain.PageMetadata, bool) {
	data, err := c.client.Get(ctx, metadataKey(rawURL)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Debug("metadata cache read failed", logger.Error(err))
		}
		return nil, false
	}

	var meta domain.PageMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		c.log.Debug("metadata cache entry corrupt, ignoring", logger.Error(err))
		return nil, false
	}

	return &meta, true
}

// SetMetadata caches an enrichment result for rawURL.
func (c *Cache) SetMetadata(ctx context.Context, rawURL string, meta *domain.PageMetadata) {
	data, err := json.Marshal(meta)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, metadataKey(rawURL), data, c.ttl).Err(); err != nil {
		c.log.Debug("metadata cache write failed", logger.Error(err))
	}
}

// RevokeToken marks a token id as signed out until its natural expiry.
func (c *Cache) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err()
}

// IsRevoked reports whether a token id has been signed out.
func (c *Cache) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := c.client.Get(ctx, revokedKey(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
