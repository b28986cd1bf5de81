// Package cache memoizes complete search responses in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/pawnest/pawsearch/internal/service"
)

const keyPrefix = "pawsearch:search:"

// Config holds connection parameters for the response cache.
type Config struct {
	Addrs    []string
	Password string
	TTL      time.Duration
}

// Redis implements service.ResponseCache via rueidis.
type Redis struct {
	client rueidis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// Compile-time check: Redis implements service.ResponseCache.
var _ service.ResponseCache = (*Redis)(nil)

// NewRedis connects to Redis and returns a response cache.
func NewRedis(cfg Config, logger *zap.Logger) (*Redis, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: cfg.Addrs,
		Password:    cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &Redis{client: client, ttl: ttl, logger: logger}, nil
}

// Close releases the underlying connection.
func (c *Redis) Close() {
	c.client.Close()
}

// Key derives the cache key from the raw query string and the full
// serialized query object, so identical text with different filters, sort
// or page does not collide.
func (c *Redis) Key(query service.SearchQuery) string {
	serialized, _ := json.Marshal(query)
	h := sha256.Sum256(append([]byte(query.Query+"|"), serialized...))
	return keyPrefix + hex.EncodeToString(h[:])
}

// Get returns the cached response for key, or a miss. Decode failures and
// transport errors degrade to a miss so a broken cache never fails a search.
func (c *Redis) Get(ctx context.Context, key string) (*service.SearchResponse, bool, error) {
	cmd := c.client.B().Get().Key(key).Build()
	data, err := c.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var response service.SearchResponse
	if err := json.Unmarshal(data, &response); err != nil {
		c.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	return &response, true, nil
}

// Set stores the response under key with the configured TTL.
func (c *Redis) Set(ctx context.Context, key string, response *service.SearchResponse) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	cmd := c.client.B().Set().Key(key).Value(rueidis.BinaryString(data)).Ex(c.ttl).Build()
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
