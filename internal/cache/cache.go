// Package cache provides best-effort TTL memoization on Redis. Results are
// advisory: any cache failure degrades to a miss and the engine recomputes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// keyPrefix namespaces every key this service writes.
const keyPrefix = "advisor:"

// Operation TTLs for the memoized results.
const (
	RecommendationsTTL = time.Hour
	AnalysisTTL        = 30 * time.Minute
	RiskTTL            = 2 * time.Hour
	MarketSnapshotTTL  = 5 * time.Minute
)

// Cache wraps a Redis client. A nil *Cache is valid and behaves as an
// always-miss cache, so callers never branch on its presence.
type Cache struct {
	client *redis.Client
	log    zerolog.Logger
}

// New connects to Redis with the connection settings tuned for a small,
// latency-sensitive memoization workload.
func New(addr, password string, db int, log zerolog.Logger) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		PoolSize:     10,
		MinIdleConns: 2,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	return NewWithClient(client, log)
}

// NewWithClient wraps an existing Redis client; tests pass a mock here.
func NewWithClient(client *redis.Client, log zerolog.Logger) *Cache {
	return &Cache{
		client: client,
		log:    log.With().Str("component", "cache").Logger(),
	}
}

// Key builds a namespaced cache key for an operation and customer.
func Key(operation, customerID string) string {
	return keyPrefix + operation + ":" + customerID
}

// Get loads and decodes a cached value into dest, reporting whether a usable
// value was found. Errors are logged and surfaced as a miss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache entry undecodable")
		return false
	}
	return true
}

// Set stores a value with a TTL. Failures are logged and otherwise ignored.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache value unencodable")
		return
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Healthy reports whether Redis answers a ping.
func (c *Cache) Healthy(ctx context.Context) bool {
	if c == nil || c.client == nil {
		return false
	}
	return c.client.Ping(ctx).Err() == nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
