package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"centrale-operativa/backend/config"
)

// Client wraps the Redis connection.
// Used for request rate limiting and as a short-TTL cache for the
// activation statistics snapshot; callers must tolerate a nil Client.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	logger.Info("redis connection established", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── sliding-window rate limiting ──

// CheckRateLimit reports whether one more request is allowed for key within
// the sliding window. Implemented with a sorted set of request timestamps.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window)

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, goredis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return countCmd.Val() < int64(limit), nil
}

// ── snapshot cache ──

// GetCached returns the cached payload for key, or ("", false) on a miss.
func (c *Client) GetCached(ctx context.Context, key string) (string, bool) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != goredis.Nil {
			c.logger.Warn("redis cache read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return val, true
}

// SetCached stores payload under key with the given TTL.
// Failures are logged and swallowed: the cache is best-effort.
func (c *Client) SetCached(ctx context.Context, key, payload string, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.logger.Warn("redis cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops the cached payload for key.
func (c *Client) Invalidate(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("redis cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
