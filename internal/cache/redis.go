package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisRates stores exchange rates in Redis so they are shared across instances.
type RedisRates struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

func NewRedisRates(addr, password string, db int, logger *zap.Logger) (*RedisRates, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisRates{
		client: client,
		prefix: "tabiplan:rate:",
		logger: logger.With(zap.String("component", "redis_rates")),
	}, nil
}

func (c *RedisRates) Close() error {
	return c.client.Close()
}

func (c *RedisRates) key(k string) string {
	return c.prefix + k
}

func (c *RedisRates) Get(ctx context.Context, pair string) (float64, bool) {
	rate, err := c.client.Get(ctx, c.key(pair)).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, false
	}
	if err != nil {
		c.logger.Warn("rate cache get failed", zap.String("pair", pair), zap.Error(err))
		return 0, false
	}
	return rate, true
}

func (c *RedisRates) Set(ctx context.Context, pair string, rate float64, ttl time.Duration) {
	if err := c.client.Set(ctx, c.key(pair), rate, ttl).Err(); err != nil {
		c.logger.Warn("rate cache set failed", zap.String("pair", pair), zap.Error(err))
	}
}
