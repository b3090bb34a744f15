package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yigyaps/yigyaps/internal/logger"
)

// wireRedis returns nil when REDIS_ADDR is unset; callers treat a nil client
// as cache-disabled.
func wireRedis(cfg Config, log *logger.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info("Redis disabled (REDIS_ADDR unset)")
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, continuing without cache", "error", err)
		return nil
	}
	log.Info("Connected to Redis", "addr", cfg.RedisAddr)
	return client
}
