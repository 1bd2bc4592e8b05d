package redis

import (
	"context"
	"fmt"

	"helpdesk-agent/pkg/config"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewClient connects to Redis. It returns a nil client and no error when
// Redis is not configured.
func NewClient(ctx context.Context, cfg *config.RedisConfig, logger *zap.Logger) (*goredis.Client, error) {
	if cfg.Host == "" {
		return nil, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established", zap.String("host", cfg.Host), zap.Int("db", cfg.DB))
	return client, nil
}
