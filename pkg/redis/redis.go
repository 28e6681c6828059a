package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/ikkim/catalog-admin/config"
	"github.com/ikkim/catalog-admin/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", logger.Fields{
		"addr": cfg.Addr(),
		"db":   cfg.DB,
	})

	c, err := Connect(context.Background(), cfg.Addr(), cfg.Password, cfg.DB)
	if err != nil {
		logger.Error("Failed to connect to Redis", err, logger.Fields{
			"addr": cfg.Addr(),
		})
		return err
	}
	client = c

	logger.Info("Redis connection established successfully")
	return nil
}

// Connect opens a client and verifies it with a ping
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return c, nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection")
		return client.Close()
	}
	return nil
}
