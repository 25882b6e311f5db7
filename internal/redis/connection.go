package redis

import (
	"context"
	"fmt"
	"time"

	"finpol-compliance/internal/config"

	redisv9 "github.com/redis/go-redis/v9"
)

type Client struct {
	rdb        *redisv9.Client
	outcomeTTL time.Duration
	searchTTL  time.Duration
}

// NewClient создает новое подключение к Redis
func NewClient(cfg *config.Config) (*Client, error) {
	rdb := redisv9.NewClient(&redisv9.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	outcomeTTL := cfg.Redis.OutcomeTTL
	if outcomeTTL <= 0 {
		outcomeTTL = time.Hour
	}
	searchTTL := cfg.Redis.SearchTTL
	if searchTTL <= 0 {
		searchTTL = 10 * time.Minute
	}

	return &Client{rdb: rdb, outcomeTTL: outcomeTTL, searchTTL: searchTTL}, nil
}

// Ping проверяет соединение с Redis
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close закрывает соединение с Redis
func (c *Client) Close() error {
	return c.rdb.Close()
}
