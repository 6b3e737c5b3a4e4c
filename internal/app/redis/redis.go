package redis

import (
	"context"
	"fmt"
	"time"

	"arka/internal/app/config"

	"github.com/go-redis/redis/v8"
)

const (
	jwtPrefix     = "jwt.blacklist."
	pendingPrefix = "pending_request."
)

// PendingRequestTTL — время жизни припаркованных данных формы до авторизации
const PendingRequestTTL = 30 * time.Minute

type Client struct {
	cfg    config.RedisConfig
	client *redis.Client
}

func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	client := &Client{cfg: cfg}

	client.client = redis.NewClient(&redis.Options{
		Password:    cfg.Password,
		Username:    cfg.User,
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DB:          0,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	if err := client.client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cannot ping redis: %w", err)
	}

	return client, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
