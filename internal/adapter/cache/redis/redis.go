// Package redis implements the redirect cache on top of Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/vadimbarashkov/shortenit/internal/entity"
)

const keyPrefix = "shortenit:url:"

type Options struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewClient connects to Redis and checks the connection with PING.
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	const op = "redis.NewClient"

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     opts.PoolSize,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: failed to connect to redis: %w", op, err)
	}

	return client, nil
}

type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Get(ctx context.Context, shortCode string) (string, error) {
	const op = "redis.Cache.Get"

	originalURL, err := c.client.Get(ctx, keyPrefix+shortCode).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", entity.ErrCacheMiss
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return originalURL, nil
}

func (c *Cache) Set(ctx context.Context, shortCode, originalURL string, ttl time.Duration) error {
	const op = "redis.Cache.Set"

	if err := c.client.Set(ctx, keyPrefix+shortCode, originalURL, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *Cache) Delete(ctx context.Context, shortCode string) error {
	const op = "redis.Cache.Delete"

	if err := c.client.Del(ctx, keyPrefix+shortCode).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
