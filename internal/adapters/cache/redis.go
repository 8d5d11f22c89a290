// Package cache provides a Redis implementation of ports.Cache.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen/quote-image-generator/internal/domain"
	"github.com/jsamuelsen/quote-image-generator/internal/ports"
)

const checkerName = "entry-cache"

// RedisCache stores raw values in Redis.
type RedisCache struct {
	client redis.UniversalClient
}

var (
	_ ports.Cache         = (*RedisCache)(nil)
	_ ports.HealthChecker = (*RedisCache)(nil)
)

// NewRedisCache connects to the comma separated list of redis:// URLs or
// host:port addresses in redisURL and verifies the connection.
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opts, err := ParseUniversalOptions(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewUniversalClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = client.Ping(pingCtx).Err()
	if err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// ParseUniversalOptions builds client options from a comma separated address list.
func ParseUniversalOptions(raw string) (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if !strings.Contains(part, "://") {
			opts.Addrs = append(opts.Addrs, part)

			continue
		}

		parsed, err := redis.ParseURL(part)
		if err != nil {
			return nil, err
		}

		opts.Addrs = append(opts.Addrs, parsed.Addr)

		if opts.Username == "" {
			opts.Username = parsed.Username
		}

		if opts.Password == "" {
			opts.Password = parsed.Password
		}

		if opts.DB == 0 {
			opts.DB = parsed.DB
		}

		if opts.TLSConfig == nil {
			opts.TLSConfig = parsed.TLSConfig
		}
	}

	if len(opts.Addrs) == 0 {
		return nil, errors.New("no redis addresses provided")
	}

	// Cluster mode only supports database 0.
	if len(opts.Addrs) > 1 {
		opts.DB = 0
	}

	return opts, nil
}

// Get implements ports.Cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, mapRedisError(err, key)
	}

	return val, nil
}

// Set implements ports.Cache.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	err := c.client.Set(ctx, key, value, time.Duration(ttlSeconds)*time.Second).Err()
	if err != nil {
		return mapRedisError(err, key)
	}

	return nil
}

// Name implements ports.HealthChecker.
func (c *RedisCache) Name() string {
	return checkerName
}

// Check implements ports.HealthChecker.
func (c *RedisCache) Check(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client connections.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func mapRedisError(err error, key string) error {
	if errors.Is(err, redis.Nil) {
		return domain.NewNotFoundError("cache key", key)
	}

	return domain.NewUnavailableError(checkerName, err.Error())
}
