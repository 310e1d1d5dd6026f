package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rewear-app/rewear-backend/pkg/config"
)

const (
	keyNamespace   = "rewear"
	snapshotPrefix = "snapshot"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Client wraps the redis connection helpers needed by the snapshot store.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(context.Context) error
}

// New bootstraps a Redis client with pooling/timeouts and verifies connectivity.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{store: raw, raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout
	return opts, nil
}

// Ping verifies connectivity for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Ping(ctx).Err()
}

// SnapshotKey namespaces a snapshot key to avoid collisions on shared instances.
func (c *Client) SnapshotKey(key string) string {
	return strings.Join([]string{keyNamespace, snapshotPrefix, key}, ":")
}

// GetSnapshot returns the stored value; absence is reported via the boolean.
func (c *Client) GetSnapshot(ctx context.Context, key string) (string, bool, error) {
	value, err := c.store.Get(ctx, c.SnapshotKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get snapshot: %w", err)
	}
	return value, true, nil
}

// SetSnapshot stores the value without expiry; session lifetime is governed
// by explicit logout, not TTL.
func (c *Client) SetSnapshot(ctx context.Context, key, value string) error {
	if err := c.store.Set(ctx, c.SnapshotKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// DelSnapshot removes the value; deleting a missing key is not an error.
func (c *Client) DelSnapshot(ctx context.Context, key string) error {
	if err := c.store.Del(ctx, c.SnapshotKey(key)).Err(); err != nil {
		return fmt.Errorf("del snapshot: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}
