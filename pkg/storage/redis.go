package storage

import (
	"context"

	"github.com/rewear-app/rewear-backend/pkg/redis"
)

// RedisAdapter mirrors snapshots into a Redis instance, for deployments where
// the demo runs behind a process manager that wipes local disk.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) Read(ctx context.Context, key string) (string, bool, error) {
	return r.client.GetSnapshot(ctx, key)
}

func (r *RedisAdapter) Write(ctx context.Context, key, value string) error {
	return r.client.SetSnapshot(ctx, key, value)
}

func (r *RedisAdapter) Remove(ctx context.Context, key string) error {
	return r.client.DelSnapshot(ctx, key)
}

func (r *RedisAdapter) Close() error {
	return r.client.Close()
}
