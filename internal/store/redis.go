package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKV is the remote copy of learner progress.
type RedisKV struct {
	client *redis.Client
}

// Compile-time check: *RedisKV is a KV.
var _ KV = (*RedisKV)(nil)

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (r *RedisKV) key(namespace, key string) string {
	return fmt.Sprintf("fsp:%s:%s", namespace, key)
}

func (r *RedisKV) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(namespace, key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisKV) Put(ctx context.Context, namespace, key string, value []byte) error {
	return r.client.Set(ctx, r.key(namespace, key), value, 0).Err()
}

// Ping reports whether the server is reachable.
func (r *RedisKV) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
