package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces all cache keys so the cache can share a Redis
// database with other state without collisions.
const keyPrefix = "aegis:cache:"

// RedisStore is the Redis-backed Store. Per-entry TTLs map directly to
// Redis key expiry; namespace invalidation walks the namespace's keys
// with SCAN so it never blocks the server the way KEYS would.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) buildKey(namespace, key string) string {
	return keyPrefix + namespace + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.buildKey(namespace, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache key: %w", err)
	}
	return data, true, nil
}

func (s *RedisStore) Put(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.buildKey(namespace, key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key: %w", err)
	}
	return nil
}

func (s *RedisStore) Invalidate(ctx context.Context, namespace, key string) error {
	if err := s.client.Del(ctx, s.buildKey(namespace, key)).Err(); err != nil {
		return fmt.Errorf("failed to delete cache key: %w", err)
	}
	return nil
}

func (s *RedisStore) InvalidateNamespace(ctx context.Context, namespace string) error {
	pattern := keyPrefix + namespace + ":*"
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()

	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("failed to delete namespace keys: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan namespace keys: %w", err)
	}
	if len(batch) > 0 {
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("failed to delete namespace keys: %w", err)
		}
	}
	return nil
}
