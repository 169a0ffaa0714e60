package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aegis-support/aegis/internal/shared/logger"
)

// Store is a keyed TTL cache with namespace-scoped invalidation.
// Lookups never block on recomputation: a miss is reported and the
// caller recomputes (cache-aside). An expired entry is never returned
// as a hit. Operations are atomic per key only; there are no cross-key
// guarantees, and concurrent puts to the same key are last-writer-wins.
type Store interface {
	// Get returns the cached value and whether it was a hit. A backend
	// error is returned alongside hit=false so callers can degrade to
	// recomputation.
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)

	// Put stores the value under namespace:key with a per-call TTL.
	Put(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error

	// Invalidate removes a single entry. Missing entries are not an error.
	Invalidate(ctx context.Context, namespace, key string) error

	// InvalidateNamespace removes every entry in the namespace.
	InvalidateNamespace(ctx context.Context, namespace string) error
}

// NewStore returns a Redis-backed store when the client is reachable,
// falling back to the in-process store otherwise. The cache is an
// optimization, not a source of truth, so an unreachable backend must
// not prevent startup.
func NewStore(client *redis.Client, maxEntries int, maxTTL time.Duration, log logger.Interface) Store {
	if client != nil {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err == nil {
			log.Infow("using redis cache backend")
			return NewRedisStore(client)
		}
		log.Warnw("redis unreachable, falling back to in-memory cache")
	}
	return NewMemoryStore(maxEntries, maxTTL)
}

// GetJSON is a typed Get: on a hit it unmarshals the value into T. A
// value that fails to unmarshal counts as a miss so stale encodings
// self-heal through recomputation.
func GetJSON[T any](ctx context.Context, s Store, namespace, key string) (T, bool, error) {
	var out T
	data, hit, err := s.Get(ctx, namespace, key)
	if err != nil || !hit {
		return out, false, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false, nil
	}
	return out, true, nil
}

// PutJSON is a typed Put.
func PutJSON(ctx context.Context, s Store, namespace, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.Put(ctx, namespace, key, data, ttl)
}
