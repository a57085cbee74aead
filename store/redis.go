package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Redis-backed byte store. All operations fail soft: if Redis
// is unavailable, Lookup reports a miss and writes are silently
// discarded, so a flaky Redis degrades the cache instead of breaking it.
type Redis struct {
	rdb *redis.Client
}

// NewRedis creates a Redis store.
func NewRedis(addr, password string, db int) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Redis{rdb: rdb}
}

// Lookup retrieves the value for key. Returns (nil, false, nil) on a
// miss or when Redis is unreachable.
func (s *Redis) Lookup(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		// Fail soft: treat connection errors as a miss.
		return nil, false, nil
	}
	return val, true, nil
}

// Insert stores val under key with the given TTL. A zero TTL means no
// automatic expiration. Errors are silently discarded (fail soft).
func (s *Redis) Insert(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	_ = s.rdb.Set(ctx, key, val, ttl).Err()
	return nil
}

// Remove deletes the entry for key. Errors are silently discarded.
func (s *Redis) Remove(ctx context.Context, key string) error {
	_ = s.rdb.Del(ctx, key).Err()
	return nil
}

// Ping checks the Redis connection.
func (s *Redis) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close closes the underlying Redis client.
func (s *Redis) Close() error {
	return s.rdb.Close()
}
