package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces FitSync cache keys inside a shared Redis.
const redisKeyPrefix = "fitsync:cache:"

const redisScanBatch = 200

// RedisStore is the Redis-backed Store used when FITSYNC_REDIS_URL is set.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an established Redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	_, err := s.scan(ctx, func(keys []string) error {
		return s.client.Del(ctx, keys...).Err()
	})
	return err
}

// InvalidateByPredicate scans the FitSync keyspace and deletes matches. The
// predicate sees keys without the Redis prefix, matching MemoryStore.
func (s *RedisStore) InvalidateByPredicate(ctx context.Context, pred func(key string) bool) (int, error) {
	removed := 0
	_, err := s.scan(ctx, func(keys []string) error {
		matched := keys[:0]
		for _, key := range keys {
			if pred(key[len(redisKeyPrefix):]) {
				matched = append(matched, key)
			}
		}
		if len(matched) == 0 {
			return nil
		}
		if err := s.client.Del(ctx, matched...).Err(); err != nil {
			return err
		}
		removed += len(matched)
		return nil
	})
	return removed, err
}

func (s *RedisStore) Len(ctx context.Context) (int, error) {
	return s.scan(ctx, nil)
}

// scan walks the prefixed keyspace in batches, invoking fn per batch, and
// returns how many keys were seen.
func (s *RedisStore) scan(ctx context.Context, fn func(keys []string) error) (int, error) {
	var cursor uint64
	seen := 0
	for {
		keys, next, err := s.client.Scan(ctx, cursor, redisKeyPrefix+"*", redisScanBatch).Result()
		if err != nil {
			return seen, err
		}
		seen += len(keys)
		if fn != nil && len(keys) > 0 {
			if err := fn(keys); err != nil {
				return seen, err
			}
		}
		cursor = next
		if cursor == 0 {
			return seen, nil
		}
	}
}
