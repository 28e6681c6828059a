package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	valuePrefix = "catalog-admin:cache:"
	tagPrefix   = "catalog-admin:tag:"
)

// RedisStore shares cached results between replicas. Values expire through
// Redis TTLs; tag sets are pruned by Purge.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, valuePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, tags []Tag, ttl time.Duration) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, valuePrefix+key, value, ttl)
		for _, t := range tags {
			pipe.SAdd(ctx, tagPrefix+string(t), key)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) InvalidateTags(ctx context.Context, tags ...Tag) (int, error) {
	removed := 0
	for _, t := range tags {
		tagKey := tagPrefix + string(t)
		members, err := s.client.SMembers(ctx, tagKey).Result()
		if err != nil {
			return removed, fmt.Errorf("failed to read tag %s: %w", t, err)
		}

		keys := make([]string, 0, len(members)+1)
		for _, m := range members {
			keys = append(keys, valuePrefix+m)
		}
		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("failed to invalidate tag %s: %w", t, err)
			}
			removed += int(n)
		}
		if err := s.client.Del(ctx, tagKey).Err(); err != nil {
			return removed, fmt.Errorf("failed to drop tag %s: %w", t, err)
		}
	}
	return removed, nil
}

// Purge removes tag set members whose values have already expired
func (s *RedisStore) Purge(ctx context.Context) (int, error) {
	pruned := 0
	iter := s.client.Scan(ctx, 0, tagPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		tagKey := iter.Val()
		members, err := s.client.SMembers(ctx, tagKey).Result()
		if err != nil {
			return pruned, fmt.Errorf("failed to read %s: %w", tagKey, err)
		}
		for _, m := range members {
			exists, err := s.client.Exists(ctx, valuePrefix+m).Result()
			if err != nil {
				return pruned, fmt.Errorf("failed to check %s: %w", m, err)
			}
			if exists == 0 {
				if err := s.client.SRem(ctx, tagKey, m).Err(); err != nil {
					return pruned, fmt.Errorf("failed to prune %s: %w", m, err)
				}
				pruned++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return pruned, fmt.Errorf("failed to scan tags: %w", err)
	}
	return pruned, nil
}
