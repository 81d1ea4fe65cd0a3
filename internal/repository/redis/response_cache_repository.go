package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"robi-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const DefaultPrefix = "robi:answer:"

var _ contract.ResponseCacheRepository = &ResponseCacheRepository{}

// ResponseCacheRepository shares answers between server instances.
type ResponseCacheRepository struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewResponseCacheRepository stores entries under prefix; a zero ttl never expires them.
func NewResponseCacheRepository(rdb redis.UniversalClient, prefix string, ttl time.Duration) *ResponseCacheRepository {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &ResponseCacheRepository{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *ResponseCacheRepository) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.rdb.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

func (r *ResponseCacheRepository) Set(ctx context.Context, key, answer string) error {
	if err := r.rdb.Set(ctx, r.prefix+key, answer, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *ResponseCacheRepository) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, r.prefix+key).Err()
}

// Flush removes every entry under the prefix.
func (r *ResponseCacheRepository) Flush(ctx context.Context) error {
	iter := r.rdb.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.rdb.Del(ctx, keys...).Err()
}
