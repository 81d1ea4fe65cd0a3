package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestResponseCacheRepositoryReportsConnectionErrors(t *testing.T) {
	rdb := unreachableClient()
	defer rdb.Close()
	repo := NewResponseCacheRepository(rdb, "", 0)
	ctx := context.Background()

	_, found, err := repo.Get(ctx, "q")
	assert.False(t, found)
	assert.ErrorContains(t, err, "redis get")

	assert.ErrorContains(t, repo.Set(ctx, "q", "answer"), "redis set")
}

func TestNewResponseCacheRepositoryDefaultsPrefix(t *testing.T) {
	rdb := unreachableClient()
	defer rdb.Close()

	repo := NewResponseCacheRepository(rdb, "", time.Minute)
	assert.Equal(t, DefaultPrefix, repo.prefix)
	assert.Equal(t, time.Minute, repo.ttl)
}
