package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseCacheRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewResponseCacheRepository(0)

	_, found, err := repo.Get(ctx, "q")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, "q", "first"))
	require.NoError(t, repo.Set(ctx, "q", "second"))

	val, found, err := repo.Get(ctx, "q")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", val)
	assert.Equal(t, 1, repo.Len())

	require.NoError(t, repo.Delete(ctx, "q"))
	_, found, _ = repo.Get(ctx, "q")
	assert.False(t, found)
}

func TestResponseCacheRepositoryTTL(t *testing.T) {
	ctx := context.Background()
	repo := NewResponseCacheRepository(20 * time.Millisecond)

	require.NoError(t, repo.Set(ctx, "q", "answer"))
	time.Sleep(40 * time.Millisecond)

	_, found, _ := repo.Get(ctx, "q")
	assert.False(t, found)
}

func TestResponseCacheRepositoryFlush(t *testing.T) {
	ctx := context.Background()
	repo := NewResponseCacheRepository(0)
	require.NoError(t, repo.Set(ctx, "a", "1"))
	require.NoError(t, repo.Set(ctx, "b", "2"))

	require.NoError(t, repo.Flush(ctx))
	assert.Equal(t, 0, repo.Len())
}
