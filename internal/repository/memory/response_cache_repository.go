package memory

import (
	"context"
	"time"

	"robi-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

var _ contract.ResponseCacheRepository = &ResponseCacheRepository{}

type ResponseCacheRepository struct {
	cache *cache.Cache
}

// NewResponseCacheRepository keeps entries for ttl; zero keeps them for the process lifetime.
func NewResponseCacheRepository(ttl time.Duration) *ResponseCacheRepository {
	expiration, cleanup := cache.NoExpiration, time.Duration(0)
	if ttl > 0 {
		expiration, cleanup = ttl, 10*time.Minute
	}
	return &ResponseCacheRepository{
		cache: cache.New(expiration, cleanup),
	}
}

func (r *ResponseCacheRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if x, found := r.cache.Get(key); found {
		return x.(string), true, nil
	}
	return "", false, nil
}

func (r *ResponseCacheRepository) Set(ctx context.Context, key, answer string) error {
	r.cache.Set(key, answer, cache.DefaultExpiration)
	return nil
}

func (r *ResponseCacheRepository) Delete(ctx context.Context, key string) error {
	r.cache.Delete(key)
	return nil
}

func (r *ResponseCacheRepository) Flush(ctx context.Context) error {
	r.cache.Flush()
	return nil
}

func (r *ResponseCacheRepository) Len() int {
	return r.cache.ItemCount()
}
