package contract

import (
	"context"
)

// ResponseCacheRepository stores final answers by cache key.
type ResponseCacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, answer string) error
	Delete(ctx context.Context, key string) error
	Flush(ctx context.Context) error
}
