package store

import (
	"context"
	"encoding/json"
	"time"

	"orusweb/internal/repositories"
)

type cachedEntry[T any] struct {
	Value     T         `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Cached returns the value stored at key when younger than ttl, otherwise
// it calls fetch and stores the result. Storage errors only cost a refetch.
func Cached[T any](ctx context.Context, repo repositories.Store, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	if raw, ok, err := repo.Get(ctx, key); err == nil && ok {
		var e cachedEntry[T]
		if json.Unmarshal([]byte(raw), &e) == nil && time.Since(e.FetchedAt) < ttl {
			return e.Value, nil
		}
	}

	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}
	if b, err := json.Marshal(cachedEntry[T]{Value: v, FetchedAt: time.Now()}); err == nil {
		_ = repo.Set(ctx, key, string(b))
	}
	return v, nil
}

// Invalidate drops cached values.
func Invalidate(ctx context.Context, repo repositories.Store, keys ...string) error {
	return repo.Delete(ctx, keys...)
}
