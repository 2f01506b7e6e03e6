package store

import (
	"context"
	"encoding/json"
	"time"

	"orusweb/internal/repositories"

	"go.uber.org/zap"
)

const saveTimeout = 5 * time.Second

// Persisted opens a store whose state is loaded from key and written back
// after every update.
func Persisted[T any](ctx context.Context, repo repositories.Store, key string, initial T, logger *zap.Logger) (*Store[T], error) {
	state := initial
	raw, ok, err := repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			logger.Warn("discarding unreadable stored state", zap.String("key", key), zap.Error(err))
			state = initial
		}
	}

	save := func(v T) {
		b, err := json.Marshal(v)
		if err != nil {
			logger.Error("encode stored state", zap.String("key", key), zap.Error(err))
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := repo.Set(ctx, key, string(b)); err != nil {
			logger.Error("save stored state", zap.String("key", key), zap.Error(err))
		}
	}
	return New(state, WithHook(save)), nil
}
