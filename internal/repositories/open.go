package repositories

import (
	"fmt"
	"io"

	"orusweb/internal/config"

	"go.uber.org/zap"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the configured store. The returned closer releases its
// connections.
func Open(cfg config.Config, log *zap.Logger) (Store, io.Closer, error) {
	var (
		store  Store
		closer io.Closer = nopCloser{}
	)

	switch cfg.StorageDriver {
	case "redis":
		rs := NewRedisStore(NewRedisClient(cfg.Redis), cfg.SessionTTL)
		store, closer = rs, rs
		log.Info("using redis storage", zap.String("host", cfg.Redis.Host))
	case "postgres":
		db, err := OpenPostgres(cfg.Postgres, log)
		if err != nil {
			return nil, nil, err
		}
		ps := NewPostgresStore(db)
		store, closer = ps, ps
	case "memory", "":
		store = NewMemoryStore()
		log.Warn("using in-memory storage; sessions are lost on restart")
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.StorageSecret == "" {
		log.Warn("STORAGE_SECRET not set; tokens are stored unencrypted")
		return store, closer, nil
	}
	sealed, err := NewSealedStore(store, cfg.StorageSecret)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return sealed, closer, nil
}
