// Package storage opens the configured durable session backend.
package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	goredis "github.com/redis/go-redis/v9"

	"github.com/DeltaH-ll/library-client/internal/adapter/storage/file"
	"github.com/DeltaH-ll/library-client/internal/adapter/storage/memory"
	"github.com/DeltaH-ll/library-client/internal/adapter/storage/redis"
	"github.com/DeltaH-ll/library-client/internal/adapter/storage/sqlite"
	"github.com/DeltaH-ll/library-client/internal/config"
	"github.com/DeltaH-ll/library-client/internal/domain/session"
)

// Open creates the session storage selected by cfg. The returned
// closer releases backend resources; it is a no-op for backends
// without any.
func Open(cfg config.StorageConfig, logger *slog.Logger) (session.Storage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "memory":
		return memory.NewStore(), noop, nil

	case "file":
		path := cfg.Path
		if path == "" {
			path = file.DefaultPath()
		}
		return file.NewStore(path, logger), noop, nil

	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return redis.NewStore(client, ""), client.Close, nil

	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = defaultSQLitePath()
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return nil, nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return store, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.db"
	}
	return filepath.Join(home, ".library-client", "session.db")
}
