package app

import (
	"context"
	"fmt"
	"time"

	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store/drivers/memory"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store/drivers/redis"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store/drivers/sqlite"
)

// OpenRecordStore opens the durable KV holding the collections. Entries
// never expire.
func OpenRecordStore(ctx context.Context, cfg Config) (store.KV, error) {
	switch cfg.StoreBackend {
	case "sqlite":
		return openSQLite(cfg.DatabaseFile)
	case "redis":
		kv, err := redis.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

// OpenDeviceStore opens a second handle on the record backend for remembered
// device sessions. Every write through it expires ttl later, so an abandoned
// device's snapshot goes away with its cookie.
func OpenDeviceStore(ctx context.Context, cfg Config, ttl time.Duration) (store.KV, error) {
	switch cfg.StoreBackend {
	case "sqlite":
		return openSQLite(cfg.DatabaseFile, sqlite.WithTTL(ttl))
	case "redis":
		kv, err := redis.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithTTL(ttl))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}

// OpenSessionStore opens the KV for tab sessions and registration drafts.
// Entries expire SessionTTL after their last write.
func OpenSessionStore(ctx context.Context, cfg Config) (store.KV, error) {
	switch cfg.SessionBackend {
	case "memory":
		return memory.New(memory.WithTTL(cfg.SessionTTL)), nil
	case "sqlite":
		return openSQLite(cfg.SessionDatabaseFile, sqlite.WithTTL(cfg.SessionTTL))
	case "redis":
		kv, err := redis.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithTTL(cfg.SessionTTL))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}
}

func openSQLite(file string, opts ...sqlite.Option) (store.KV, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", file)
	db, err := sqlite.NewStore(dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}
