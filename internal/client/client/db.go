package client

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/heva-credit/heva/internal/client/config"
	"github.com/heva-credit/heva/internal/client/migrations"
	"github.com/heva-credit/heva/internal/client/repositories/metadata"
)

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite database at dsn and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore opens the session store selected by cfg.StorageBackend. The
// returned closer releases the underlying connection.
func OpenStore(ctx context.Context, cfg *config.Config) (metadata.Repository, io.Closer, error) {
	switch cfg.StorageBackend {
	case config.StorageSQLite, "":
		db, err := InitDatabase(ctx, cfg.StorageDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrLocalDataNotAvailable, err)
		}
		return metadata.NewSQLiteRepository(db), db, nil

	case config.StorageRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("%w: %w", ErrLocalDataNotAvailable, err)
		}
		return metadata.NewRedisRepository(rdb, metadata.DefaultRedisPrefix), rdb, nil

	case config.StorageMemory:
		return metadata.NewMemoryRepository(), nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
