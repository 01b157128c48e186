package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heva-credit/heva/internal/client/config"
	"github.com/heva-credit/heva/internal/common"
)

// goose keeps its dialect and base FS in package globals, so these tests do
// not run in parallel.

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_CreatesTables(t *testing.T) {
	ctx := context.Background()
	db, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "heva.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.PingContext(ctx))
	assert.True(t, tableExists(t, db, "goose_db_version"))
	assert.True(t, tableExists(t, db, "metadata"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "heva.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db), "second run must be a no-op")
	assert.True(t, tableExists(t, db, "metadata"))
}

func TestOpenStore_SQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{StorageBackend: config.StorageSQLite, StorageDSN: filepath.Join(t.TempDir(), "heva.db")}

	repo, closer, err := OpenStore(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, common.CurrentUserKey, []byte(`{"id":"u1"}`)))
	require.NoError(t, closer.Close())

	repo, closer, err = OpenStore(ctx, cfg)
	require.NoError(t, err)
	defer closer.Close()

	got, err := repo.Get(ctx, common.CurrentUserKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"u1"}`, string(got))
}

func TestOpenStore_Redis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	repo, closer, err := OpenStore(ctx, &config.Config{StorageBackend: config.StorageRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	defer closer.Close()

	require.NoError(t, repo.Set(ctx, common.RegisteredUsersKey, []byte(`[]`)))
	assert.True(t, mr.Exists("heva:"+common.RegisteredUsersKey))
}

func TestOpenStore_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := OpenStore(context.Background(), &config.Config{StorageBackend: config.StorageRedis, RedisAddr: addr})
	require.ErrorIs(t, err, ErrLocalDataNotAvailable)
}

func TestOpenStore_MemoryAndUnknown(t *testing.T) {
	repo, closer, err := OpenStore(context.Background(), &config.Config{StorageBackend: config.StorageMemory})
	require.NoError(t, err)
	assert.NotNil(t, repo)
	assert.NoError(t, closer.Close())

	_, _, err = OpenStore(context.Background(), &config.Config{StorageBackend: "etcd"})
	require.Error(t, err)
}
