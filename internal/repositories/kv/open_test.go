package kv

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteRunsMigrations(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "vault.db")

	repo, err := Open(ctx, Options{Backend: BackendSQLite, DBPath: dsn, QuotaBytes: 42})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	require.NoError(t, repo.Set(ctx, "k", []byte("v")))
	u, err := repo.Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), u.Total)
}

func TestOpen_SQLiteReopenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "vault.db")

	first, err := Open(ctx, Options{DBPath: dsn})
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "k", []byte("v")))
	require.NoError(t, first.Close())

	second, err := Open(ctx, Options{DBPath: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	v, err := second.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestOpen_File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data", "vault.json")

	repo, err := Open(context.Background(), Options{Backend: BackendFile, FilePath: p})
	require.NoError(t, err)
	_, ok := repo.(*FileRepository)
	assert.True(t, ok)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "redis"})
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpen_MigrationErrorClosesDB(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	_, err := Open(context.Background(), Options{DBPath: filepath.Join(t.TempDir(), "vault.db")})
	require.ErrorContains(t, err, "run migrations")
}
