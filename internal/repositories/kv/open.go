package kv

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/TK2F/promptvault/internal/dbx"
	"github.com/TK2F/promptvault/internal/filex"
	"github.com/TK2F/promptvault/internal/migrations"
	"github.com/pressly/goose/v3"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Options selects and configures a backend.
type Options struct {
	Backend    string
	DBPath     string
	FilePath   string
	QuotaBytes int64
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Open builds the backend named by opts.Backend, creating its parent
// directory as needed.
func Open(ctx context.Context, opts Options) (Repository, error) {
	switch opts.Backend {
	case "", BackendSQLite:
		if _, err := filex.EnsureDir(filepath.Dir(opts.DBPath)); err != nil {
			return nil, err
		}
		db, err := dbx.OpenSQLite(ctx, opts.DBPath)
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return NewSQLiteRepository(db, opts.QuotaBytes), nil

	case BackendFile:
		if _, err := filex.EnsureDir(filepath.Dir(opts.FilePath)); err != nil {
			return nil, err
		}
		return NewFileRepository(opts.FilePath)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}
