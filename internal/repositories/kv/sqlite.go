package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/TK2F/promptvault/internal/dbx"
)

type SQLiteRepository struct {
	db    *sql.DB
	quota int64
}

// NewSQLiteRepository wraps an already migrated database. A non-positive
// quota selects DefaultSQLiteQuota.
func NewSQLiteRepository(db *sql.DB, quota int64) *SQLiteRepository {
	if quota <= 0 {
		quota = DefaultSQLiteQuota
	}
	return &SQLiteRepository{db: db, quota: quota}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	return get(ctx, r.db, key)
}

func get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

// Set stores value under key. It fails with ErrQuotaExceeded, leaving the
// previous value in place, when the write would exceed the quota.
func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.Apply(ctx, Op{Key: key, Value: value})
}

func set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	return del(ctx, r.db, key)
}

func del(ctx context.Context, q dbx.DBTX, key string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Apply(ctx context.Context, ops ...Op) error {
	if len(ops) == 0 {
		return nil
	}
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		grows := false
		for _, op := range ops {
			var err error
			if op.Delete {
				err = del(ctx, tx, op.Key)
			} else {
				err = set(ctx, tx, op.Key, op.Value)
				grows = true
			}
			if err != nil {
				return err
			}
		}
		if !grows {
			return nil
		}

		used, err := usage(ctx, tx)
		if err != nil {
			return err
		}
		if used > r.quota {
			return fmt.Errorf("%w: %d of %d bytes", ErrQuotaExceeded, used, r.quota)
		}
		return nil
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context, prefix string) (map[string][]byte, error) {
	// substr keeps the match case-sensitive, unlike LIKE.
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM kv WHERE substr(key, 1, length(?1)) = ?1 ORDER BY key`, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Usage(ctx context.Context) (Usage, error) {
	used, err := usage(ctx, r.db)
	if err != nil {
		return Usage{}, err
	}
	return Usage{Used: used, Total: r.quota}, nil
}

func usage(ctx context.Context, q dbx.DBTX) (int64, error) {
	var used int64
	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(length(CAST(key AS BLOB)) + length(value)), 0) FROM kv`).Scan(&used)
	if err != nil {
		return 0, fmt.Errorf("failed to measure kv usage: %w", err)
	}
	return used, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
