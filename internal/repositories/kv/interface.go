package kv

import (
	"context"
	"errors"
)

const (
	// DefaultSQLiteQuota matches the local storage area of the browser build.
	DefaultSQLiteQuota int64 = 10 * 1024 * 1024
	// FileQuota is the nominal quota assumed for the file fallback.
	FileQuota int64 = 5 * 1024 * 1024
)

var (
	ErrUnknownBackend = errors.New("unknown storage backend")
	// ErrQuotaExceeded is returned by writes that would push usage past the
	// backend quota. Nothing is written.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Usage reports bytes in use against the backend quota.
type Usage struct {
	Used  int64
	Total int64
}

// Op is one write in an Apply batch. Delete ops ignore Value.
type Op struct {
	Key    string
	Value  []byte
	Delete bool
}

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// List returns every pair whose key starts with prefix ("" for all).
	List(ctx context.Context, prefix string) (map[string][]byte, error)
	// Apply performs ops in order as a single unit.
	Apply(ctx context.Context, ops ...Op) error
	Clear(ctx context.Context) error
	Usage(ctx context.Context) (Usage, error)
	Close() error
}
