package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/TK2F/promptvault/internal/filex"
)

// FileRepository keeps all pairs in one JSON object on disk. The whole file
// is rewritten on every change, so it suits small vaults and tests.
type FileRepository struct {
	path string

	mu    sync.Mutex
	items map[string]string
}

// NewFileRepository loads path if it exists. A missing file is an empty store.
func NewFileRepository(path string) (*FileRepository, error) {
	r := &FileRepository{path: path, items: map[string]string{}}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return r, nil
	}
	if err := json.Unmarshal(data, &r.items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if r.items == nil {
		r.items = map[string]string{}
	}
	return r, nil
}

func (r *FileRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.items[key]
	if !ok {
		return nil, nil
	}
	return []byte(v), nil
}

func (r *FileRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.Apply(ctx, Op{Key: key, Value: value})
}

func (r *FileRepository) Delete(ctx context.Context, key string) error {
	return r.Apply(ctx, Op{Key: key, Delete: true})
}

func (r *FileRepository) Apply(_ context.Context, ops ...Op) error {
	if len(ops) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make(map[string]string, len(r.items)+len(ops))
	for k, v := range r.items {
		next[k] = v
	}
	for _, op := range ops {
		if op.Delete {
			delete(next, op.Key)
		} else {
			next[op.Key] = string(op.Value)
		}
	}

	if err := r.flush(next); err != nil {
		return err
	}
	r.items = next
	return nil
}

func (r *FileRepository) List(_ context.Context, prefix string) (map[string][]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string][]byte)
	for k, v := range r.items {
		if strings.HasPrefix(k, prefix) {
			out[k] = []byte(v)
		}
	}
	return out, nil
}

func (r *FileRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	empty := map[string]string{}
	if err := r.flush(empty); err != nil {
		return err
	}
	r.items = empty
	return nil
}

// Usage approximates bytes in use as two bytes per UTF-16 code unit of each
// stored value.
func (r *FileRepository) Usage(_ context.Context) (Usage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var used int64
	for _, v := range r.items {
		used += int64(UTF16Len(v)) * 2
	}
	return Usage{Used: used, Total: FileQuota}, nil
}

func (r *FileRepository) Close() error { return nil }

func (r *FileRepository) flush(items map[string]string) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode kv file: %w", err)
	}
	if err := filex.WriteFileAtomic(r.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write kv file: %w", err)
	}
	return nil
}

// UTF16Len returns the number of UTF-16 code units needed to encode s.
func UTF16Len(s string) int {
	n := 0
	for _, c := range s {
		n += utf16.RuneLen(c)
	}
	return n
}
