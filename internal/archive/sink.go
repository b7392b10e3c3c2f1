package archive

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/TK2F/promptvault/internal/filex"
)

var ErrEmptyName = errors.New("archive: empty object name")

// Sink is a destination for exported files. Put returns where the data ended
// up (a file path or an object URL).
type Sink interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// Options selects and configures a sink. S3 is used when S3.Bucket is set.
type Options struct {
	Dir string
	S3  S3Config
}

// Open builds the sink described by opts.
func Open(ctx context.Context, opts Options) (Sink, error) {
	if opts.S3.Bucket != "" {
		return NewS3Sink(ctx, opts.S3)
	}
	return NewFSSink(opts.Dir), nil
}

// FSSink writes files into a directory, creating it on first use.
type FSSink struct {
	dir string
}

func NewFSSink(dir string) *FSSink {
	if dir == "" {
		dir = "."
	}
	return &FSSink{dir: dir}
}

func (s *FSSink) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	base := filepath.Base(name)
	if name == "" || base == "." || base == string(filepath.Separator) {
		return "", ErrEmptyName
	}
	dir, err := filex.EnsureDir(s.dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, base)
	if err := filex.WriteFileAtomic(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write export %s: %w", base, err)
	}
	return path, nil
}
