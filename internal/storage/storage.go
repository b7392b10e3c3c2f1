package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/TK2F/promptvault/internal/logging"
	"github.com/TK2F/promptvault/internal/models"
	"github.com/TK2F/promptvault/internal/repositories/kv"
)

// Source tells where a loaded envelope came from.
type Source string

const (
	SourcePrimary Source = "primary"
	SourceBackup  Source = "backup"
	SourceDefault Source = "default"
)

// LoadResult is the outcome of a successful Load.
type LoadResult struct {
	Envelope  *models.Envelope
	Source    Source
	BackupKey string
}

type Storage struct {
	repo    kv.Repository
	backups *BackupManager
	log     logging.Logger
}

type Option func(*Storage)

// WithClock overrides the clock used to stamp backups.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.backups = NewBackupManager(s.repo, s.log, now)
	}
}

func New(repo kv.Repository, log logging.Logger, opts ...Option) *Storage {
	log = log.With("component", "storage")
	s := &Storage{
		repo:    repo,
		log:     log,
		backups: NewBackupManager(repo, log, nil),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Backups exposes the backup manager.
func (s *Storage) Backups() *BackupManager { return s.backups }

// Save snapshots the persisted state and then writes env as the primary
// document. Only the primary write can fail the call.
func (s *Storage) Save(ctx context.Context, env *models.Envelope) (err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		saveDurationHistogram.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}()

	data, err := json.Marshal(env.Clone())
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	if err := s.backups.Snapshot(ctx); err != nil {
		s.log.Warn(ctx, "backup snapshot failed", "error", err)
	}

	if err := s.repo.Set(ctx, DataKey, data); err != nil {
		return fmt.Errorf("write envelope: %w", err)
	}
	return nil
}

// Load reads the primary envelope, falling back to the newest valid backup
// and then to an empty default. The error is non-nil only when the backend
// itself failed to read the primary document.
func (s *Storage) Load(ctx context.Context) (LoadResult, error) {
	raw, err := s.repo.Get(ctx, DataKey)
	if err != nil {
		return LoadResult{}, fmt.Errorf("read envelope: %w", err)
	}

	if raw != nil {
		env, err := Decode(raw)
		if err == nil {
			loadTotal.WithLabelValues(string(SourcePrimary)).Inc()
			return LoadResult{Envelope: env, Source: SourcePrimary}, nil
		}
		s.log.Warn(ctx, "primary data invalid, trying backups", "error", err)
	}

	env, key, err := s.backups.Restore(ctx)
	if err == nil {
		s.log.Info(ctx, "restored from backup", "key", key)
		loadTotal.WithLabelValues(string(SourceBackup)).Inc()
		return LoadResult{Envelope: env, Source: SourceBackup, BackupKey: key}, nil
	}
	if !errors.Is(err, ErrNoBackup) || raw != nil {
		s.log.Warn(ctx, "no backup restored, using defaults", "error", err)
	}

	loadTotal.WithLabelValues(string(SourceDefault)).Inc()
	return LoadResult{Envelope: models.DefaultEnvelope(), Source: SourceDefault}, nil
}

// RestoreLatest returns the newest valid backup without touching the
// primary document.
func (s *Storage) RestoreLatest(ctx context.Context) (*models.Envelope, string, error) {
	return s.backups.Restore(ctx)
}

// Clear removes every stored key, backups included.
func (s *Storage) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	return nil
}

func (s *Storage) Usage(ctx context.Context) (kv.Usage, error) {
	return s.repo.Usage(ctx)
}
