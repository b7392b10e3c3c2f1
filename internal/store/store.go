package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TK2F/promptvault/internal/logging"
	"github.com/TK2F/promptvault/internal/models"
	"github.com/TK2F/promptvault/internal/repositories/kv"
	"github.com/TK2F/promptvault/internal/search"
	"github.com/TK2F/promptvault/internal/storage"
	"github.com/TK2F/promptvault/internal/view"
)

// Store owns the vault state. Mutations are serialized by opMu, which is held
// across the storage write; mu guards the fields read by queries.
type Store struct {
	opMu sync.Mutex
	mu   sync.RWMutex

	storage *storage.Storage
	search  *search.Engine
	log     logging.Logger
	now     func() time.Time
	newID   func() string

	env        *models.Envelope
	readOnly   bool
	loadSource storage.Source

	filter     view.Filter
	selectedID string
	editing    bool
	unsaved    bool

	rev   uint64
	views viewCache
}

type Option func(*Store)

// WithClock sets the time source used for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the function that mints new entry ids.
func WithIDGenerator(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// WithSearchCacheSize bounds the search result cache.
func WithSearchCacheSize(n int) Option {
	return func(s *Store) { s.search = search.NewEngine(n) }
}

// New returns an empty store. Call Load before using it.
func New(st *storage.Storage, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		storage: st,
		search:  search.NewEngine(search.DefaultCacheSize),
		log:     log.With("component", "store"),
		now:     time.Now,
		newID:   uuid.NewString,
		env:     models.DefaultEnvelope(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load reads the persisted vault. A backend read failure leaves the store
// empty and read-only; the returned error wraps both ErrReadOnly and the
// cause.
func (s *Store) Load(ctx context.Context) (storage.Source, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	res, err := s.storage.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bump()
	s.selectedID, s.editing, s.unsaved = "", false, false

	if err != nil {
		s.env = models.DefaultEnvelope()
		s.search.Invalidate()
		s.readOnly = true
		s.loadSource = ""
		s.log.Error(ctx, "load failed, entering read-only mode", "error", err)
		return "", fmt.Errorf("%w: %w", ErrReadOnly, err)
	}

	s.env = res.Envelope
	s.search.Invalidate()
	s.readOnly = false
	s.loadSource = res.Source
	s.log.Info(ctx, "vault loaded", "source", res.Source, "entries", len(res.Envelope.Entries))
	return res.Source, nil
}

// ReadOnly reports whether mutations are currently refused.
func (s *Store) ReadOnly() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readOnly
}

// LoadSource tells where the last Load found its data.
func (s *Store) LoadSource() storage.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadSource
}

// Snapshot returns a deep copy of the current envelope.
func (s *Store) Snapshot() *models.Envelope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env.Clone()
}

// Entries returns every entry in collection order.
func (s *Store) Entries() []models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.env.Entries)
}

// Get returns the entry with id.
func (s *Store) Get(id string) (models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.env.Entries[i].Clone(), nil
}

func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.env.Settings
}

// Usage reports the bytes used by the storage backend.
func (s *Store) Usage(ctx context.Context) (kv.Usage, error) {
	return s.storage.Usage(ctx)
}

// Backups lists the backup slots currently stored.
func (s *Store) Backups(ctx context.Context) ([]storage.BackupInfo, error) {
	return s.storage.Backups().List(ctx)
}

// errUnchanged is returned by a mutate callback that left env as it was;
// mutate then reports success without saving.
var errUnchanged = errors.New("unchanged")

// mutate applies fn to the envelope under both locks and then persists the
// result. fn must either fail without touching env or succeed completely.
// The in-memory change is kept when the write fails.
func (s *Store) mutate(ctx context.Context, op string, fn func(env *models.Envelope) error) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.readOnly {
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot %s", ErrReadOnly, op)
	}
	if err := fn(s.env); err != nil {
		s.mu.Unlock()
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	s.search.Invalidate()
	s.bump()
	s.mu.Unlock()

	return s.persist(ctx, op)
}

// persist writes the envelope. Callers hold opMu, so env cannot change while
// it is being encoded.
func (s *Store) persist(ctx context.Context, op string) error {
	if err := s.storage.Save(ctx, s.env); err != nil {
		s.log.Warn(ctx, "vault changed in memory but was not saved", "op", op, "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// writable fails with ErrReadOnly in read-only mode. Operations that validate
// their input before mutate call it first so read-only wins over bad input.
func (s *Store) writable(op string) error {
	if s.ReadOnly() {
		return fmt.Errorf("%w: cannot %s", ErrReadOnly, op)
	}
	return nil
}

// bump invalidates memoized views. Callers hold mu for writing.
func (s *Store) bump() {
	s.rev++
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.env.Entries, func(e models.Entry) bool { return e.ID == id })
}

func (s *Store) nowMillis() int64 {
	return models.NowMillis(s.now())
}
