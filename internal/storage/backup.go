package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/TK2F/promptvault/internal/logging"
	"github.com/TK2F/promptvault/internal/models"
	"github.com/TK2F/promptvault/internal/repositories/kv"
)

const (
	// DataKey holds the primary envelope.
	DataKey = "promptvault_data"
	// BackupKeyPrefix namespaces backup slots; the suffix is a ms timestamp.
	BackupKeyPrefix = "promptvault_backup_"
	// MaxBackups is the number of slots that survive a snapshot.
	MaxBackups = 3
)

var ErrNoBackup = errors.New("no valid backup available")

// Backup is the stored form of one slot.
type Backup struct {
	Snapshot  json.RawMessage `json:"snapshot"`
	Timestamp int64           `json:"timestamp"`
}

// BackupInfo describes a slot without its payload.
type BackupInfo struct {
	Key       string
	Timestamp int64
	Entries   int
	Valid     bool
}

type BackupManager struct {
	repo kv.Repository
	log  logging.Logger
	now  func() time.Time

	mu   sync.Mutex
	last int64
}

func NewBackupManager(repo kv.Repository, log logging.Logger, now func() time.Time) *BackupManager {
	if now == nil {
		now = time.Now
	}
	return &BackupManager{repo: repo, log: log, now: now}
}

// nextStamp returns a millisecond timestamp strictly greater than any
// previously issued one, so rapid saves never share a key.
func (b *BackupManager) nextStamp() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	ts := b.now().UnixMilli()
	if ts <= b.last {
		ts = b.last + 1
	}
	b.last = ts
	return ts
}

// Snapshot copies the currently persisted envelope into a new slot, pruning
// older slots so at most MaxBackups remain. An absent or invalid primary is
// not snapshotted.
func (b *BackupManager) Snapshot(ctx context.Context) error {
	current, err := b.repo.Get(ctx, DataKey)
	if err != nil {
		backupOperationsTotal.WithLabelValues("snapshot", "error").Inc()
		return fmt.Errorf("read current data: %w", err)
	}
	if current == nil {
		backupOperationsTotal.WithLabelValues("snapshot", "skipped").Inc()
		return nil
	}
	if _, err := Decode(current); err != nil {
		backupOperationsTotal.WithLabelValues("snapshot", "skipped").Inc()
		return nil
	}

	keys, err := b.keys(ctx)
	if err != nil {
		backupOperationsTotal.WithLabelValues("snapshot", "error").Inc()
		return err
	}

	ops := make([]kv.Op, 0, MaxBackups)
	if len(keys) > MaxBackups-1 {
		for _, k := range keys[MaxBackups-1:] {
			ops = append(ops, kv.Op{Key: k, Delete: true})
		}
	}

	ts := b.nextStamp()
	slot, err := json.Marshal(Backup{Snapshot: current, Timestamp: ts})
	if err != nil {
		backupOperationsTotal.WithLabelValues("snapshot", "error").Inc()
		return fmt.Errorf("encode backup: %w", err)
	}
	ops = append(ops, kv.Op{Key: BackupKey(ts), Value: slot})

	if err := b.repo.Apply(ctx, ops...); err != nil {
		backupOperationsTotal.WithLabelValues("snapshot", "error").Inc()
		return fmt.Errorf("write backup: %w", err)
	}

	backupOperationsTotal.WithLabelValues("snapshot", "ok").Inc()
	if pruned := len(ops) - 1; pruned > 0 {
		backupOperationsTotal.WithLabelValues("prune", "ok").Add(float64(pruned))
	}
	return nil
}

// Restore returns the envelope of the newest slot that passes validation.
func (b *BackupManager) Restore(ctx context.Context) (*models.Envelope, string, error) {
	slots, err := b.repo.List(ctx, BackupKeyPrefix)
	if err != nil {
		backupOperationsTotal.WithLabelValues("restore", "error").Inc()
		return nil, "", fmt.Errorf("%w: %v", ErrNoBackup, err)
	}

	for _, key := range sortedDesc(slots) {
		env, err := decodeSlot(slots[key])
		if err != nil {
			b.log.Warn(ctx, "skipping invalid backup", "key", key, "error", err)
			continue
		}
		backupOperationsTotal.WithLabelValues("restore", "ok").Inc()
		return env, key, nil
	}

	backupOperationsTotal.WithLabelValues("restore", "none").Inc()
	return nil, "", ErrNoBackup
}

// List describes every slot, newest first.
func (b *BackupManager) List(ctx context.Context) ([]BackupInfo, error) {
	slots, err := b.repo.List(ctx, BackupKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}

	out := make([]BackupInfo, 0, len(slots))
	for _, key := range sortedDesc(slots) {
		info := BackupInfo{Key: key, Timestamp: keyStamp(key)}
		if env, err := decodeSlot(slots[key]); err == nil {
			info.Valid = true
			info.Entries = len(env.Entries)
		}
		out = append(out, info)
	}
	return out, nil
}

func (b *BackupManager) keys(ctx context.Context) ([]string, error) {
	slots, err := b.repo.List(ctx, BackupKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	return sortedDesc(slots), nil
}

// BackupKey names the slot for a millisecond timestamp.
func BackupKey(ms int64) string {
	return BackupKeyPrefix + strconv.FormatInt(ms, 10)
}

func keyStamp(key string) int64 {
	n, _ := strconv.ParseInt(strings.TrimPrefix(key, BackupKeyPrefix), 10, 64)
	return n
}

func sortedDesc(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	slices.Reverse(keys)
	return keys
}

// decodeSlot unwraps a slot. Slots written by the first format keep the
// envelope under "data" instead of "snapshot".
func decodeSlot(raw []byte) (*models.Envelope, error) {
	var slot struct {
		Snapshot json.RawMessage `json:"snapshot"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &slot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	payload := slot.Snapshot
	if len(payload) == 0 {
		payload = slot.Data
	}
	if len(payload) == 0 {
		return nil, ErrInvalidData
	}
	return Decode(payload)
}
