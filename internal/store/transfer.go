package store

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/TK2F/promptvault/internal/models"
	"github.com/TK2F/promptvault/internal/transfer"
	"github.com/TK2F/promptvault/internal/view"
)

// ExportFile is a rendered export ready to be written to a sink.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
	Entries     int
}

// Import prepends items to the collection and returns how many were added.
// An incoming id is kept unless it is already taken.
func (s *Store) Import(ctx context.Context, items []models.ImportEntry) (int, error) {
	if err := s.writable("import entries"); err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, transfer.ErrNoEntries
	}
	err := s.mutate(ctx, "import entries", func(env *models.Envelope) error {
		s.merge(env, items)
		return nil
	})
	if err != nil && !errors.Is(err, ErrPersist) {
		return 0, err
	}
	s.log.Info(ctx, "entries imported", "count", len(items))
	return len(items), err
}

// ReplaceAll wipes storage, backups included, and imports items into an
// empty vault that keeps the current settings.
func (s *Store) ReplaceAll(ctx context.Context, items []models.ImportEntry) (int, error) {
	if err := s.writable("replace entries"); err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, transfer.ErrNoEntries
	}
	err := s.reset(ctx, "replace entries", false, func(env *models.Envelope) {
		s.merge(env, items)
	})
	if err != nil && !errors.Is(err, ErrPersist) {
		return 0, err
	}
	s.log.Info(ctx, "entries replaced", "count", len(items))
	return len(items), err
}

// DeleteAll wipes storage and resets the vault to defaults.
func (s *Store) DeleteAll(ctx context.Context) error {
	return s.reset(ctx, "delete all data", true, nil)
}

// RestoreLatest replaces the in-memory vault with the newest valid backup and
// saves it as the primary document. It also leaves read-only mode, since a
// successful restore proves the backend is readable again.
func (s *Store) RestoreLatest(ctx context.Context) (string, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	env, key, err := s.storage.RestoreLatest(ctx)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.env = env
	s.readOnly = false
	s.selectedID, s.editing, s.unsaved = "", false, false
	s.search.Invalidate()
	s.bump()
	s.mu.Unlock()

	s.log.Info(ctx, "vault restored from backup", "key", key)
	return key, s.persist(ctx, "restore backup")
}

// reset clears storage and rebuilds the envelope from defaults. Settings
// survive unless resetSettings is set. fill, if given, populates the new
// envelope before it is saved.
func (s *Store) reset(ctx context.Context, op string, resetSettings bool, fill func(env *models.Envelope)) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.writable(op); err != nil {
		return err
	}
	if err := s.storage.Clear(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	env := models.DefaultEnvelope()
	if !resetSettings {
		env.Settings = s.env.Settings
	}
	if fill != nil {
		fill(env)
	}
	s.env = env
	s.selectedID, s.editing, s.unsaved = "", false, false
	s.search.Invalidate()
	s.bump()
	s.mu.Unlock()

	if fill == nil {
		return nil
	}
	return s.persist(ctx, op)
}

// merge prepends items to env. Ids are checked against the collection and
// against ids already assigned in this batch.
func (s *Store) merge(env *models.Envelope, items []models.ImportEntry) {
	taken := make(map[string]struct{}, len(env.Entries)+len(items))
	for _, e := range env.Entries {
		taken[e.ID] = struct{}{}
	}
	ts := s.nowMillis()
	pinned := slices.Clone(env.PinnedIDs)

	added := make([]models.Entry, 0, len(items))
	for _, it := range items {
		id := it.ID
		_, dup := taken[id]
		for id == "" || dup {
			id = s.newID()
			_, dup = taken[id]
		}
		taken[id] = struct{}{}

		name := it.Name
		if strings.TrimSpace(name) == "" {
			name = models.UntitledName
		}
		created := it.CreatedAt
		if created <= 0 {
			created = ts
		}
		updated := it.UpdatedAt
		if updated <= 0 {
			updated = ts
		}

		e := models.Entry{
			ID:        id,
			Name:      name,
			Content:   it.Content,
			Category:  it.Category,
			Tags:      cleanTags(it.Tags),
			ParentID:  it.ParentID,
			IsPinned:  it.IsPinned || slices.Contains(pinned, id),
			CreatedAt: created,
			UpdatedAt: max(updated, created),
		}
		if it.SortOrder != nil {
			e.SortOrder = models.IntPtr(*it.SortOrder)
		}
		if e.IsPinned && !slices.Contains(pinned, id) {
			pinned = append(pinned, id)
		}
		added = append(added, e)
	}

	env.Entries = append(added, env.Entries...)
	env.PinnedIDs = pinned
}

// Export renders the entries matching categories and tags in format. Empty
// filters match everything.
func (s *Store) Export(format transfer.Format, categories, tags []string) (ExportFile, error) {
	s.mu.RLock()
	entries := view.FilterForExport(s.env.Entries, categories, tags)
	settings := s.env.Settings
	s.mu.RUnlock()

	if len(entries) == 0 {
		return ExportFile{}, transfer.ErrNothingToExport
	}
	now := s.now()

	var buf bytes.Buffer
	if err := transfer.Export(&buf, format, entries, settings, now); err != nil {
		return ExportFile{}, err
	}
	return ExportFile{
		Name:        transfer.FileName(format, len(categories)+len(tags), now),
		ContentType: transfer.ContentType(format),
		Data:        buf.Bytes(),
		Entries:     len(entries),
	}, nil
}

// ExportPerCategory renders one CSV file per category of the matching
// entries, ordered by file name.
func (s *Store) ExportPerCategory(categories, tags []string) ([]ExportFile, error) {
	s.mu.RLock()
	entries := view.FilterForExport(s.env.Entries, categories, tags)
	s.mu.RUnlock()

	if len(entries) == 0 {
		return nil, transfer.ErrNothingToExport
	}
	now := s.now()

	var out []ExportFile
	for cat, group := range transfer.GroupByCategory(entries) {
		var buf bytes.Buffer
		if err := transfer.ExportCSV(&buf, group); err != nil {
			return nil, err
		}
		out = append(out, ExportFile{
			Name:        transfer.CategoryFileName(cat, now),
			ContentType: transfer.ContentType(transfer.FormatCSV),
			Data:        buf.Bytes(),
			Entries:     len(group),
		})
	}
	slices.SortFunc(out, func(a, b ExportFile) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}
