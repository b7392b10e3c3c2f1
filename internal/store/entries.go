package store

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/TK2F/promptvault/internal/models"
	"github.com/TK2F/promptvault/internal/textnorm"
	"github.com/TK2F/promptvault/internal/view"
)

const captureNameLength = 50

// Create adds a new entry at the front of the collection and of the recent
// list.
func (s *Store) Create(ctx context.Context, name, content, category string, tags []string) (models.Entry, error) {
	if err := s.writable("create entry"); err != nil {
		return models.Entry{}, err
	}
	if strings.TrimSpace(name) == "" {
		return models.Entry{}, fmt.Errorf("%w: name is required", ErrInvalidEntry)
	}

	var created models.Entry
	err := s.mutate(ctx, "create entry", func(env *models.Envelope) error {
		ts := s.nowMillis()
		created = models.Entry{
			ID:        s.newID(),
			Name:      name,
			Content:   content,
			Category:  category,
			Tags:      cleanTags(tags),
			CreatedAt: ts,
			UpdatedAt: ts,
		}
		env.Entries = append([]models.Entry{created}, env.Entries...)
		env.RecentIDs = models.PushRecent(env.RecentIDs, created.ID)
		return nil
	})
	return created.Clone(), err
}

// Capture stores externally captured text as a new entry after normalizing it
// with the vault's blank-line mode. An empty name is derived from the first
// line of the text.
func (s *Store) Capture(ctx context.Context, name, raw string) (models.Entry, error) {
	if err := s.writable("capture entry"); err != nil {
		return models.Entry{}, err
	}
	content := textnorm.Normalize(raw, s.Settings().BlankLineMode)
	if content == "" {
		return models.Entry{}, fmt.Errorf("%w: captured text is empty", ErrInvalidEntry)
	}
	if strings.TrimSpace(name) == "" {
		first, _, _ := strings.Cut(content, "\n")
		name = textnorm.Truncate(first, captureNameLength)
	}
	return s.Create(ctx, name, content, "", nil)
}

// Update merges patch into the entry, refreshes updatedAt and ends any edit
// session.
func (s *Store) Update(ctx context.Context, id string, patch models.EntryPatch) (models.Entry, error) {
	if err := s.writable("update entry"); err != nil {
		return models.Entry{}, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return models.Entry{}, fmt.Errorf("%w: name is required", ErrInvalidEntry)
	}

	var updated models.Entry
	err := s.mutate(ctx, "update entry", func(env *models.Envelope) error {
		i := s.indexOf(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		e := env.Entries[i].Clone()
		patch.Apply(&e)
		if patch.Tags != nil {
			e.Tags = cleanTags(e.Tags)
		}
		e.UpdatedAt = max(s.nowMillis(), e.CreatedAt)
		env.Entries[i] = e
		updated = e

		s.editing, s.unsaved = false, false
		return nil
	})
	return updated.Clone(), err
}

// Delete removes the entry together with its recent and pinned references.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete entry", func(env *models.Envelope) error {
		i := s.indexOf(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		env.Entries = slices.Delete(slices.Clone(env.Entries), i, i+1)
		env.RecentIDs = models.RemoveID(env.RecentIDs, id)
		env.PinnedIDs = models.RemoveID(env.PinnedIDs, id)

		if s.selectedID == id {
			s.selectedID, s.editing, s.unsaved = "", false, false
		}
		return nil
	})
}

// TogglePin flips the entry's pinned state and reports the new value.
func (s *Store) TogglePin(ctx context.Context, id string) (bool, error) {
	var pinned bool
	err := s.mutate(ctx, "pin entry", func(env *models.Envelope) error {
		i := s.indexOf(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		pinned = !slices.Contains(env.PinnedIDs, id)
		if pinned {
			env.PinnedIDs = append(slices.Clone(env.PinnedIDs), id)
		} else {
			env.PinnedIDs = models.RemoveID(env.PinnedIDs, id)
		}
		e := env.Entries[i].Clone()
		e.IsPinned = pinned
		env.Entries[i] = e
		return nil
	})
	return pinned, err
}

// Reorder moves activeID to the position of overID within the main view as
// currently displayed, then renumbers the visible entries 0..n-1. Entries
// hidden by the active filters keep their sortOrder.
func (s *Store) Reorder(ctx context.Context, activeID, overID string) error {
	return s.mutate(ctx, "reorder entries", func(env *models.Envelope) error {
		visible := view.Main(env.Entries, env.PinnedIDs, s.activeFilter(), env.Settings.SortMode, env.Settings.Language, s.search)
		order := make([]string, len(visible))
		for i, e := range visible {
			order[i] = e.ID
		}

		from := slices.Index(order, activeID)
		to := slices.Index(order, overID)
		if from < 0 || to < 0 {
			return fmt.Errorf("%w: reorder target is not in the current view", ErrNotFound)
		}
		if from == to {
			return errUnchanged
		}

		id := order[from]
		order = slices.Delete(order, from, from+1)
		order = slices.Insert(order, to, id)

		pos := make(map[string]int, len(order))
		for i, id := range order {
			pos[id] = i
		}
		entries := slices.Clone(env.Entries)
		for i, e := range entries {
			if p, ok := pos[e.ID]; ok {
				e = e.Clone()
				e.SortOrder = models.IntPtr(p)
				entries[i] = e
			}
		}
		env.Entries = entries
		return nil
	})
}

// AddToRecent marks the entry as just used.
func (s *Store) AddToRecent(ctx context.Context, id string) error {
	return s.mutate(ctx, "update recent list", func(env *models.Envelope) error {
		if s.indexOf(id) < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		env.RecentIDs = models.PushRecent(env.RecentIDs, id)
		return nil
	})
}

// cleanTags dedupes tags and returns nil when none remain, matching what a
// stored entry decodes to.
func cleanTags(tags []string) []string {
	out := textnorm.DedupeTags(tags)
	if len(out) == 0 {
		return nil
	}
	return out
}
