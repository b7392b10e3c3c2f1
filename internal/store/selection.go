package store

import (
	"fmt"

	"github.com/TK2F/promptvault/internal/models"
)

// Mode is the selection and editing state of the store.
type Mode int

const (
	ModeBrowsing Mode = iota
	ModeSelected
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeSelected:
		return "selected"
	case ModeEditing:
		return "editing"
	}
	return "browsing"
}

func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.selectedID == "":
		return ModeBrowsing
	case s.editing:
		return ModeEditing
	}
	return ModeSelected
}

// Select makes id the selected entry. It is refused while the current edit
// has unsaved changes.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsaved {
		return ErrUnsavedChanges
	}
	if s.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.selectedID, s.editing = id, false
	return nil
}

// Deselect returns to browsing, under the same guard as Select.
func (s *Store) Deselect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsaved {
		return ErrUnsavedChanges
	}
	s.selectedID, s.editing = "", false
	return nil
}

// Selected returns the selected entry, if it still exists.
func (s *Store) Selected() (models.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedID == "" {
		return models.Entry{}, false
	}
	i := s.indexOf(s.selectedID)
	if i < 0 {
		return models.Entry{}, false
	}
	return s.env.Entries[i].Clone(), true
}

// StartEditing enters the edit session for the selected entry.
func (s *Store) StartEditing() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedID == "" {
		return ErrNoSelection
	}
	if s.readOnly {
		return fmt.Errorf("%w: cannot edit", ErrReadOnly)
	}
	s.editing = true
	return nil
}

// CancelEditing leaves the edit session and discards the unsaved flag.
func (s *Store) CancelEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing, s.unsaved = false, false
}

// SetUnsavedChanges records whether the open edit differs from the stored
// entry. It has no effect outside an edit session.
func (s *Store) SetUnsavedChanges(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsaved = v && s.editing
}

func (s *Store) HasUnsavedChanges() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unsaved
}
