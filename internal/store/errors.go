package store

import "errors"

var (
	ErrReadOnly       = errors.New("vault is read-only")
	ErrNotFound       = errors.New("entry not found")
	ErrUnsavedChanges = errors.New("unsaved changes")
	ErrNoSelection    = errors.New("no entry selected")
	ErrInvalidEntry   = errors.New("invalid entry")
	ErrPersist        = errors.New("failed to persist vault")
)
