// Package models defines the vault data model: entries, settings and the
// envelope that is persisted as one JSON document.
//
// Timestamps are millisecond Unix epochs. Optional entry fields use their
// zero value for "absent", except SortOrder which is a pointer because 0 is
// a meaningful position.
package models
