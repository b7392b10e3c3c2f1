// Package view derives the displayed lists from a vault snapshot.
//
// Every function is pure: it takes entries and parameters and returns a new
// slice, never reordering or mutating its input. The main list is built in a
// fixed order: search, tag filter, category filter, unconfigured filter,
// pinned exclusion, sort. Pinned and recent lists are drawn from their id
// lists; ids without a matching entry are skipped.
package view
