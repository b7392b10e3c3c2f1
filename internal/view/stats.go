package view

import (
	"slices"

	"github.com/TK2F/promptvault/internal/models"
)

// Stats aggregates counts over a collection.
type Stats struct {
	Total        int
	Pinned       int
	Unconfigured int
	ByCategory   map[string]int
	ByTag        map[string]int
}

// GetStats counts entries per category and per tag. Entries without a
// category are counted under models.Uncategorized.
func GetStats(entries []models.Entry) Stats {
	st := Stats{
		Total:      len(entries),
		ByCategory: make(map[string]int),
		ByTag:      make(map[string]int),
	}
	for _, e := range entries {
		cat := e.Category
		if cat == "" {
			cat = models.Uncategorized
		}
		st.ByCategory[cat]++
		for _, t := range e.Tags {
			st.ByTag[t]++
		}
		if e.IsPinned {
			st.Pinned++
		}
		if e.Unconfigured() {
			st.Unconfigured++
		}
	}
	return st
}

// Categories returns the distinct non-empty categories, sorted.
func Categories(entries []models.Entry) []string {
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.Category != "" {
			seen[e.Category] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Tags returns the distinct tags, sorted.
func Tags(entries []models.Entry) []string {
	seen := make(map[string]struct{})
	for _, e := range entries {
		for _, t := range e.Tags {
			seen[t] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
