package view

import (
	"slices"

	"github.com/TK2F/promptvault/internal/models"
	"github.com/TK2F/promptvault/internal/search"
)

// Filter holds the active list filters. All set predicates must hold.
type Filter struct {
	Query         string
	CaseSensitive bool
	Tags          []string
	Categories    []string
	Unconfigured  bool
}

// Active reports whether any predicate is set.
func (f Filter) Active() bool {
	return f.Query != "" || len(f.Tags) > 0 || len(f.Categories) > 0 || f.Unconfigured
}

// Searcher runs the free-text part of a filter. *search.Engine satisfies it.
type Searcher interface {
	Search(entries []models.Entry, query string, caseSensitive bool, limit int) []models.Entry
}

type plainSearch struct{}

func (plainSearch) Search(entries []models.Entry, q string, cs bool, limit int) []models.Entry {
	return search.Search(entries, q, cs, limit)
}

func orPlain(s Searcher) Searcher {
	if s == nil {
		return plainSearch{}
	}
	return s
}

func set(items []string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, s := range items {
		m[s] = struct{}{}
	}
	return m
}

// ByTags keeps entries carrying at least one of tags. No tags keeps all.
func ByTags(entries []models.Entry, tags []string) []models.Entry {
	if len(tags) == 0 {
		return entries
	}
	want := set(tags)
	return keep(entries, func(e models.Entry) bool { return e.HasTag(want) })
}

// ByCategories keeps entries whose category is one of categories.
func ByCategories(entries []models.Entry, categories []string) []models.Entry {
	if len(categories) == 0 {
		return entries
	}
	want := set(categories)
	return keep(entries, func(e models.Entry) bool {
		_, ok := want[e.Category]
		return e.Category != "" && ok
	})
}

// OnlyUnconfigured keeps entries with neither category nor tags.
func OnlyUnconfigured(entries []models.Entry) []models.Entry {
	return keep(entries, models.Entry.Unconfigured)
}

// Apply runs the search and the set predicates of f, in that order.
func Apply(entries []models.Entry, f Filter, s Searcher) []models.Entry {
	out := orPlain(s).Search(entries, f.Query, f.CaseSensitive, 0)
	out = ByTags(out, f.Tags)
	out = ByCategories(out, f.Categories)
	if f.Unconfigured {
		out = OnlyUnconfigured(out)
	}
	return out
}

func keep(entries []models.Entry, pred func(models.Entry) bool) []models.Entry {
	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// FilterForExport narrows an export to entries in any of categories and
// carrying any of tags. An empty list does not restrict.
func FilterForExport(entries []models.Entry, categories, tags []string) []models.Entry {
	return ByTags(ByCategories(slices.Clone(entries), categories), tags)
}
