package store

import (
	"slices"

	"github.com/TK2F/promptvault/internal/models"
	"github.com/TK2F/promptvault/internal/view"
)

// viewCache memoizes derived lists for one revision of the state.
type viewCache struct {
	rev    uint64
	valid  bool
	main   []models.Entry
	pinned []models.Entry
	recent []models.Entry
}

// activeFilter returns the filter with the vault's case-sensitivity applied.
// Callers hold mu.
func (s *Store) activeFilter() view.Filter {
	f := s.filter
	f.CaseSensitive = s.env.Settings.CaseSensitiveSearch
	f.Tags = slices.Clone(f.Tags)
	f.Categories = slices.Clone(f.Categories)
	return f
}

// derived recomputes the views when the revision moved. It takes the write
// lock because it fills the cache.
func (s *Store) derived() viewCache {
	s.mu.RLock()
	if s.views.valid && s.views.rev == s.rev {
		v := s.views
		s.mu.RUnlock()
		return v
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.views.valid && s.views.rev == s.rev {
		return s.views
	}

	env, f := s.env, s.activeFilter()
	s.views = viewCache{
		rev:    s.rev,
		valid:  true,
		main:   view.Main(env.Entries, env.PinnedIDs, f, env.Settings.SortMode, env.Settings.Language, s.search),
		pinned: view.Pinned(env.Entries, env.PinnedIDs, f, s.search),
		recent: view.Recent(env.Entries, env.RecentIDs, env.PinnedIDs),
	}
	return s.views
}

// Filtered is the main list: entries passing the active filters, pinned ones
// left out, in the configured sort order.
func (s *Store) Filtered() []models.Entry {
	return slices.Clone(s.derived().main)
}

// Pinned lists pinned entries that pass the active filters, in pin order.
func (s *Store) Pinned() []models.Entry {
	return slices.Clone(s.derived().pinned)
}

// Recent lists recently used entries that are not pinned.
func (s *Store) Recent() []models.Entry {
	return slices.Clone(s.derived().recent)
}

// Stats aggregates counts over the whole collection.
func (s *Store) Stats() view.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.GetStats(s.env.Entries)
}

// AllCategories returns the distinct categories, sorted.
func (s *Store) AllCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.Categories(s.env.Entries)
}

// AllTags returns the distinct tags, sorted.
func (s *Store) AllTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.Tags(s.env.Entries)
}

// Filter returns the current filter settings.
func (s *Store) Filter() view.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeFilter()
}

func (s *Store) SetSearchQuery(q string) {
	s.setFilter(func(f *view.Filter) { f.Query = q })
}

func (s *Store) AddTagFilter(tag string) {
	s.setFilter(func(f *view.Filter) {
		if !slices.Contains(f.Tags, tag) {
			f.Tags = append(slices.Clone(f.Tags), tag)
		}
	})
}

func (s *Store) RemoveTagFilter(tag string) {
	s.setFilter(func(f *view.Filter) { f.Tags = models.RemoveID(f.Tags, tag) })
}

func (s *Store) AddCategoryFilter(category string) {
	s.setFilter(func(f *view.Filter) {
		if !slices.Contains(f.Categories, category) {
			f.Categories = append(slices.Clone(f.Categories), category)
		}
	})
}

func (s *Store) RemoveCategoryFilter(category string) {
	s.setFilter(func(f *view.Filter) { f.Categories = models.RemoveID(f.Categories, category) })
}

// ToggleShowUnconfigured flips the "no category and no tags" filter and
// returns its new state.
func (s *Store) ToggleShowUnconfigured() bool {
	var on bool
	s.setFilter(func(f *view.Filter) {
		f.Unconfigured = !f.Unconfigured
		on = f.Unconfigured
	})
	return on
}

// ClearFilters drops every filter, the search query included.
func (s *Store) ClearFilters() {
	s.setFilter(func(f *view.Filter) { *f = view.Filter{} })
}

func (s *Store) HasActiveFilters() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.Active()
}

func (s *Store) setFilter(fn func(f *view.Filter)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.filter)
	s.bump()
}
