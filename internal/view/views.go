package view

import (
	"slices"

	"github.com/TK2F/promptvault/internal/models"
)

// Main is the primary list: filtered, without pinned entries, sorted by mode.
func Main(entries []models.Entry, pinnedIDs []string, f Filter, mode models.SortMode, locale string, s Searcher) []models.Entry {
	filtered := Apply(entries, f, s)
	pinned := set(pinnedIDs)
	filtered = keep(filtered, func(e models.Entry) bool {
		_, ok := pinned[e.ID]
		return !ok
	})
	return Sort(filtered, mode, locale)
}

// Pinned lists pinned entries in pinned-list order, with the same filters as
// Main applied.
func Pinned(entries []models.Entry, pinnedIDs []string, f Filter, s Searcher) []models.Entry {
	pinned := Resolve(entries, pinnedIDs)
	if !f.Active() {
		return pinned
	}

	visible := set(ids(Apply(entries, f, s)))
	return keep(pinned, func(e models.Entry) bool {
		_, ok := visible[e.ID]
		return ok
	})
}

// Recent lists recently used entries, most recent first, leaving out pinned
// ones.
func Recent(entries []models.Entry, recentIDs, pinnedIDs []string) []models.Entry {
	pinned := set(pinnedIDs)
	unpinned := slices.DeleteFunc(slices.Clone(recentIDs), func(id string) bool {
		_, ok := pinned[id]
		return ok
	})
	return Resolve(entries, unpinned)
}

// Resolve maps ids to entries in id order, skipping unknown ids.
func Resolve(entries []models.Entry, idList []string) []models.Entry {
	byID := make(map[string]int, len(entries))
	for i, e := range entries {
		byID[e.ID] = i
	}
	out := make([]models.Entry, 0, len(idList))
	for _, id := range idList {
		if i, ok := byID[id]; ok {
			out = append(out, entries[i])
		}
	}
	return out
}

func ids(entries []models.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
