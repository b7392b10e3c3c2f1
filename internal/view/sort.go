package view

import (
	"cmp"
	"math"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/TK2F/promptvault/internal/models"
)

// Sort orders entries by mode. Unknown modes fall back to custom order.
func Sort(entries []models.Entry, mode models.SortMode, locale string) []models.Entry {
	switch mode {
	case models.SortUpdatedAtDesc:
		return SortByUpdatedAt(entries, true)
	case models.SortUpdatedAtAsc:
		return SortByUpdatedAt(entries, false)
	case models.SortCreatedAtDesc:
		return SortByCreatedAt(entries, true)
	case models.SortCreatedAtAsc:
		return SortByCreatedAt(entries, false)
	case models.SortNameAsc:
		return SortByName(entries, locale, false)
	case models.SortNameDesc:
		return SortByName(entries, locale, true)
	default:
		return SortBySortOrder(entries)
	}
}

func sortOrderKey(e models.Entry) int {
	if e.SortOrder == nil {
		return math.MaxInt
	}
	return *e.SortOrder
}

// SortBySortOrder puts entries with a sort order first, ascending, and the
// rest after them. Ties are broken by most recently updated.
func SortBySortOrder(entries []models.Entry) []models.Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b models.Entry) int {
		if c := cmp.Compare(sortOrderKey(a), sortOrderKey(b)); c != 0 {
			return c
		}
		return cmp.Compare(b.UpdatedAt, a.UpdatedAt)
	})
	return out
}

func SortByUpdatedAt(entries []models.Entry, desc bool) []models.Entry {
	return byInt64(entries, func(e models.Entry) int64 { return e.UpdatedAt }, desc)
}

func SortByCreatedAt(entries []models.Entry, desc bool) []models.Entry {
	return byInt64(entries, func(e models.Entry) int64 { return e.CreatedAt }, desc)
}

func byInt64(entries []models.Entry, key func(models.Entry) int64, desc bool) []models.Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b models.Entry) int {
		if desc {
			return cmp.Compare(key(b), key(a))
		}
		return cmp.Compare(key(a), key(b))
	})
	return out
}

// SortByName compares names with the collation rules of locale, so case and
// accents order the way a reader of that language expects.
func SortByName(entries []models.Entry, locale string, desc bool) []models.Entry {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	col := collate.New(tag)

	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b models.Entry) int {
		c := col.CompareString(a.Name, b.Name)
		if desc {
			return -c
		}
		return c
	})
	return out
}
