package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/TK2F/promptvault/internal/models"
)

// Search sets the free-text query; no arguments clears it.
func (a *App) Search(ctx context.Context, args []string) error {
	q := strings.Join(args, " ")
	a.store.SetSearchQuery(q)
	if q == "" {
		printlnFn("Search cleared.")
	}
	return a.List(ctx, nil)
}

// Filter adds or removes tag and category filters, toggles the unconfigured
// filter, or clears everything. Without arguments it prints the filters.
func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printFilter()
		return nil
	}

	for i := 0; i < len(args); i++ {
		switch op := args[i]; op {
		case "clear":
			a.store.ClearFilters()
		case "unconfigured":
			a.store.ToggleShowUnconfigured()
		case "tag", "-tag", "category", "-category":
			if i+1 == len(args) {
				return errUsage
			}
			i++
			v := args[i]
			switch op {
			case "tag":
				a.store.AddTagFilter(v)
			case "-tag":
				a.store.RemoveTagFilter(v)
			case "category":
				a.store.AddCategoryFilter(v)
			case "-category":
				a.store.RemoveCategoryFilter(v)
			}
		default:
			return errUsage
		}
	}
	a.printFilter()
	return a.List(ctx, nil)
}

func (a *App) printFilter() {
	f := a.store.Filter()
	if !f.Active() {
		printlnFn("No filters.")
		printlnFn("Categories:", strings.Join(a.store.AllCategories(), ", "))
		printlnFn("Tags:      ", strings.Join(a.store.AllTags(), ", "))
		return
	}
	if f.Query != "" {
		printlnFn("Search:      ", f.Query)
	}
	if len(f.Tags) > 0 {
		printlnFn("Tags:        ", strings.Join(f.Tags, ", "))
	}
	if len(f.Categories) > 0 {
		printlnFn("Categories:  ", strings.Join(f.Categories, ", "))
	}
	if f.Unconfigured {
		printlnFn("Only entries without category and tags")
	}
}

// Sort prints the sort mode or switches to a new one.
func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cur := a.store.Settings().SortMode
		for _, m := range models.SortModes {
			marker := " "
			if m == cur {
				marker = "*"
			}
			printlnFn(marker, m)
		}
		return nil
	}
	if len(args) != 1 {
		return errUsage
	}

	mode := models.SortMode(args[0])
	if !slices.Contains(models.SortModes, mode) {
		return fmt.Errorf("unknown sort mode %q", args[0])
	}
	if _, err := a.store.UpdateSettings(ctx, models.SettingsPatch{SortMode: &mode}); err != nil {
		return err
	}
	return a.List(ctx, nil)
}
