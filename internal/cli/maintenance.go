package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/dustin/go-humanize"
)

func (a *App) Backups(ctx context.Context, _ []string) error {
	list, err := a.store.Backups(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No backups.")
		return nil
	}
	for _, b := range list {
		state := fmt.Sprintf("%d entries", b.Entries)
		if !b.Valid {
			state = "invalid"
		}
		printlnFn(fmt.Sprintf("  %s  %s  %s", b.Key, formatTime(b.Timestamp), state))
	}
	return nil
}

func (a *App) Restore(ctx context.Context, _ []string) error {
	ok, err := Confirm(a.reader, "Replace the current vault with the newest valid backup?", a.out)
	if err != nil || !ok {
		return err
	}
	key, err := a.store.RestoreLatest(ctx)
	if err != nil {
		return err
	}
	printlnFn("Restored", key)
	return nil
}

func (a *App) Usage(ctx context.Context, _ []string) error {
	u, err := a.store.Usage(ctx)
	if err != nil {
		return err
	}
	pct := 0.0
	if u.Total > 0 {
		pct = float64(u.Used) / float64(u.Total) * 100
	}
	printlnFn(fmt.Sprintf("%s of %s used (%.1f%%)", humanize.IBytes(uint64(u.Used)), humanize.IBytes(uint64(u.Total)), pct))
	return nil
}

func (a *App) Stats(_ context.Context, _ []string) error {
	st := a.store.Stats()
	printlnFn(fmt.Sprintf("%d entries, %d pinned, %d without category or tags", st.Total, st.Pinned, st.Unconfigured))
	printCounts("By category", st.ByCategory)
	printCounts("By tag", st.ByTag)
	return nil
}

func printCounts(title string, m map[string]int) {
	if len(m) == 0 {
		return
	}
	printlnFn(title)
	for _, k := range slices.Sorted(maps.Keys(m)) {
		printlnFn(fmt.Sprintf("  %-20s %d", k, m[k]))
	}
}

// Wipe deletes every entry, backup and setting after confirmation.
func (a *App) Wipe(ctx context.Context, _ []string) error {
	ok, err := Confirm(a.reader, "Delete ALL data, backups included?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.store.DeleteAll(ctx); err != nil {
		return err
	}
	printlnFn("All data deleted.")
	return nil
}
