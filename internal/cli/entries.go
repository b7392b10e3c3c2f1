package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/TK2F/promptvault/internal/models"
	"github.com/TK2F/promptvault/internal/store"
	"github.com/TK2F/promptvault/internal/textnorm"
)

var errUsage = errors.New("wrong arguments, see 'help'")

// resolveID accepts a full id or an unambiguous prefix of one.
func (a *App) resolveID(arg string) (string, error) {
	var matches []string
	for _, e := range a.store.Entries() {
		if e.ID == arg {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, arg) {
			matches = append(matches, e.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", store.ErrNotFound, arg)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("id prefix %q matches %d entries", arg, len(matches))
}

func (a *App) idArg(args []string) (string, error) {
	if len(args) != 1 {
		return "", errUsage
	}
	return a.resolveID(args[0])
}

func (a *App) List(_ context.Context, args []string) error {
	limit := defaultListCap
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return errUsage
		}
		limit = n
	}

	pinned, main := a.store.Pinned(), a.store.Filtered()
	if len(pinned) == 0 && len(main) == 0 {
		if a.store.HasActiveFilters() {
			printlnFn("No entries match the current filters.")
		} else {
			printlnFn("The vault is empty. Use 'add' or 'import' to get started.")
		}
		return nil
	}
	printEntries("Pinned", pinned, 0)
	printEntries("Entries", main, limit)
	return nil
}

func (a *App) Recent(_ context.Context, _ []string) error {
	recent := a.store.Recent()
	if len(recent) == 0 {
		printlnFn("Nothing used recently.")
		return nil
	}
	printEntries("Recent", recent, 0)
	return nil
}

func (a *App) Show(_ context.Context, args []string) error {
	id, err := a.idArg(args)
	if err != nil {
		return err
	}
	if err := a.store.Select(id); err != nil {
		return err
	}
	e, err := a.store.Get(id)
	if err != nil {
		return err
	}

	printlnFn("ID:       ", e.ID)
	printlnFn("Name:     ", e.Name)
	if e.Category != "" {
		printlnFn("Category: ", e.Category)
	}
	if len(e.Tags) > 0 {
		printlnFn("Tags:     ", textnorm.FormatTags(e.Tags))
	}
	printlnFn("Pinned:   ", e.IsPinned)
	printlnFn("Created:  ", formatTime(e.CreatedAt))
	printlnFn("Updated:  ", formatTime(e.UpdatedAt))
	printlnFn("")
	printlnFn(e.Content)
	return nil
}

func (a *App) Add(ctx context.Context, _ []string) error {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	category, err := GetSimpleText(a.reader, "Category (optional)", a.out)
	if err != nil {
		return err
	}
	tags, err := GetSimpleText(a.reader, "Tags, comma or space separated (optional)", a.out)
	if err != nil {
		return err
	}

	e, err := a.store.Create(ctx, name, content, category, textnorm.ParseTags(tags))
	if err != nil && !errors.Is(err, store.ErrPersist) {
		return err
	}
	printlnFn("Added", shortID(e.ID), e.Name)
	return err
}

// Capture stores text pasted into the terminal or read from the clipboard.
func (a *App) Capture(ctx context.Context, args []string) error {
	var nameParts []string
	fromClipboard := false
	for _, arg := range args {
		if arg == "--clipboard" || arg == "-c" {
			fromClipboard = true
			continue
		}
		nameParts = append(nameParts, arg)
	}

	var raw string
	var err error
	if fromClipboard {
		raw, err = readClipboard()
		if err != nil {
			return fmt.Errorf("error reading clipboard: %w", err)
		}
	} else {
		raw, err = GetMultiline(a.reader, "Paste the text to capture", a.out)
		if err != nil {
			return err
		}
	}

	e, err := a.store.Capture(ctx, strings.Join(nameParts, " "), raw)
	if err != nil && !errors.Is(err, store.ErrPersist) {
		return err
	}
	printlnFn("Captured", shortID(e.ID), e.Name)
	return err
}

func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.idArg(args)
	if err != nil {
		return err
	}
	if err := a.store.Select(id); err != nil {
		return err
	}
	if err := a.store.StartEditing(); err != nil {
		return err
	}
	// Leaves the edit session on every early return.
	defer a.store.CancelEditing()

	cur, err := a.store.Get(id)
	if err != nil {
		return err
	}

	name, err := GetOptionalText(a.reader, "Name", cur.Name, a.out)
	if err != nil {
		return err
	}
	replace, err := Confirm(a.reader, "Replace content?", a.out)
	if err != nil {
		return err
	}
	content := cur.Content
	if replace {
		if content, err = GetMultiline(a.reader, "Content", a.out); err != nil {
			return err
		}
	}
	category, err := GetOptionalText(a.reader, "Category", cur.Category, a.out)
	if err != nil {
		return err
	}
	tagText, err := GetOptionalText(a.reader, "Tags", textnorm.FormatTags(cur.Tags), a.out)
	if err != nil {
		return err
	}
	tags := textnorm.ParseTags(tagText)

	var patch models.EntryPatch
	if name != cur.Name {
		patch.Name = &name
	}
	if content != cur.Content {
		patch.Content = &content
	}
	if category != cur.Category {
		patch.Category = &category
	}
	if textnorm.FormatTags(tags) != textnorm.FormatTags(cur.Tags) {
		patch.Tags = &tags
	}
	if patch.Empty() {
		printlnFn("No changes.")
		return nil
	}
	a.store.SetUnsavedChanges(true)

	if _, err := a.store.Update(ctx, id, patch); err != nil {
		return err
	}
	printlnFn("Updated", shortID(id))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.idArg(args)
	if err != nil {
		return err
	}
	if err := a.store.Delete(ctx, id); err != nil {
		return err
	}
	printlnFn("Deleted", shortID(id))
	return nil
}

func (a *App) Pin(ctx context.Context, args []string) error {
	id, err := a.idArg(args)
	if err != nil {
		return err
	}
	pinned, err := a.store.TogglePin(ctx, id)
	if err != nil {
		return err
	}
	if pinned {
		printlnFn("Pinned", shortID(id))
	} else {
		printlnFn("Unpinned", shortID(id))
	}
	return nil
}

func (a *App) Move(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	from, err := a.resolveID(args[0])
	if err != nil {
		return err
	}
	to, err := a.resolveID(args[1])
	if err != nil {
		return err
	}
	if a.store.Settings().SortMode != models.SortCustom {
		printlnFn("Note: the list is not in custom order; run 'sort custom' to see the result.")
	}
	return a.store.Reorder(ctx, from, to)
}

// Copy puts the entry's content on the clipboard and marks it recently used.
func (a *App) Copy(ctx context.Context, args []string) error {
	id, err := a.idArg(args)
	if err != nil {
		return err
	}
	e, err := a.store.Get(id)
	if err != nil {
		return err
	}
	if err := writeClipboard(e.Content); err != nil {
		return fmt.Errorf("error writing clipboard: %w", err)
	}
	printlnFn("Copied", shortID(id), "to the clipboard")

	if a.store.ReadOnly() {
		return nil
	}
	return a.store.AddToRecent(ctx, id)
}
