package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TK2F/promptvault/internal/store"
	"github.com/TK2F/promptvault/internal/transfer"
)

// Import reads a .json or .csv file and adds its entries. With --replace the
// vault is wiped first, after confirmation.
func (a *App) Import(ctx context.Context, args []string) error {
	var path string
	replace := false
	for _, arg := range args {
		switch {
		case arg == "--replace":
			replace = true
		case path == "":
			path = arg
		default:
			return errUsage
		}
	}
	if path == "" {
		return errUsage
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", filepath.Base(path), err)
	}
	items, err := transfer.Parse(path, data)
	if err != nil {
		return err
	}

	var n int
	if replace {
		ok, err := Confirm(a.reader, fmt.Sprintf("Replace ALL entries with %d imported ones?", len(items)), a.out)
		if err != nil {
			return err
		}
		if !ok {
			printlnFn("Import cancelled.")
			return nil
		}
		n, err = a.store.ReplaceAll(ctx, items)
		if err != nil {
			return err
		}
	} else {
		n, err = a.store.Import(ctx, items)
		if err != nil {
			return err
		}
	}
	printlnFn(fmt.Sprintf("Imported %d entries from %s", n, filepath.Base(path)))
	return nil
}

// Export renders the vault, optionally narrowed by category and tag, and
// hands the file to the configured sink.
func (a *App) Export(ctx context.Context, args []string) error {
	format := "json"
	var categories, tags []string
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "json", "csv", "per-category":
			format = arg
		case "--category", "--tag":
			if i+1 == len(args) {
				return errUsage
			}
			i++
			if arg == "--category" {
				categories = append(categories, args[i])
			} else {
				tags = append(tags, args[i])
			}
		default:
			return errUsage
		}
	}

	var files []store.ExportFile
	if format == "per-category" {
		out, err := a.store.ExportPerCategory(categories, tags)
		if err != nil {
			return err
		}
		files = out
	} else {
		f, err := a.store.Export(transfer.Format(format), categories, tags)
		if err != nil {
			return err
		}
		files = []store.ExportFile{f}
	}

	for _, f := range files {
		loc, err := a.sink.Put(ctx, f.Name, f.ContentType, f.Data)
		if err != nil {
			return err
		}
		printlnFn(fmt.Sprintf("Exported %d entries to %s", f.Entries, loc))
	}
	return nil
}
