package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/TK2F/promptvault/internal/archive"
	"github.com/TK2F/promptvault/internal/config"
	"github.com/TK2F/promptvault/internal/logging"
	"github.com/TK2F/promptvault/internal/repositories/kv"
	"github.com/TK2F/promptvault/internal/storage"
	"github.com/TK2F/promptvault/internal/store"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	config      *config.Config
	store       *store.Store
	sink        archive.Sink
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	closer      io.Closer
	interactive bool
}

// NewApp opens the configured storage backend and export sink.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repo, err := kv.Open(ctx, c.KVOptions())
	if err != nil {
		log.Error(ctx, "error opening storage", "error", err)
		return nil, err
	}

	sink, err := archive.Open(ctx, c.ArchiveOptions())
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("error opening export sink: %w", err)
	}

	st := storage.New(repo, log)
	return &App{
		config:      c,
		store:       store.New(st, log),
		sink:        sink,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		closer:      repo,
		interactive: isTerminal(int(os.Stdin.Fd())),
	}, nil
}

// Run loads the vault and serves commands until exit or end of input.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	src, err := a.store.Load(ctx)
	switch {
	case errors.Is(err, store.ErrReadOnly):
		printlnFn("WARNING: stored data could not be read; the vault is read-only.")
		printlnFn("Use 'restore' to load the newest backup or 'export' to save what is shown.")
	case err != nil:
		return err
	case src == storage.SourceBackup:
		printlnFn("Stored data was damaged and has been restored from the newest backup.")
	}

	if a.interactive {
		printlnFn("promptvault (type 'help' for commands)")
	}
	runREPL(ctx, a, a.prompt, a.reader)
	return nil
}

// Close releases the storage backend.
func (a *App) Close() {
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
}

func (a *App) getStatus() string {
	var parts []string
	if a.store.ReadOnly() {
		parts = append(parts, "read-only")
	}
	if a.store.HasActiveFilters() {
		parts = append(parts, "filtered")
	}
	if e, ok := a.store.Selected(); ok {
		parts = append(parts, shortID(e.ID))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

func (a *App) prompt() string {
	if !a.interactive {
		return ""
	}
	if s := a.getStatus(); s != "" {
		return "pv " + s + "> "
	}
	return "pv> "
}
