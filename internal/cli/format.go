package cli

import (
	"fmt"
	"strings"

	"github.com/TK2F/promptvault/internal/models"
	"github.com/TK2F/promptvault/internal/textnorm"
	"github.com/TK2F/promptvault/internal/transfer"
)

const (
	shortIDLen     = 8
	previewLength  = 60
	defaultListCap = 50
)

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// entryLine renders one list row.
func entryLine(e models.Entry) string {
	var b strings.Builder
	b.WriteString(shortID(e.ID))
	b.WriteString("  ")
	if e.IsPinned {
		b.WriteString("* ")
	}
	b.WriteString(e.Name)
	if e.Category != "" {
		fmt.Fprintf(&b, "  [%s]", e.Category)
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(&b, "  #%s", strings.Join(e.Tags, " #"))
	}
	preview := strings.Join(strings.Fields(e.Content), " ")
	if preview != "" {
		fmt.Fprintf(&b, "  %s", textnorm.Truncate(preview, previewLength))
	}
	return b.String()
}

func printEntries(title string, entries []models.Entry, limit int) {
	if len(entries) == 0 {
		return
	}
	printlnFn(fmt.Sprintf("%s (%d)", title, len(entries)))
	for i, e := range entries {
		if limit > 0 && i == limit {
			printlnFn(fmt.Sprintf("  ... %d more", len(entries)-limit))
			break
		}
		printlnFn("  " + entryLine(e))
	}
}

func formatTime(ms int64) string {
	return transfer.ISOTime(ms)
}
