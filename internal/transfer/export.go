package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/TK2F/promptvault/internal/models"
	"github.com/TK2F/promptvault/internal/textnorm"
)

// Format names an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// CSVHeader is the column order of CSV exports.
var CSVHeader = []string{"id", "name", "content", "category", "tags", "isPinned", "sortOrder", "createdAt", "updatedAt"}

const isoLayout = "2006-01-02T15:04:05.000Z"

// ISOTime renders a millisecond timestamp as ISO-8601 UTC.
func ISOTime(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(isoLayout)
}

type jsonExport struct {
	Version    int             `json:"version"`
	ExportedAt string          `json:"exportedAt"`
	Entries    []models.Entry  `json:"entries"`
	RecentIDs  []string        `json:"recentIds"`
	PinnedIDs  []string        `json:"pinnedIds"`
	Settings   models.Settings `json:"settings"`
}

// ExportJSON writes entries as an indented envelope. The recent list is left
// empty and the pinned list is rebuilt from the entries' flags.
func ExportJSON(w io.Writer, entries []models.Entry, settings models.Settings, now time.Time) error {
	doc := jsonExport{
		Version:    models.Version,
		ExportedAt: ISOTime(now.UnixMilli()),
		Entries:    entries,
		RecentIDs:  []string{},
		PinnedIDs:  []string{},
		Settings:   settings,
	}
	if doc.Entries == nil {
		doc.Entries = []models.Entry{}
	}
	for _, e := range entries {
		if e.IsPinned {
			doc.PinnedIDs = append(doc.PinnedIDs, e.ID)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json export: %w", err)
	}
	return nil
}

// ExportCSV writes the header and one row per entry, lines separated by \n.
func ExportCSV(w io.Writer, entries []models.Entry) error {
	var b strings.Builder
	b.WriteString(strings.Join(CSVHeader, ","))

	for _, e := range entries {
		sortOrder := ""
		if e.SortOrder != nil {
			sortOrder = strconv.Itoa(*e.SortOrder)
		}
		row := []string{
			EscapeCSV(e.ID),
			EscapeCSV(e.Name),
			EscapeCSV(e.Content),
			EscapeCSV(e.Category),
			EscapeCSV(textnorm.FormatTags(e.Tags)),
			strconv.FormatBool(e.IsPinned),
			sortOrder,
			ISOTime(e.CreatedAt),
			ISOTime(e.UpdatedAt),
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join(row, ","))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write csv export: %w", err)
	}
	return nil
}

// EscapeCSV quotes a field holding a comma, quote or line break, doubling
// inner quotes.
func EscapeCSV(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Export writes entries in format.
func Export(w io.Writer, format Format, entries []models.Entry, settings models.Settings, now time.Time) error {
	switch format {
	case FormatJSON:
		return ExportJSON(w, entries, settings, now)
	case FormatCSV:
		return ExportCSV(w, entries)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// FileName builds the download name for an export. filters is the number of
// category and tag filters that narrowed it.
func FileName(format Format, filters int, now time.Time) string {
	label := "_all"
	if filters > 0 {
		label = fmt.Sprintf("_filtered%d", filters)
	}
	return fmt.Sprintf("promptvault%s_%s.%s", label, now.UTC().Format(time.DateOnly), format)
}

// ContentType returns the MIME type of format.
func ContentType(format Format) string {
	if format == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/json; charset=utf-8"
}

// GroupByCategory splits entries per category for one-file-per-category CSV
// exports. Entries without a category go under models.Uncategorized.
func GroupByCategory(entries []models.Entry) map[string][]models.Entry {
	out := make(map[string][]models.Entry)
	for _, e := range entries {
		cat := e.Category
		if cat == "" {
			cat = models.Uncategorized
		}
		out[cat] = append(out[cat], e)
	}
	return out
}

// CategoryFileName names the CSV file of one category group.
func CategoryFileName(category string, now time.Time) string {
	safe := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, category)
	return fmt.Sprintf("prompts_%s_%s.csv", safe, now.UTC().Format(time.DateOnly))
}
