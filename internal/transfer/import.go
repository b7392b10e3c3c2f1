package transfer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/TK2F/promptvault/internal/models"
	"github.com/TK2F/promptvault/internal/storage"
	"github.com/TK2F/promptvault/internal/textnorm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads an import file, choosing the format by extension.
func Parse(filename string, data []byte) ([]models.ImportEntry, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return ParseJSON(data)
	case ".csv":
		return ParseCSV(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(filename))
}

// ParseJSON accepts a vault envelope (current or first format) or a bare
// array of entries. Array elements without a string name and content are
// dropped; the batch fails only if none remain.
func ParseJSON(data []byte) ([]models.ImportEntry, error) {
	var v any
	if err := json.Unmarshal(bytes.TrimPrefix(data, utf8BOM), &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var out []models.ImportEntry
	switch doc := v.(type) {
	case map[string]any:
		env, err := storage.DecodeValue(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: not a vault export", ErrInvalidFormat)
		}
		for _, e := range env.Entries {
			out = append(out, fromEntry(e))
		}
	case []any:
		for _, item := range doc {
			if ie, ok := fromLooseJSON(item); ok {
				out = append(out, ie)
			}
		}
	default:
		return nil, fmt.Errorf("%w: expected an object or an array", ErrInvalidFormat)
	}

	if len(out) == 0 {
		return nil, ErrNoEntries
	}
	return out, nil
}

func fromEntry(e models.Entry) models.ImportEntry {
	return models.ImportEntry{
		ID:        e.ID,
		Name:      e.Name,
		Content:   e.Content,
		Category:  e.Category,
		Tags:      e.Tags,
		ParentID:  e.ParentID,
		IsPinned:  e.IsPinned,
		SortOrder: e.SortOrder,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func fromLooseJSON(item any) (models.ImportEntry, bool) {
	m, ok := item.(map[string]any)
	if !ok {
		return models.ImportEntry{}, false
	}
	name, okName := m["name"].(string)
	content, okContent := m["content"].(string)
	if !okName || !okContent {
		return models.ImportEntry{}, false
	}

	ie := models.ImportEntry{Name: name, Content: content}
	ie.ID, _ = m["id"].(string)
	ie.Category, _ = m["category"].(string)
	ie.ParentID, _ = m["parentId"].(string)
	ie.IsPinned, _ = m["isPinned"].(bool)

	switch tags := m["tags"].(type) {
	case []any:
		for _, t := range tags {
			if s, ok := t.(string); ok {
				ie.Tags = append(ie.Tags, s)
			}
		}
		ie.Tags = textnorm.DedupeTags(ie.Tags)
	case string:
		ie.Tags = textnorm.ParseTags(tags)
	}
	if n, ok := m["sortOrder"].(float64); ok && !math.IsNaN(n) && !math.IsInf(n, 0) {
		ie.SortOrder = models.IntPtr(int(n))
	}
	if n, ok := m["createdAt"].(float64); ok {
		ie.CreatedAt = int64(n)
	}
	if n, ok := m["updatedAt"].(float64); ok {
		ie.UpdatedAt = int64(n)
	}
	return ie, true
}

// ParseCSV reads a CSV export. Quoted fields may span lines. Rows with fewer
// than two columns or without content are skipped; rows without a name get
// "Prompt <n>" where n is the data row number.
func ParseCSV(data []byte) ([]models.ImportEntry, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		if blankRecord(rec) {
			continue
		}
		records = append(records, rec)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: need a header and at least one row", ErrInvalidFormat)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var out []models.ImportEntry
	for i, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		// Text columns are kept exactly as written.
		row := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(rec) {
				row[h] = rec[j]
			}
		}

		ie := models.ImportEntry{
			ID:        strings.TrimSpace(row["id"]),
			Name:      row["name"],
			Content:   row["content"],
			Category:  row["category"],
			IsPinned:  strings.EqualFold(strings.TrimSpace(row["ispinned"]), "true"),
			CreatedAt: parseTime(strings.TrimSpace(row["createdat"])),
			UpdatedAt: parseTime(strings.TrimSpace(row["updatedat"])),
		}
		if strings.TrimSpace(ie.Name) == "" {
			ie.Name = fmt.Sprintf("Prompt %d", i+1)
		}
		if strings.TrimSpace(ie.Content) == "" {
			continue
		}
		if tags := row["tags"]; strings.TrimSpace(tags) != "" {
			ie.Tags = textnorm.DedupeTags(strings.Split(tags, ","))
		}
		if n, err := strconv.Atoi(strings.TrimSpace(row["sortorder"])); err == nil {
			ie.SortOrder = models.IntPtr(n)
		}
		out = append(out, ie)
	}

	if len(out) == 0 {
		return nil, ErrNoEntries
	}
	return out, nil
}

func blankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// parseTime accepts ISO-8601 timestamps or millisecond epochs. Anything else
// yields 0, meaning "not provided".
func parseTime(s string) int64 {
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}
