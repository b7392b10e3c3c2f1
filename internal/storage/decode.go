package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/TK2F/promptvault/internal/models"
)

var ErrInvalidData = errors.New("stored data failed validation")

// Decode parses, validates and converts a stored document into an envelope.
func Decode(raw []byte) (*models.Envelope, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return DecodeValue(v)
}

// DecodeValue converts an already decoded JSON value. First-format field
// names are upgraded before validation.
func DecodeValue(v any) (*models.Envelope, error) {
	if m, ok := v.(map[string]any); ok {
		UpgradeLegacy(m)
	}
	if !ValidateValue(v) {
		return nil, ErrInvalidData
	}
	m := v.(map[string]any)

	env := &models.Envelope{
		Entries:   make([]models.Entry, 0),
		RecentIDs: dedupe(stringList(m["recentIds"])),
		PinnedIDs: dedupe(stringList(m["pinnedIds"])),
		Settings:  models.MergeSettings(m["settings"].(map[string]any)),
		Version:   int(m["version"].(float64)),
	}
	if len(env.RecentIDs) > models.MaxRecent {
		env.RecentIDs = env.RecentIDs[:models.MaxRecent]
	}

	for _, raw := range m["entries"].([]any) {
		env.Entries = append(env.Entries, DecodeEntry(raw.(map[string]any)))
	}

	ReconcilePins(env)
	return env, nil
}

// DecodeEntry reads an entry map whose required fields are already known to
// be valid. Malformed optional fields are dropped.
func DecodeEntry(m map[string]any) models.Entry {
	e := models.Entry{
		ID:        m["id"].(string),
		Name:      m["name"].(string),
		Content:   m["content"].(string),
		CreatedAt: int64(m["createdAt"].(float64)),
		UpdatedAt: int64(m["updatedAt"].(float64)),
	}
	if e.UpdatedAt < e.CreatedAt {
		e.UpdatedAt = e.CreatedAt
	}

	if s, ok := m["category"].(string); ok {
		e.Category = s
	}
	if s, ok := m["parentId"].(string); ok {
		e.ParentID = s
	}
	if b, ok := m["isPinned"].(bool); ok {
		e.IsPinned = b
	}
	if n, ok := m["sortOrder"].(float64); ok && !math.IsNaN(n) && !math.IsInf(n, 0) {
		e.SortOrder = models.IntPtr(int(n))
	}
	if tags := dedupe(stringList(m["tags"])); len(tags) > 0 {
		e.Tags = tags
	}
	return e
}

// ReconcilePins makes the pinned list and the per-entry flags agree. The
// list keeps its order; flagged entries missing from it are appended.
func ReconcilePins(env *models.Envelope) {
	pinned := make(map[string]struct{}, len(env.PinnedIDs))
	for _, id := range env.PinnedIDs {
		pinned[id] = struct{}{}
	}
	for _, e := range env.Entries {
		if _, ok := pinned[e.ID]; e.IsPinned && !ok {
			env.PinnedIDs = append(env.PinnedIDs, e.ID)
			pinned[e.ID] = struct{}{}
		}
	}
	for i := range env.Entries {
		_, ok := pinned[env.Entries[i].ID]
		env.Entries[i].IsPinned = ok
	}
}

// stringList keeps the non-empty string elements of a JSON array.
func stringList(v any) []string {
	arr, _ := v.([]any)
	out := make([]string, 0, len(arr))
	for _, x := range arr {
		if s, ok := x.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
