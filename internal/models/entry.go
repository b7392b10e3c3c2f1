package models

import (
	"slices"
	"time"
)

// Entry is a single stored snippet.
type Entry struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Content   string   `json:"content"`
	Category  string   `json:"category,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	ParentID  string   `json:"parentId,omitempty"`
	IsPinned  bool     `json:"isPinned"`
	SortOrder *int     `json:"sortOrder,omitempty"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	c := e
	c.Tags = slices.Clone(e.Tags)
	if e.SortOrder != nil {
		v := *e.SortOrder
		c.SortOrder = &v
	}
	return c
}

// Unconfigured reports whether the entry has neither a category nor tags.
func (e Entry) Unconfigured() bool {
	return e.Category == "" && len(e.Tags) == 0
}

// HasTag reports whether any of the entry's tags is in set.
func (e Entry) HasTag(set map[string]struct{}) bool {
	for _, t := range e.Tags {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// EntryPatch carries a partial update. Nil fields are left unchanged.
type EntryPatch struct {
	Name     *string
	Content  *string
	Category *string
	Tags     *[]string
}

// Empty reports whether the patch changes nothing.
func (p EntryPatch) Empty() bool {
	return p.Name == nil && p.Content == nil && p.Category == nil && p.Tags == nil
}

// Apply merges the patch into e. It does not touch timestamps.
func (p EntryPatch) Apply(e *Entry) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Tags != nil {
		e.Tags = slices.Clone(*p.Tags)
	}
}

// ImportEntry is an entry as read from an import file. Any field may be
// missing; zero timestamps mean "not provided".
type ImportEntry struct {
	ID        string
	Name      string
	Content   string
	Category  string
	Tags      []string
	ParentID  string
	IsPinned  bool
	SortOrder *int
	CreatedAt int64
	UpdatedAt int64
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// NowMillis returns t as a millisecond epoch.
func NowMillis(t time.Time) int64 { return t.UnixMilli() }
