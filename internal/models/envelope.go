package models

import "slices"

const (
	// Version is the envelope format written by this build.
	Version = 1

	// MaxRecent caps the recent-use list.
	MaxRecent = 10

	// Uncategorized is the stats bucket for entries without a category.
	Uncategorized = "uncategorized"

	// UntitledName is used for imported entries that carry no name.
	UntitledName = "Untitled"
)

// Envelope is the full persisted state of a vault.
type Envelope struct {
	Entries   []Entry  `json:"entries"`
	RecentIDs []string `json:"recentIds"`
	PinnedIDs []string `json:"pinnedIds"`
	Settings  Settings `json:"settings"`
	Version   int      `json:"version"`
}

// DefaultEnvelope returns an empty vault with default settings.
func DefaultEnvelope() *Envelope {
	return &Envelope{
		Entries:   []Entry{},
		RecentIDs: []string{},
		PinnedIDs: []string{},
		Settings:  DefaultSettings(),
		Version:   Version,
	}
}

// Clone returns a deep copy of env. Nil slices become empty ones so the
// JSON form always carries arrays.
func (env *Envelope) Clone() *Envelope {
	c := &Envelope{
		Entries:   make([]Entry, len(env.Entries)),
		RecentIDs: append([]string{}, env.RecentIDs...),
		PinnedIDs: append([]string{}, env.PinnedIDs...),
		Settings:  env.Settings,
		Version:   env.Version,
	}
	for i, e := range env.Entries {
		c.Entries[i] = e.Clone()
	}
	return c
}

// PushRecent moves id to the front of ids, dropping an older occurrence and
// capping the result at MaxRecent.
func PushRecent(ids []string, id string) []string {
	out := make([]string, 0, min(len(ids)+1, MaxRecent))
	out = append(out, id)
	for _, r := range ids {
		if len(out) == MaxRecent {
			break
		}
		if r != id {
			out = append(out, r)
		}
	}
	return out
}

// RemoveID returns ids without any occurrence of id.
func RemoveID(ids []string, id string) []string {
	return slices.DeleteFunc(slices.Clone(ids), func(s string) bool { return s == id })
}
