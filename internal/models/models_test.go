package models

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_CloneIsDeep(t *testing.T) {
	e := Entry{ID: "a", Tags: []string{"x"}, SortOrder: IntPtr(3)}
	c := e.Clone()

	c.Tags[0] = "changed"
	*c.SortOrder = 9

	assert.Equal(t, "x", e.Tags[0])
	assert.Equal(t, 3, *e.SortOrder)
}

func TestEntry_Unconfigured(t *testing.T) {
	assert.True(t, Entry{}.Unconfigured())
	assert.False(t, Entry{Category: "c"}.Unconfigured())
	assert.False(t, Entry{Tags: []string{"t"}}.Unconfigured())
}

func TestEntry_JSONShape(t *testing.T) {
	e := Entry{ID: "1", Name: "n", Content: "c", SortOrder: IntPtr(0), CreatedAt: 1, UpdatedAt: 2}
	b, err := json.Marshal(e)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, float64(0), m["sortOrder"], "sortOrder 0 must be kept")
	assert.NotContains(t, m, "category")
	assert.NotContains(t, m, "parentId")
	assert.Equal(t, false, m["isPinned"])
}

func TestEntryPatch_Apply(t *testing.T) {
	name := "new"
	tags := []string{"a", "b"}
	e := Entry{Name: "old", Content: "keep", Category: "c"}

	EntryPatch{Name: &name, Tags: &tags}.Apply(&e)

	assert.Equal(t, "new", e.Name)
	assert.Equal(t, "keep", e.Content)
	assert.Equal(t, "c", e.Category)
	assert.Equal(t, []string{"a", "b"}, e.Tags)
	assert.True(t, EntryPatch{}.Empty())
}

func TestMergeSettings(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want Settings
	}{
		{name: "nil gives defaults", raw: nil, want: DefaultSettings()},
		{
			name: "known values kept, missing filled",
			raw:  map[string]any{"theme": "dark", "caseSensitiveSearch": true},
			want: func() Settings {
				s := DefaultSettings()
				s.Theme = ThemeDark
				s.CaseSensitiveSearch = true
				return s
			}(),
		},
		{
			name: "legacy names migrated",
			raw:  map[string]any{"theme": "auto", "blankLineMode": "remove", "sortMode": "updated"},
			want: func() Settings {
				s := DefaultSettings()
				s.BlankLineMode = BlankRemoveAll
				s.SortMode = SortUpdatedAtDesc
				return s
			}(),
		},
		{
			name: "wrong types ignored",
			raw:  map[string]any{"fontSize": 12, "caseSensitiveSearch": "yes", "language": "en", "extra": 1},
			want: func() Settings {
				s := DefaultSettings()
				s.Language = "en"
				return s
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, cmp.Diff(tt.want, MergeSettings(tt.raw)))
		})
	}
}

func TestSettingsPatch_Apply(t *testing.T) {
	mode := SortNameDesc
	cs := true
	got := SettingsPatch{SortMode: &mode, CaseSensitiveSearch: &cs}.Apply(DefaultSettings())

	assert.Equal(t, SortNameDesc, got.SortMode)
	assert.True(t, got.CaseSensitiveSearch)
	assert.Equal(t, ThemeSystem, got.Theme)
}

func TestPushRecent(t *testing.T) {
	t.Run("prepends new id", func(t *testing.T) {
		assert.Equal(t, []string{"c", "a", "b"}, PushRecent([]string{"a", "b"}, "c"))
	})

	t.Run("existing id moves to front without growing", func(t *testing.T) {
		assert.Equal(t, []string{"b", "a", "c"}, PushRecent([]string{"a", "b", "c"}, "b"))
	})

	t.Run("capped at MaxRecent", func(t *testing.T) {
		var ids []string
		for i := 0; i < 25; i++ {
			ids = PushRecent(ids, fmt.Sprint(i))
			require.LessOrEqual(t, len(ids), MaxRecent)
		}
		assert.Len(t, ids, MaxRecent)
		assert.Equal(t, "24", ids[0])
		assert.Equal(t, "15", ids[MaxRecent-1])
	})
}

func TestRemoveID(t *testing.T) {
	in := []string{"a", "b", "a"}
	assert.Equal(t, []string{"b"}, RemoveID(in, "a"))
	assert.Equal(t, []string{"a", "b", "a"}, in, "input must not be mutated")
}

func TestEnvelope_CloneNeverNilSlices(t *testing.T) {
	env := &Envelope{Version: 1}
	c := env.Clone()

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"recentIds":[]`)
	assert.Contains(t, string(b), `"pinnedIds":[]`)
	assert.Contains(t, string(b), `"entries":[]`)
}
