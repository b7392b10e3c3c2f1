package storage

import (
	"testing"

	"github.com/TK2F/promptvault/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_DropsMalformedOptionalFields(t *testing.T) {
	doc := `{
	  "entries": [
	    {"id":"a","name":"A","content":"x","createdAt":5,"updatedAt":3,
	     "category":7,"tags":["t","t",1,"u"],"sortOrder":2,"isPinned":"yes","parentId":"p"},
	    {"id":"b","name":"B","content":"y","createdAt":1,"updatedAt":1,"sortOrder":"first"}
	  ],
	  "recentIds": ["a", 3, "b", "a"],
	  "settings": {"theme":"dark"},
	  "version": 1
	}`

	env, err := Decode([]byte(doc))
	require.NoError(t, err)
	require.Len(t, env.Entries, 2)

	a := env.Entries[0]
	assert.Empty(t, a.Category)
	assert.Equal(t, []string{"t", "u"}, a.Tags)
	require.NotNil(t, a.SortOrder)
	assert.Equal(t, 2, *a.SortOrder)
	assert.False(t, a.IsPinned)
	assert.Equal(t, "p", a.ParentID)
	assert.Equal(t, int64(5), a.UpdatedAt, "updatedAt is raised to createdAt")

	assert.Nil(t, env.Entries[1].SortOrder)
	assert.Equal(t, []string{"a", "b"}, env.RecentIDs)
	assert.Empty(t, env.PinnedIDs)
	assert.Equal(t, models.ThemeDark, env.Settings.Theme)
	assert.Equal(t, models.BlankKeepOne, env.Settings.BlankLineMode)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte(`{"entries":"nope","recentIds":[],"settings":{},"version":1}`))
	require.ErrorIs(t, err, ErrInvalidData)

	_, err = Decode([]byte(`garbage`))
	require.ErrorIs(t, err, ErrInvalidData)
}

func TestDecode_LegacyShape(t *testing.T) {
	doc := `{"prompts":[{"id":"a","name":"A","content":"x","createdAt":1,"updatedAt":1,"isPinned":true}],
	         "recentPromptIds":["a"],"settings":{},"version":1}`

	env, err := Decode([]byte(doc))
	require.NoError(t, err)
	require.Len(t, env.Entries, 1)
	assert.Equal(t, []string{"a"}, env.RecentIDs)
	assert.Equal(t, []string{"a"}, env.PinnedIDs, "pinned flag without list is promoted")
	assert.True(t, env.Entries[0].IsPinned)
}

func TestReconcilePins(t *testing.T) {
	env := &models.Envelope{
		Entries: []models.Entry{
			{ID: "a"},
			{ID: "b", IsPinned: true},
			{ID: "c", IsPinned: false},
		},
		PinnedIDs: []string{"c", "ghost"},
	}

	ReconcilePins(env)

	assert.Equal(t, []string{"c", "ghost", "b"}, env.PinnedIDs)
	for _, e := range env.Entries {
		want := e.ID == "b" || e.ID == "c"
		assert.Equal(t, want, e.IsPinned, e.ID)
	}
}

func TestDecode_RecentCapped(t *testing.T) {
	doc := `{"entries":[],"recentIds":["1","2","3","4","5","6","7","8","9","10","11","12"],"settings":{},"version":1}`
	env, err := Decode([]byte(doc))
	require.NoError(t, err)
	assert.Len(t, env.RecentIDs, models.MaxRecent)
}
