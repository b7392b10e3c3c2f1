package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `{
  "entries": [{"id":"a","name":"n","content":"c","createdAt":1,"updatedAt":2}],
  "recentIds": [],
  "pinnedIds": [],
  "settings": {},
  "version": 1
}`

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want bool
	}{
		{"valid", validDoc, true},
		{"pinnedIds absent is tolerated", `{"entries":[],"recentIds":[],"settings":{},"version":1}`, true},
		{"optional fields of any type", `{"entries":[{"id":"a","name":"n","content":"c","createdAt":1,"updatedAt":2,"tags":"x","sortOrder":"y","isPinned":3}],"recentIds":[],"settings":{},"version":1}`, true},
		{"not json", `{`, false},
		{"not an object", `[]`, false},
		{"entries not array", `{"entries":{},"recentIds":[],"settings":{},"version":1}`, false},
		{"recentIds missing", `{"entries":[],"settings":{},"version":1}`, false},
		{"pinnedIds wrong type", `{"entries":[],"recentIds":[],"pinnedIds":"a","settings":{},"version":1}`, false},
		{"settings missing", `{"entries":[],"recentIds":[],"version":1}`, false},
		{"settings null", `{"entries":[],"recentIds":[],"settings":null,"version":1}`, false},
		{"version string", `{"entries":[],"recentIds":[],"settings":{},"version":"1"}`, false},
		{"entry not object", `{"entries":[1],"recentIds":[],"settings":{},"version":1}`, false},
		{"entry id number", `{"entries":[{"id":1,"name":"n","content":"c","createdAt":1,"updatedAt":2}],"recentIds":[],"settings":{},"version":1}`, false},
		{"entry content missing", `{"entries":[{"id":"a","name":"n","createdAt":1,"updatedAt":2}],"recentIds":[],"settings":{},"version":1}`, false},
		{"entry createdAt string", `{"entries":[{"id":"a","name":"n","content":"c","createdAt":"1","updatedAt":2}],"recentIds":[],"settings":{},"version":1}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate([]byte(tt.doc)))
		})
	}
}

func TestUpgradeLegacy(t *testing.T) {
	m := map[string]any{
		"prompts":         []any{map[string]any{"id": "a", "parentPromptId": "p"}},
		"recentPromptIds": []any{"a"},
		"pinnedPromptIds": []any{},
	}

	require.True(t, UpgradeLegacy(m))
	assert.Contains(t, m, "entries")
	assert.Contains(t, m, "recentIds")
	assert.Contains(t, m, "pinnedIds")
	assert.NotContains(t, m, "prompts")

	e := m["entries"].([]any)[0].(map[string]any)
	assert.Equal(t, "p", e["parentId"])
	assert.NotContains(t, e, "parentPromptId")

	assert.False(t, UpgradeLegacy(map[string]any{"entries": []any{}}))
}
