package storage

import "encoding/json"

// Validate reports whether raw is a JSON document with the envelope shape.
func Validate(raw []byte) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return ValidateValue(v)
}

// ValidateValue checks a decoded JSON value. Only required fields are
// checked; optional entry fields may be missing or of any type.
func ValidateValue(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}

	entries, ok := m["entries"].([]any)
	if !ok {
		return false
	}
	if _, ok := m["recentIds"].([]any); !ok {
		return false
	}
	if p, present := m["pinnedIds"]; present {
		if _, ok := p.([]any); !ok {
			return false
		}
	}
	if _, ok := m["settings"].(map[string]any); !ok {
		return false
	}
	if _, ok := m["version"].(float64); !ok {
		return false
	}

	for _, e := range entries {
		if !validEntry(e) {
			return false
		}
	}
	return true
}

func validEntry(v any) bool {
	e, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, k := range []string{"id", "name", "content"} {
		if _, ok := e[k].(string); !ok {
			return false
		}
	}
	for _, k := range []string{"createdAt", "updatedAt"} {
		if _, ok := e[k].(float64); !ok {
			return false
		}
	}
	return true
}

// legacyKeys maps field names of the first data format to current ones.
var legacyKeys = map[string]string{
	"prompts":         "entries",
	"recentPromptIds": "recentIds",
	"pinnedPromptIds": "pinnedIds",
}

// UpgradeLegacy renames first-format fields in place when the current name
// is absent. It reports whether anything was renamed.
func UpgradeLegacy(m map[string]any) bool {
	changed := false
	for old, cur := range legacyKeys {
		v, ok := m[old]
		if !ok {
			continue
		}
		if _, exists := m[cur]; !exists {
			m[cur] = v
			changed = true
		}
		delete(m, old)
	}
	if entries, ok := m["entries"].([]any); ok {
		for _, e := range entries {
			em, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if p, ok := em["parentPromptId"]; ok {
				if _, exists := em["parentId"]; !exists {
					em["parentId"] = p
					changed = true
				}
				delete(em, "parentPromptId")
			}
		}
	}
	return changed
}
