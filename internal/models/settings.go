package models

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// BlankLineMode controls how captured text collapses runs of blank lines.
type BlankLineMode string

const (
	BlankKeepOne   BlankLineMode = "keep-one"
	BlankRemoveAll BlankLineMode = "remove-all"
)

// SortMode selects the display order of the main view.
type SortMode string

const (
	SortCustom        SortMode = "custom"
	SortUpdatedAtDesc SortMode = "updatedAt-desc"
	SortUpdatedAtAsc  SortMode = "updatedAt-asc"
	SortCreatedAtDesc SortMode = "createdAt-desc"
	SortCreatedAtAsc  SortMode = "createdAt-asc"
	SortNameAsc       SortMode = "name-asc"
	SortNameDesc      SortMode = "name-desc"
)

// SortModes lists every sort mode in menu order.
var SortModes = []SortMode{
	SortCustom, SortUpdatedAtDesc, SortUpdatedAtAsc,
	SortCreatedAtDesc, SortCreatedAtAsc, SortNameAsc, SortNameDesc,
}

// Settings is the flat user preference record.
type Settings struct {
	Theme               Theme         `json:"theme"`
	FontSize            FontSize      `json:"fontSize"`
	Language            string        `json:"language"`
	CaseSensitiveSearch bool          `json:"caseSensitiveSearch"`
	BlankLineMode       BlankLineMode `json:"blankLineMode"`
	SortMode            SortMode      `json:"sortMode"`
}

// DefaultSettings returns the settings of a fresh vault.
func DefaultSettings() Settings {
	return Settings{
		Theme:               ThemeSystem,
		FontSize:            FontMedium,
		Language:            "ja",
		CaseSensitiveSearch: false,
		BlankLineMode:       BlankKeepOne,
		SortMode:            SortCustom,
	}
}

// SettingsPatch is a shallow partial update of Settings.
type SettingsPatch struct {
	Theme               *Theme
	FontSize            *FontSize
	Language            *string
	CaseSensitiveSearch *bool
	BlankLineMode       *BlankLineMode
	SortMode            *SortMode
}

// Apply returns s with every non-nil patch field copied over. Values are not
// validated.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.FontSize != nil {
		s.FontSize = *p.FontSize
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.CaseSensitiveSearch != nil {
		s.CaseSensitiveSearch = *p.CaseSensitiveSearch
	}
	if p.BlankLineMode != nil {
		s.BlankLineMode = *p.BlankLineMode
	}
	if p.SortMode != nil {
		s.SortMode = *p.SortMode
	}
	return s
}

var (
	legacyThemes = map[string]Theme{"auto": ThemeSystem}

	legacyBlankModes = map[string]BlankLineMode{
		"keep":   BlankKeepOne,
		"remove": BlankRemoveAll,
	}

	legacySortModes = map[string]SortMode{
		"manual":  SortCustom,
		"updated": SortUpdatedAtDesc,
		"created": SortCreatedAtDesc,
		"name":    SortNameAsc,
	}
)

// MergeSettings overlays a decoded JSON settings object on the defaults.
// Unknown keys are ignored, wrong-typed values keep the default and legacy
// enum names are mapped to their current equivalents.
func MergeSettings(raw map[string]any) Settings {
	s := DefaultSettings()
	if raw == nil {
		return s
	}

	if v, ok := raw["theme"].(string); ok {
		if m, legacy := legacyThemes[v]; legacy {
			s.Theme = m
		} else {
			s.Theme = Theme(v)
		}
	}
	if v, ok := raw["fontSize"].(string); ok {
		s.FontSize = FontSize(v)
	}
	if v, ok := raw["language"].(string); ok && v != "" {
		s.Language = v
	}
	if v, ok := raw["caseSensitiveSearch"].(bool); ok {
		s.CaseSensitiveSearch = v
	}
	if v, ok := raw["blankLineMode"].(string); ok {
		if m, legacy := legacyBlankModes[v]; legacy {
			s.BlankLineMode = m
		} else {
			s.BlankLineMode = BlankLineMode(v)
		}
	}
	if v, ok := raw["sortMode"].(string); ok {
		if m, legacy := legacySortModes[v]; legacy {
			s.SortMode = m
		} else {
			s.SortMode = SortMode(v)
		}
	}
	return s
}
