package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/TK2F/promptvault/internal/models"
)

func (a *App) Settings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printSettings(a.store.Settings())
		return nil
	}
	if len(args) != 2 {
		return errUsage
	}

	patch, err := settingsPatch(args[0], args[1])
	if err != nil {
		return err
	}
	s, err := a.store.UpdateSettings(ctx, patch)
	if err != nil {
		return err
	}
	printSettings(s)
	return nil
}

func printSettings(s models.Settings) {
	printlnFn("theme          ", s.Theme)
	printlnFn("fontSize       ", s.FontSize)
	printlnFn("language       ", s.Language)
	printlnFn("caseSensitive  ", s.CaseSensitiveSearch)
	printlnFn("blankLineMode  ", s.BlankLineMode)
	printlnFn("sortMode       ", s.SortMode)
}

// settingsPatch validates a key/value pair typed by the user.
func settingsPatch(key, value string) (models.SettingsPatch, error) {
	var p models.SettingsPatch
	switch key {
	case "theme":
		v := models.Theme(value)
		if !slices.Contains([]models.Theme{models.ThemeLight, models.ThemeDark, models.ThemeSystem}, v) {
			return p, fmt.Errorf("theme must be light, dark or system")
		}
		p.Theme = &v
	case "fontSize":
		v := models.FontSize(value)
		if !slices.Contains([]models.FontSize{models.FontSmall, models.FontMedium, models.FontLarge}, v) {
			return p, fmt.Errorf("fontSize must be small, medium or large")
		}
		p.FontSize = &v
	case "language":
		p.Language = &value
	case "caseSensitive":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return p, fmt.Errorf("caseSensitive must be true or false")
		}
		p.CaseSensitiveSearch = &v
	case "blankLineMode":
		v := models.BlankLineMode(value)
		if v != models.BlankKeepOne && v != models.BlankRemoveAll {
			return p, fmt.Errorf("blankLineMode must be keep-one or remove-all")
		}
		p.BlankLineMode = &v
	case "sortMode":
		v := models.SortMode(value)
		if !slices.Contains(models.SortModes, v) {
			return p, fmt.Errorf("unknown sort mode %q", value)
		}
		p.SortMode = &v
	default:
		return p, fmt.Errorf("unknown setting %q", key)
	}
	return p, nil
}
