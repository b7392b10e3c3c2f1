package store

import (
	"context"

	"github.com/TK2F/promptvault/internal/models"
)

// UpdateSettings merges patch into the settings and persists the vault.
// Values are stored as given.
func (s *Store) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.Settings, error) {
	var out models.Settings
	err := s.mutate(ctx, "update settings", func(env *models.Envelope) error {
		env.Settings = patch.Apply(env.Settings)
		out = env.Settings
		return nil
	})
	return out, err
}
