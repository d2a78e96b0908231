package services

import (
	"context"
	"fmt"

	"resoluteAPI/internal/types/settings"
	"resoluteAPI/store"
)

type SettingsService struct {
	settings store.SettingsStore
}

func NewSettingsService(s store.SettingsStore) *SettingsService {
	return &SettingsService{settings: s}
}

// GetSettings returns the user's stored settings row, or the defaults when
// none has been saved yet.
func (s *SettingsService) GetSettings(ctx context.Context, userID string) (*settings.UserSettings, error) {
	rows, err := s.settings.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if len(rows) == 0 {
		return settings.Defaults(userID), nil
	}
	return rows[0], nil
}

// SaveSettings updates the existing row or creates the first one.
func (s *SettingsService) SaveSettings(ctx context.Context, userID string, req *settings.SaveSettingsRequest) (*settings.UserSettings, error) {
	rows, err := s.settings.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if len(rows) > 0 {
		updated, err := s.settings.Update(ctx, rows[0].ID, store.SettingsPatch{
			DefaultReminderTime: req.DefaultReminderTime,
			Theme:               req.Theme,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to update settings: %w", err)
		}
		return updated, nil
	}

	fresh := settings.Defaults(userID)
	if req.DefaultReminderTime != nil {
		fresh.DefaultReminderTime = *req.DefaultReminderTime
	}
	if req.Theme != nil {
		fresh.Theme = *req.Theme
	}
	created, err := s.settings.Create(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}
	return created, nil
}
