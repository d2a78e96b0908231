package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resoluteAPI/internal/types/settings"
	"resoluteAPI/store"
)

func TestGetSettingsReturnsDefaultsWhenUnsaved(t *testing.T) {
	svc := NewSettingsService(store.NewMemorySettingsStore())

	s, err := svc.GetSettings(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, settings.DefaultReminderTime, s.DefaultReminderTime)
	assert.Equal(t, settings.DefaultTheme, s.Theme)
}

func TestSaveSettingsUpsert(t *testing.T) {
	svc := NewSettingsService(store.NewMemorySettingsStore())
	ctx := context.Background()

	reminder := "07:30"
	saved, err := svc.SaveSettings(ctx, testUser, &settings.SaveSettingsRequest{DefaultReminderTime: &reminder})
	require.NoError(t, err)
	assert.Equal(t, "07:30", saved.DefaultReminderTime)
	assert.Equal(t, settings.DefaultTheme, saved.Theme)

	// Second save updates the same row instead of creating another.
	theme := "dark"
	saved2, err := svc.SaveSettings(ctx, testUser, &settings.SaveSettingsRequest{Theme: &theme})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, saved2.ID)
	assert.Equal(t, "07:30", saved2.DefaultReminderTime)
	assert.Equal(t, "dark", saved2.Theme)

	got, err := svc.GetSettings(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)
}
