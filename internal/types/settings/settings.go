package settings

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultReminderTime = "09:00"
	DefaultTheme        = "light"
)

// UserSettings is a singleton per user. Reads return the first stored row or
// the defaults when none exists yet.
type UserSettings struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	UserID              string    `json:"user_id" db:"user_id"`
	DefaultReminderTime string    `json:"default_reminder_time" db:"default_reminder_time"`
	Theme               string    `json:"theme" db:"theme"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

func Defaults(userID string) *UserSettings {
	return &UserSettings{
		UserID:              userID,
		DefaultReminderTime: DefaultReminderTime,
		Theme:               DefaultTheme,
	}
}

type SaveSettingsRequest struct {
	DefaultReminderTime *string `json:"default_reminder_time,omitempty"`
	Theme               *string `json:"theme,omitempty"`
}
