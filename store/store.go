// Package store defines the entity store boundary: per-entity list, filter,
// create, update and delete operations. The transport behind it is opaque to
// callers; production uses Postgres, tests use the in-memory implementation.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"resoluteAPI/internal/types/category"
	"resoluteAPI/internal/types/challenge"
	"resoluteAPI/internal/types/dailylog"
	"resoluteAPI/internal/types/settings"
)

// ErrNotFound marks lookups that matched zero records. Callers treat it as a
// condition, not a fault.
var ErrNotFound = errors.New("record not found")

// ChallengeFilter matches on the conjunction of its non-nil fields. UserID is
// always required: every row is scoped to its owner.
type ChallengeFilter struct {
	UserID string
	ID     *uuid.UUID
	Status *challenge.Status
}

// ChallengePatch is a partial update; nil fields are left untouched.
type ChallengePatch struct {
	Name            *string
	Description     *string
	Category        *string
	Icon            *challenge.Icon
	StartDate       *string
	EndDate         *string
	Frequency       *challenge.Frequency
	Subtasks        *[]challenge.Subtask
	Status          *challenge.Status
	CurrentStreak   *int
	BestStreak      *int
	ReminderEnabled *bool
	ReminderTime    *string
}

type ChallengeStore interface {
	List(ctx context.Context, userID string, sort string) ([]*challenge.Challenge, error)
	Filter(ctx context.Context, f ChallengeFilter) ([]*challenge.Challenge, error)
	Create(ctx context.Context, c *challenge.Challenge) (*challenge.Challenge, error)
	Update(ctx context.Context, id uuid.UUID, p ChallengePatch) (*challenge.Challenge, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DailyLogFilter struct {
	UserID      string
	ChallengeID *uuid.UUID
	Date        *string
	Completed   *bool
}

type DailyLogPatch struct {
	Completed         *bool
	CompletedSubtasks *[]string
}

type DailyLogStore interface {
	List(ctx context.Context, userID string, sort string) ([]*dailylog.DailyLog, error)
	Filter(ctx context.Context, f DailyLogFilter) ([]*dailylog.DailyLog, error)
	Create(ctx context.Context, l *dailylog.DailyLog) (*dailylog.DailyLog, error)
	Update(ctx context.Context, id uuid.UUID, p DailyLogPatch) (*dailylog.DailyLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryFilter struct {
	UserID string
	ID     *uuid.UUID
	Name   *string
}

type CategoryPatch struct {
	Name  *string
	Color *string
}

type CategoryStore interface {
	List(ctx context.Context, userID string, sort string) ([]*category.Category, error)
	Filter(ctx context.Context, f CategoryFilter) ([]*category.Category, error)
	Create(ctx context.Context, c *category.Category) (*category.Category, error)
	Update(ctx context.Context, id uuid.UUID, p CategoryPatch) (*category.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SettingsPatch struct {
	DefaultReminderTime *string
	Theme               *string
}

type SettingsStore interface {
	List(ctx context.Context, userID string) ([]*settings.UserSettings, error)
	Create(ctx context.Context, s *settings.UserSettings) (*settings.UserSettings, error)
	Update(ctx context.Context, id uuid.UUID, p SettingsPatch) (*settings.UserSettings, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
