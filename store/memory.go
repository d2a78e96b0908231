package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"resoluteAPI/internal/types/category"
	"resoluteAPI/internal/types/challenge"
	"resoluteAPI/internal/types/dailylog"
	"resoluteAPI/internal/types/settings"
)

// MemoryChallengeStore is an in-memory ChallengeStore used by tests in place
// of a live database. UpdateErr, when set, is returned by Update so partial
// check-in failures can be simulated.
type MemoryChallengeStore struct {
	mu         sync.Mutex
	challenges map[uuid.UUID]*challenge.Challenge
	UpdateErr  error
}

func NewMemoryChallengeStore() *MemoryChallengeStore {
	return &MemoryChallengeStore{challenges: make(map[uuid.UUID]*challenge.Challenge)}
}

func copyChallenge(c *challenge.Challenge) *challenge.Challenge {
	dup := *c
	dup.Subtasks = append([]challenge.Subtask(nil), c.Subtasks...)
	return &dup
}

func (s *MemoryChallengeStore) List(ctx context.Context, userID string, sortSpec string) ([]*challenge.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*challenge.Challenge
	for _, c := range s.challenges {
		if c.UserID == userID {
			out = append(out, copyChallenge(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryChallengeStore) Filter(ctx context.Context, f ChallengeFilter) ([]*challenge.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*challenge.Challenge
	for _, c := range s.challenges {
		if c.UserID != f.UserID {
			continue
		}
		if f.ID != nil && c.ID != *f.ID {
			continue
		}
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		out = append(out, copyChallenge(c))
	}
	return out, nil
}

func (s *MemoryChallengeStore) Create(ctx context.Context, c *challenge.Challenge) (*challenge.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dup := copyChallenge(c)
	if dup.ID == uuid.Nil {
		dup.ID = uuid.New()
	}
	dup.CreatedAt = time.Now()
	dup.UpdatedAt = dup.CreatedAt
	s.challenges[dup.ID] = dup
	return copyChallenge(dup), nil
}

func (s *MemoryChallengeStore) Update(ctx context.Context, id uuid.UUID, p ChallengePatch) (*challenge.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	c, ok := s.challenges[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.StartDate != nil {
		c.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		c.EndDate = *p.EndDate
	}
	if p.Frequency != nil {
		c.Frequency = *p.Frequency
	}
	if p.Subtasks != nil {
		c.Subtasks = append([]challenge.Subtask(nil), (*p.Subtasks)...)
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.CurrentStreak != nil {
		c.CurrentStreak = *p.CurrentStreak
	}
	if p.BestStreak != nil {
		c.BestStreak = *p.BestStreak
	}
	if p.ReminderEnabled != nil {
		c.ReminderEnabled = *p.ReminderEnabled
	}
	if p.ReminderTime != nil {
		c.ReminderTime = *p.ReminderTime
	}
	c.UpdatedAt = time.Now()
	return copyChallenge(c), nil
}

func (s *MemoryChallengeStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.challenges[id]; !ok {
		return ErrNotFound
	}
	delete(s.challenges, id)
	return nil
}

// MemoryDailyLogStore is the in-memory DailyLogStore counterpart.
type MemoryDailyLogStore struct {
	mu        sync.Mutex
	logs      map[uuid.UUID]*dailylog.DailyLog
	CreateErr error
	UpdateErr error
}

func NewMemoryDailyLogStore() *MemoryDailyLogStore {
	return &MemoryDailyLogStore{logs: make(map[uuid.UUID]*dailylog.DailyLog)}
}

func copyLog(l *dailylog.DailyLog) *dailylog.DailyLog {
	dup := *l
	dup.CompletedSubtasks = append([]string(nil), l.CompletedSubtasks...)
	return &dup
}

func (s *MemoryDailyLogStore) List(ctx context.Context, userID string, sortSpec string) ([]*dailylog.DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*dailylog.DailyLog
	for _, l := range s.logs {
		if l.UserID == userID {
			out = append(out, copyLog(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *MemoryDailyLogStore) Filter(ctx context.Context, f DailyLogFilter) ([]*dailylog.DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*dailylog.DailyLog
	for _, l := range s.logs {
		if l.UserID != f.UserID {
			continue
		}
		if f.ChallengeID != nil && l.ChallengeID != *f.ChallengeID {
			continue
		}
		if f.Date != nil && l.Date != *f.Date {
			continue
		}
		if f.Completed != nil && l.Completed != *f.Completed {
			continue
		}
		out = append(out, copyLog(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *MemoryDailyLogStore) Create(ctx context.Context, l *dailylog.DailyLog) (*dailylog.DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	for _, existing := range s.logs {
		if existing.ChallengeID == l.ChallengeID && existing.Date == l.Date {
			return nil, fmt.Errorf("duplicate daily log for %s on %s", l.ChallengeID, l.Date)
		}
	}
	dup := copyLog(l)
	if dup.ID == uuid.Nil {
		dup.ID = uuid.New()
	}
	if dup.CompletedSubtasks == nil {
		dup.CompletedSubtasks = []string{}
	}
	dup.CreatedAt = time.Now()
	dup.UpdatedAt = dup.CreatedAt
	s.logs[dup.ID] = dup
	return copyLog(dup), nil
}

func (s *MemoryDailyLogStore) Update(ctx context.Context, id uuid.UUID, p DailyLogPatch) (*dailylog.DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	l, ok := s.logs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Completed != nil {
		l.Completed = *p.Completed
	}
	if p.CompletedSubtasks != nil {
		l.CompletedSubtasks = append([]string(nil), (*p.CompletedSubtasks)...)
	}
	l.UpdatedAt = time.Now()
	return copyLog(l), nil
}

func (s *MemoryDailyLogStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.logs[id]; !ok {
		return ErrNotFound
	}
	delete(s.logs, id)
	return nil
}

// MemoryCategoryStore is the in-memory CategoryStore counterpart.
type MemoryCategoryStore struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*category.Category
}

func NewMemoryCategoryStore() *MemoryCategoryStore {
	return &MemoryCategoryStore{categories: make(map[uuid.UUID]*category.Category)}
}

func (s *MemoryCategoryStore) List(ctx context.Context, userID string, sortSpec string) ([]*category.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*category.Category
	for _, c := range s.categories {
		if c.UserID == userID {
			dup := *c
			out = append(out, &dup)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryCategoryStore) Filter(ctx context.Context, f CategoryFilter) ([]*category.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*category.Category
	for _, c := range s.categories {
		if c.UserID != f.UserID {
			continue
		}
		if f.ID != nil && c.ID != *f.ID {
			continue
		}
		if f.Name != nil && c.Name != *f.Name {
			continue
		}
		dup := *c
		out = append(out, &dup)
	}
	return out, nil
}

func (s *MemoryCategoryStore) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dup := *c
	if dup.ID == uuid.Nil {
		dup.ID = uuid.New()
	}
	dup.CreatedAt = time.Now()
	s.categories[dup.ID] = &dup
	out := dup
	return &out, nil
}

func (s *MemoryCategoryStore) Update(ctx context.Context, id uuid.UUID, p CategoryPatch) (*category.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	dup := *c
	return &dup, nil
}

func (s *MemoryCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

// MemorySettingsStore is the in-memory SettingsStore counterpart.
type MemorySettingsStore struct {
	mu       sync.Mutex
	settings map[uuid.UUID]*settings.UserSettings
}

func NewMemorySettingsStore() *MemorySettingsStore {
	return &MemorySettingsStore{settings: make(map[uuid.UUID]*settings.UserSettings)}
}

func (s *MemorySettingsStore) List(ctx context.Context, userID string) ([]*settings.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*settings.UserSettings
	for _, u := range s.settings {
		if u.UserID == userID {
			dup := *u
			out = append(out, &dup)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemorySettingsStore) Create(ctx context.Context, u *settings.UserSettings) (*settings.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dup := *u
	if dup.ID == uuid.Nil {
		dup.ID = uuid.New()
	}
	dup.CreatedAt = time.Now()
	dup.UpdatedAt = dup.CreatedAt
	s.settings[dup.ID] = &dup
	out := dup
	return &out, nil
}

func (s *MemorySettingsStore) Update(ctx context.Context, id uuid.UUID, p SettingsPatch) (*settings.UserSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.settings[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.DefaultReminderTime != nil {
		u.DefaultReminderTime = *p.DefaultReminderTime
	}
	if p.Theme != nil {
		u.Theme = *p.Theme
	}
	u.UpdatedAt = time.Now()
	dup := *u
	return &dup, nil
}

func (s *MemorySettingsStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.settings[id]; !ok {
		return ErrNotFound
	}
	delete(s.settings, id)
	return nil
}
