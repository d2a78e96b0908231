package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resoluteAPI/internal/types/challenge"
	"resoluteAPI/internal/types/dailylog"
)

const testUser = "user_2abc"

func TestMemoryChallengeStoreCRUD(t *testing.T) {
	s := NewMemoryChallengeStore()
	ctx := context.Background()

	created, err := s.Create(ctx, &challenge.Challenge{
		UserID:    testUser,
		Name:      "Meditate",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-21",
		Status:    challenge.StatusActive,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID, "store assigns the id")
	assert.False(t, created.CreatedAt.IsZero())

	name := "Meditate Daily"
	updated, err := s.Update(ctx, created.ID, ChallengePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Meditate Daily", updated.Name)
	assert.Equal(t, "2024-01-01", updated.StartDate, "unpatched fields untouched")

	active := challenge.StatusActive
	results, err := s.Filter(ctx, ChallengeFilter{UserID: testUser, Status: &active})
	require.NoError(t, err)
	assert.Len(t, results, 1)

	_, err = s.Update(ctx, uuid.New(), ChallengePatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, created.ID))
	assert.ErrorIs(t, s.Delete(ctx, created.ID), ErrNotFound)
}

func TestMemoryChallengeStoreIsolatesCopies(t *testing.T) {
	s := NewMemoryChallengeStore()
	ctx := context.Background()

	created, err := s.Create(ctx, &challenge.Challenge{
		UserID:   testUser,
		Name:     "Meditate",
		Subtasks: []challenge.Subtask{{ID: "1", Name: "Sit"}},
	})
	require.NoError(t, err)

	// Mutating a returned record must not leak into the store.
	created.Subtasks[0].Name = "changed"
	fetched, err := s.Filter(ctx, ChallengeFilter{UserID: testUser, ID: &created.ID})
	require.NoError(t, err)
	require.Len(t, fetched, 1)
	assert.Equal(t, "Sit", fetched[0].Subtasks[0].Name)
}

func TestMemoryDailyLogStoreUniquePerDay(t *testing.T) {
	s := NewMemoryDailyLogStore()
	ctx := context.Background()
	challengeID := uuid.New()

	_, err := s.Create(ctx, &dailylog.DailyLog{
		UserID:      testUser,
		ChallengeID: challengeID,
		Date:        "2024-01-01",
	})
	require.NoError(t, err)

	_, err = s.Create(ctx, &dailylog.DailyLog{
		UserID:      testUser,
		ChallengeID: challengeID,
		Date:        "2024-01-01",
	})
	assert.Error(t, err, "second log for the same (challenge, date) is refused")

	_, err = s.Create(ctx, &dailylog.DailyLog{
		UserID:      testUser,
		ChallengeID: challengeID,
		Date:        "2024-01-02",
	})
	assert.NoError(t, err)
}

func TestMemoryDailyLogStoreFilter(t *testing.T) {
	s := NewMemoryDailyLogStore()
	ctx := context.Background()
	chA, chB := uuid.New(), uuid.New()

	seed := []struct {
		ch        uuid.UUID
		date      string
		completed bool
	}{
		{chA, "2024-01-01", true},
		{chA, "2024-01-02", false},
		{chB, "2024-01-01", true},
	}
	for _, row := range seed {
		_, err := s.Create(ctx, &dailylog.DailyLog{
			UserID:      testUser,
			ChallengeID: row.ch,
			Date:        row.date,
			Completed:   row.completed,
		})
		require.NoError(t, err)
	}

	byChallenge, err := s.Filter(ctx, DailyLogFilter{UserID: testUser, ChallengeID: &chA})
	require.NoError(t, err)
	assert.Len(t, byChallenge, 2)
	assert.Equal(t, "2024-01-01", byChallenge[0].Date, "ascending by date")

	day := "2024-01-01"
	completed := true
	byDay, err := s.Filter(ctx, DailyLogFilter{UserID: testUser, Date: &day, Completed: &completed})
	require.NoError(t, err)
	assert.Len(t, byDay, 2)

	other, err := s.Filter(ctx, DailyLogFilter{UserID: "user_other"})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMemoryDailyLogStoreUpdate(t *testing.T) {
	s := NewMemoryDailyLogStore()
	ctx := context.Background()

	created, err := s.Create(ctx, &dailylog.DailyLog{
		UserID:      testUser,
		ChallengeID: uuid.New(),
		Date:        "2024-01-01",
	})
	require.NoError(t, err)
	assert.NotNil(t, created.CompletedSubtasks)

	done := true
	subtasks := []string{"1", "2"}
	updated, err := s.Update(ctx, created.ID, DailyLogPatch{Completed: &done, CompletedSubtasks: &subtasks})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, []string{"1", "2"}, updated.CompletedSubtasks)

	_, err = s.Update(ctx, uuid.New(), DailyLogPatch{Completed: &done})
	assert.ErrorIs(t, err, ErrNotFound)
}
