package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resoluteAPI/internal/types/challenge"
	"resoluteAPI/internal/types/dailylog"
	"resoluteAPI/store"
)

const testUser = "user_2abc"

func newChallengeService() (*ChallengeService, *store.MemoryChallengeStore, *store.MemoryDailyLogStore) {
	challenges := store.NewMemoryChallengeStore()
	logs := store.NewMemoryDailyLogStore()
	return NewChallengeService(challenges, logs), challenges, logs
}

func TestCreateChallengeDefaults(t *testing.T) {
	svc, _, _ := newChallengeService()

	created, err := svc.CreateChallenge(context.Background(), testUser, &challenge.CreateChallengeRequest{
		Name:      "Morning Journaling",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-07",
		Subtasks: []challenge.Subtask{
			{Name: "Write 3 things you're grateful for"},
			{Name: "Set intention for the day"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, challenge.IconTarget, created.Icon)
	assert.Equal(t, challenge.FrequencyDaily, created.Frequency)
	assert.Equal(t, challenge.StatusActive, created.Status)
	assert.Equal(t, 0, created.CurrentStreak)
	assert.Equal(t, 0, created.BestStreak)
	assert.Equal(t, "09:00", created.ReminderTime)
	require.Len(t, created.Subtasks, 2)
	assert.NotEqual(t, created.Subtasks[0].ID, created.Subtasks[1].ID)
}

func TestCreateChallengeClampsInvertedRange(t *testing.T) {
	svc, _, _ := newChallengeService()

	created, err := svc.CreateChallenge(context.Background(), testUser, &challenge.CreateChallengeRequest{
		Name:      "Backwards",
		StartDate: "2024-01-10",
		EndDate:   "2024-01-03",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", created.StartDate)
	assert.Equal(t, "2024-01-10", created.EndDate, "duration clamps to one day")
}

func TestCreateChallengeValidation(t *testing.T) {
	svc, _, _ := newChallengeService()
	ctx := context.Background()

	_, err := svc.CreateChallenge(ctx, testUser, &challenge.CreateChallengeRequest{
		StartDate: "2024-01-01",
	})
	assert.ErrorIs(t, err, ErrInvalid, "missing name")

	_, err = svc.CreateChallenge(ctx, testUser, &challenge.CreateChallengeRequest{
		Name:      "X",
		StartDate: "01/01/2024",
	})
	assert.ErrorIs(t, err, ErrInvalid, "bad date format")

	_, err = svc.CreateChallenge(ctx, testUser, &challenge.CreateChallengeRequest{
		Name:      "X",
		StartDate: "2024-01-01",
		Icon:      "sparkles",
	})
	assert.ErrorIs(t, err, ErrInvalid, "unknown icon")

	_, err = svc.CreateChallenge(ctx, testUser, &challenge.CreateChallengeRequest{
		Name:      "X",
		StartDate: "2024-01-01",
		Subtasks: []challenge.Subtask{
			{ID: "1", Name: "a"},
			{ID: "1", Name: "b"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalid, "duplicate subtask ids")
}

func TestGetChallengeNotFound(t *testing.T) {
	svc, _, _ := newChallengeService()

	_, err := svc.GetChallenge(context.Background(), testUser, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetChallengeScopedToUser(t *testing.T) {
	svc, _, _ := newChallengeService()
	ctx := context.Background()

	created, err := svc.CreateChallenge(ctx, testUser, &challenge.CreateChallengeRequest{
		Name:      "Mine",
		StartDate: "2024-01-01",
	})
	require.NoError(t, err)

	_, err = svc.GetChallenge(ctx, "user_other", created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteChallengeKeepsLogs(t *testing.T) {
	svc, _, logs := newChallengeService()
	ctx := context.Background()

	created, err := svc.CreateChallenge(ctx, testUser, &challenge.CreateChallengeRequest{
		Name:      "Doomed",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-07",
	})
	require.NoError(t, err)

	_, err = logs.Create(ctx, &dailylog.DailyLog{
		UserID:      testUser,
		ChallengeID: created.ID,
		Date:        "2024-01-01",
		Completed:   true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteChallenge(ctx, testUser, created.ID))

	_, err = svc.GetChallenge(ctx, testUser, created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// No cascade: the orphaned log survives.
	remaining, err := logs.List(ctx, testUser, "")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestGetDetail(t *testing.T) {
	svc, _, logs := newChallengeService()
	ctx := context.Background()

	created, err := svc.CreateChallenge(ctx, testUser, &challenge.CreateChallengeRequest{
		Name:      "Meditate",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-07",
	})
	require.NoError(t, err)

	_, err = logs.Create(ctx, &dailylog.DailyLog{
		UserID:      testUser,
		ChallengeID: created.ID,
		Date:        "2024-01-03",
		Completed:   true,
	})
	require.NoError(t, err)

	today, _ := time.Parse("2006-01-02", "2024-01-03")
	detail, err := svc.GetDetail(ctx, testUser, created.ID, today)
	require.NoError(t, err)

	assert.Equal(t, 7, detail.Summary.TotalDays)
	assert.Equal(t, 1, detail.Summary.CompletedDays)
	assert.Equal(t, 14, detail.Summary.ProgressPercent)
	assert.Len(t, detail.Calendar, 7)
	require.NotNil(t, detail.TodayLog)
	assert.True(t, detail.TodayLog.Completed)
}

func TestDashboard(t *testing.T) {
	svc, challenges, logs := newChallengeService()
	ctx := context.Background()
	today, _ := time.Parse("2006-01-02", "2024-01-05")

	a, err := svc.CreateChallenge(ctx, testUser, &challenge.CreateChallengeRequest{
		Name: "A", StartDate: "2024-01-01", EndDate: "2024-01-21",
	})
	require.NoError(t, err)
	b, err := svc.CreateChallenge(ctx, testUser, &challenge.CreateChallengeRequest{
		Name: "B", StartDate: "2024-01-01", EndDate: "2024-01-21",
	})
	require.NoError(t, err)

	three, seven := 3, 7
	completedStatus := challenge.StatusCompleted
	_, err = challenges.Update(ctx, a.ID, store.ChallengePatch{CurrentStreak: &three})
	require.NoError(t, err)
	_, err = challenges.Update(ctx, b.ID, store.ChallengePatch{CurrentStreak: &seven, Status: &completedStatus})
	require.NoError(t, err)

	_, err = logs.Create(ctx, &dailylog.DailyLog{
		UserID: testUser, ChallengeID: a.ID, Date: "2024-01-05", Completed: true,
	})
	require.NoError(t, err)
	_, err = logs.Create(ctx, &dailylog.DailyLog{
		UserID: testUser, ChallengeID: b.ID, Date: "2024-01-04", Completed: true,
	})
	require.NoError(t, err)

	stats, err := svc.Dashboard(ctx, testUser, today)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ActiveChallenges)
	assert.Equal(t, 1, stats.CompletedChallenges)
	assert.Equal(t, 10, stats.TotalCurrentStreak)
	assert.Equal(t, 1, stats.CompletedToday, "only today's completed logs count")
}

func TestCheckInThroughService(t *testing.T) {
	svc, _, _ := newChallengeService()
	ctx := context.Background()
	today, _ := time.Parse("2006-01-02", "2024-01-02")

	created, err := svc.CreateChallenge(ctx, testUser, &challenge.CreateChallengeRequest{
		Name: "Meditate", StartDate: "2024-01-01", EndDate: "2024-01-21",
	})
	require.NoError(t, err)

	res, err := svc.CheckIn(ctx, testUser, created.ID, true, today)
	require.NoError(t, err)
	assert.True(t, res.Log.Completed)
	assert.Equal(t, "2024-01-02", res.Log.Date)
	assert.Equal(t, 1, res.Challenge.CurrentStreak)
}
