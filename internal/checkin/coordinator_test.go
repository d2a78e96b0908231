package checkin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resoluteAPI/internal/progress"
	"resoluteAPI/internal/types/challenge"
	"resoluteAPI/store"
)

const testUser = "user_2abc"

func newFixture(t *testing.T, subtasks ...challenge.Subtask) (*Coordinator, *store.MemoryChallengeStore, *store.MemoryDailyLogStore, *challenge.Challenge) {
	t.Helper()
	challenges := store.NewMemoryChallengeStore()
	logs := store.NewMemoryDailyLogStore()

	ch, err := challenges.Create(context.Background(), &challenge.Challenge{
		UserID:    testUser,
		Name:      "Meditate",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-21",
		Status:    challenge.StatusActive,
		Subtasks:  subtasks,
	})
	require.NoError(t, err)

	return NewCoordinator(challenges, logs), challenges, logs, ch
}

func TestToggleCompleteCreatesLogLazily(t *testing.T) {
	coord, _, logs, ch := newFixture(t)
	ctx := context.Background()

	res, err := coord.ToggleComplete(ctx, ch, "2024-01-01", true)
	require.NoError(t, err)

	assert.True(t, res.Log.Completed)
	assert.Equal(t, "2024-01-01", res.Log.Date)
	assert.Empty(t, res.Log.CompletedSubtasks)

	all, err := logs.List(ctx, testUser, "")
	require.NoError(t, err)
	assert.Len(t, all, 1, "exactly one log per (challenge, date)")
}

func TestToggleCompleteStreakSideEffect(t *testing.T) {
	coord, challenges, _, ch := newFixture(t)
	ctx := context.Background()

	res, err := coord.ToggleComplete(ctx, ch, "2024-01-01", true)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Challenge.CurrentStreak)
	assert.Equal(t, 1, res.Challenge.BestStreak)

	res, err = coord.ToggleComplete(ctx, res.Challenge, "2024-01-02", true)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Challenge.CurrentStreak)
	assert.Equal(t, 2, res.Challenge.BestStreak)

	// Undo decrements current, best stays.
	res, err = coord.ToggleComplete(ctx, res.Challenge, "2024-01-02", false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Challenge.CurrentStreak)
	assert.Equal(t, 2, res.Challenge.BestStreak)

	stored, err := challenges.Filter(ctx, store.ChallengeFilter{UserID: testUser, ID: &ch.ID})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 1, stored[0].CurrentStreak)
	assert.Equal(t, 2, stored[0].BestStreak)
}

func TestToggleCompleteUndoAtZero(t *testing.T) {
	coord, _, _, ch := newFixture(t)

	res, err := coord.ToggleComplete(context.Background(), ch, "2024-01-01", false)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Challenge.CurrentStreak)
	assert.Equal(t, 0, res.Challenge.BestStreak)
	assert.False(t, res.Log.Completed)
}

func TestSubtaskGateBlocksCompletion(t *testing.T) {
	coord, _, logs, ch := newFixture(t,
		challenge.Subtask{ID: "a", Name: "Sit down"},
		challenge.Subtask{ID: "b", Name: "Breathe"},
	)
	ctx := context.Background()

	_, err := coord.ToggleComplete(ctx, ch, "2024-01-01", true)
	assert.ErrorIs(t, err, ErrSubtasksOutstanding)

	all, _ := logs.List(ctx, testUser, "")
	assert.Empty(t, all, "a rejected completion is a no-op")

	// One of two subtasks checked: still gated.
	_, err = coord.ToggleSubtask(ctx, ch, "2024-01-01", "a")
	require.NoError(t, err)
	_, err = coord.ToggleComplete(ctx, ch, "2024-01-01", true)
	assert.ErrorIs(t, err, ErrSubtasksOutstanding)

	// All checked: the gate opens.
	_, err = coord.ToggleSubtask(ctx, ch, "2024-01-01", "b")
	require.NoError(t, err)
	res, err := coord.ToggleComplete(ctx, ch, "2024-01-01", true)
	require.NoError(t, err)
	assert.True(t, res.Log.Completed)
	assert.Equal(t, 1, res.Challenge.CurrentStreak)
}

func TestUndoIsNeverGated(t *testing.T) {
	coord, _, _, ch := newFixture(t,
		challenge.Subtask{ID: "a", Name: "Sit down"},
	)
	ctx := context.Background()

	_, err := coord.ToggleSubtask(ctx, ch, "2024-01-01", "a")
	require.NoError(t, err)
	res, err := coord.ToggleComplete(ctx, ch, "2024-01-01", true)
	require.NoError(t, err)

	// Uncheck the subtask, then undo the day: no guard applies.
	_, err = coord.ToggleSubtask(ctx, ch, "2024-01-01", "a")
	require.NoError(t, err)
	res, err = coord.ToggleComplete(ctx, res.Challenge, "2024-01-01", false)
	require.NoError(t, err)
	assert.False(t, res.Log.Completed)
}

func TestToggleSubtaskIsIdempotentPair(t *testing.T) {
	coord, _, _, ch := newFixture(t,
		challenge.Subtask{ID: "a", Name: "Sit down"},
		challenge.Subtask{ID: "b", Name: "Breathe"},
	)
	ctx := context.Background()

	res, err := coord.ToggleSubtask(ctx, ch, "2024-01-01", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, res.Log.CompletedSubtasks)
	assert.False(t, res.Log.Completed, "subtask toggles never flip completion")

	// Toggling twice returns to the original state.
	res, err = coord.ToggleSubtask(ctx, ch, "2024-01-01", "a")
	require.NoError(t, err)
	assert.Empty(t, res.Log.CompletedSubtasks)
}

func TestToggleSubtaskDoesNotAutoComplete(t *testing.T) {
	coord, _, _, ch := newFixture(t,
		challenge.Subtask{ID: "a", Name: "Sit down"},
	)
	ctx := context.Background()

	// Checking the last subtask unblocks the main toggle but does not fire it.
	res, err := coord.ToggleSubtask(ctx, ch, "2024-01-01", "a")
	require.NoError(t, err)
	assert.False(t, res.Log.Completed)
	assert.Equal(t, 0, res.Challenge.CurrentStreak)
}

func TestToggleUnknownSubtask(t *testing.T) {
	coord, _, logs, ch := newFixture(t,
		challenge.Subtask{ID: "a", Name: "Sit down"},
	)
	ctx := context.Background()

	_, err := coord.ToggleSubtask(ctx, ch, "2024-01-01", "zzz")
	assert.ErrorIs(t, err, ErrUnknownSubtask)

	all, _ := logs.List(ctx, testUser, "")
	assert.Empty(t, all)
}

func TestTwoPhaseFailureIsDetectable(t *testing.T) {
	coord, challenges, logs, ch := newFixture(t)
	ctx := context.Background()

	boom := errors.New("connection reset")
	challenges.UpdateErr = boom

	_, err := coord.ToggleComplete(ctx, ch, "2024-01-01", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "commit streak", "the failing phase is named")

	// Phase 1 succeeded: the log exists even though the streak commit failed.
	all, _ := logs.List(ctx, testUser, "")
	assert.Len(t, all, 1)

	logs.CreateErr = boom
	challenges.UpdateErr = nil
	_, err = coord.ToggleComplete(ctx, ch, "2024-01-05", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage daily log")
}

func TestHistoryStrategySwap(t *testing.T) {
	coord, _, _, ch := newFixture(t)
	ctx := context.Background()

	asOf, err := progress.ParseDate("2024-01-01")
	require.NoError(t, err)

	// With a history-based strategy the counters come from the log set, not
	// the cached values.
	ch.CurrentStreak = 99
	ch.BestStreak = 99
	coord.WithStrategy(progress.HistoryStreak{AsOf: asOf})

	res, err := coord.ToggleComplete(ctx, ch, "2024-01-01", true)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Challenge.CurrentStreak)
}
