package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resoluteAPI/internal/types/challenge"
	"resoluteAPI/internal/types/dailylog"
)

func weekChallenge() *challenge.Challenge {
	return &challenge.Challenge{
		Name:      "Meditate",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-07",
	}
}

func TestSummarizeScenario(t *testing.T) {
	// 7-day challenge, one completed log on day 3.
	logs := []*dailylog.DailyLog{
		{Date: "2024-01-03", Completed: true},
	}
	s, err := Summarize(weekChallenge(), logs, date(t, "2024-01-04"))
	require.NoError(t, err)

	assert.Equal(t, 7, s.TotalDays)
	assert.Equal(t, 1, s.CompletedDays)
	assert.Equal(t, 14, s.ProgressPercent)
	assert.True(t, s.IsActive)
	assert.Equal(t, 4, s.DaysRemaining)
}

func TestSummarizeCountsOutOfRangeLogs(t *testing.T) {
	// A back-filled log outside the window still counts.
	logs := []*dailylog.DailyLog{
		{Date: "2024-01-03", Completed: true},
		{Date: "2024-02-15", Completed: true},
		{Date: "2024-01-04", Completed: false},
	}
	s, err := Summarize(weekChallenge(), logs, date(t, "2024-01-05"))
	require.NoError(t, err)

	assert.Equal(t, 2, s.CompletedDays)
	assert.Equal(t, 29, s.ProgressPercent)
}

func TestSummarizeLifecycle(t *testing.T) {
	t.Run("before start", func(t *testing.T) {
		s, err := Summarize(weekChallenge(), nil, date(t, "2023-12-30"))
		require.NoError(t, err)
		assert.False(t, s.HasStarted)
		assert.False(t, s.IsActive)
		assert.False(t, s.HasEnded)
		assert.Equal(t, 9, s.DaysRemaining)
	})

	t.Run("after end", func(t *testing.T) {
		s, err := Summarize(weekChallenge(), nil, date(t, "2024-01-08"))
		require.NoError(t, err)
		assert.True(t, s.HasEnded)
		assert.False(t, s.IsActive)
		assert.Equal(t, 0, s.DaysRemaining)
	})

	t.Run("last day", func(t *testing.T) {
		s, err := Summarize(weekChallenge(), nil, date(t, "2024-01-07"))
		require.NoError(t, err)
		assert.True(t, s.IsActive)
		assert.Equal(t, 1, s.DaysRemaining)
	})
}

func TestSummarizeSingleDayChallenge(t *testing.T) {
	ch := &challenge.Challenge{StartDate: "2024-03-01", EndDate: "2024-03-01"}
	s, err := Summarize(ch, nil, date(t, "2024-03-01"))
	require.NoError(t, err)
	assert.Equal(t, 1, s.TotalDays)
	assert.Equal(t, 0, s.ProgressPercent)
}

func TestSummarizeRejectsBadDates(t *testing.T) {
	ch := &challenge.Challenge{StartDate: "not-a-date", EndDate: "2024-01-07"}
	_, err := Summarize(ch, nil, date(t, "2024-01-01"))
	assert.Error(t, err)
}

func TestCalendarDays(t *testing.T) {
	logs := []*dailylog.DailyLog{
		{Date: "2024-01-01", Completed: true},
		{Date: "2024-01-02", Completed: false},
	}
	cells, err := CalendarDays(weekChallenge(), logs, date(t, "2024-01-03"))
	require.NoError(t, err)
	require.Len(t, cells, 7)

	assert.Equal(t, DayCell{Date: "2024-01-01", Status: StatusCompleted}, cells[0])
	assert.Equal(t, DayCell{Date: "2024-01-02", Status: StatusMissed}, cells[1])
	assert.Equal(t, DayCell{Date: "2024-01-03", Status: StatusToday}, cells[2])
	for _, cell := range cells[3:] {
		assert.Equal(t, StatusFuture, cell.Status, cell.Date)
	}
}
