package progress

import (
	"fmt"
	"time"

	"resoluteAPI/internal/types/dailylog"
)

// DateLayout is the wire format for all challenge and log dates.
const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Midnight strips the time-of-day component so comparisons are date-only.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b))
}

// DaysBetweenInclusive returns end - start in whole days plus one, counting
// both endpoints. Callers must not invoke it with end before start; sites
// deriving a duration from user-edited dates clamp the result to >= 1.
func DaysBetweenInclusive(start, end time.Time) int {
	return int(Midnight(end).Sub(Midnight(start)).Hours()/24) + 1
}

// IsWithinRange reports start <= d <= end, date-only.
func IsWithinRange(d, start, end time.Time) bool {
	d = Midnight(d)
	return !d.Before(Midnight(start)) && !d.After(Midnight(end))
}

// EnumerateDays returns every day from start through end inclusive, ascending.
func EnumerateDays(start, end time.Time) []time.Time {
	start, end = Midnight(start), Midnight(end)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, DaysBetweenInclusive(start, end))
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

type DayStatus string

const (
	StatusCompleted DayStatus = "completed"
	StatusToday     DayStatus = "today"
	StatusMissed    DayStatus = "missed"
	StatusFuture    DayStatus = "future"
)

// ClassifyDay resolves a calendar cell's status. A completed log wins over
// any date-relative classification, so a back-filled future log still reads
// as completed.
func ClassifyDay(date, today time.Time, log *dailylog.DailyLog) DayStatus {
	if log != nil && log.Completed {
		return StatusCompleted
	}
	date, today = Midnight(date), Midnight(today)
	if date.After(today) {
		return StatusFuture
	}
	if date.Equal(today) {
		return StatusToday
	}
	return StatusMissed
}
