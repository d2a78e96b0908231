package progress

import (
	"fmt"
	"math"
	"time"

	"resoluteAPI/internal/types/challenge"
	"resoluteAPI/internal/types/dailylog"
)

// Summary is the derived progress view of one challenge.
type Summary struct {
	TotalDays       int  `json:"total_days"`
	CompletedDays   int  `json:"completed_days"`
	ProgressPercent int  `json:"progress_percent"`
	DaysRemaining   int  `json:"days_remaining"`
	IsActive        bool `json:"is_active"`
	HasStarted      bool `json:"has_started"`
	HasEnded        bool `json:"has_ended"`
}

// Summarize computes the challenge's totals as of today. CompletedDays counts
// every completed log, whether or not its date falls inside the challenge
// window, so a back-filled out-of-range log still counts.
func Summarize(ch *challenge.Challenge, logs []*dailylog.DailyLog, today time.Time) (*Summary, error) {
	start, err := ParseDate(ch.StartDate)
	if err != nil {
		return nil, fmt.Errorf("challenge start date: %w", err)
	}
	end, err := ParseDate(ch.EndDate)
	if err != nil {
		return nil, fmt.Errorf("challenge end date: %w", err)
	}
	today = Midnight(today)

	total := DaysBetweenInclusive(start, end)
	if total < 1 {
		total = 1
	}

	completed := 0
	for _, l := range logs {
		if l.Completed {
			completed++
		}
	}

	s := &Summary{
		TotalDays:       total,
		CompletedDays:   completed,
		ProgressPercent: int(math.Round(100 * float64(completed) / float64(total))),
		HasStarted:      !today.Before(start),
		HasEnded:        today.After(end),
	}
	s.IsActive = s.HasStarted && !s.HasEnded
	if !s.HasEnded {
		if remaining := DaysBetweenInclusive(today, end); remaining > 0 {
			s.DaysRemaining = remaining
		}
	}
	return s, nil
}

// DayCell is one calendar cell for the progress grid.
type DayCell struct {
	Date   string    `json:"date"`
	Status DayStatus `json:"status"`
}

// CalendarDays classifies every day of the challenge window for rendering.
func CalendarDays(ch *challenge.Challenge, logs []*dailylog.DailyLog, today time.Time) ([]DayCell, error) {
	start, err := ParseDate(ch.StartDate)
	if err != nil {
		return nil, fmt.Errorf("challenge start date: %w", err)
	}
	end, err := ParseDate(ch.EndDate)
	if err != nil {
		return nil, fmt.Errorf("challenge end date: %w", err)
	}

	byDate := make(map[string]*dailylog.DailyLog, len(logs))
	for _, l := range logs {
		byDate[l.Date] = l
	}

	days := EnumerateDays(start, end)
	cells := make([]DayCell, 0, len(days))
	for _, d := range days {
		key := FormatDate(d)
		cells = append(cells, DayCell{
			Date:   key,
			Status: ClassifyDay(d, today, byDate[key]),
		})
	}
	return cells, nil
}
