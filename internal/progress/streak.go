package progress

import (
	"sort"
	"time"

	"resoluteAPI/internal/types/dailylog"
)

// Streak holds the denormalized counters cached on a challenge record.
type Streak struct {
	Current int `json:"current_streak"`
	Best    int `json:"best_streak"`
}

// StreakStrategy decides how a check-in toggle moves the streak counters.
// The coordinator calls exactly one transition per toggle, keyed on the
// direction of the change.
type StreakStrategy interface {
	// Complete is applied when a day is marked complete.
	Complete(s Streak) Streak
	// Undo is applied when a completed day is marked incomplete again.
	Undo(s Streak) Streak
}

// TransactionalStreak is the increment/decrement model: counters are mutated
// at check-in time and never recomputed from history. It is order-dependent
// and assumes chronological check-ins with no back-filling. After either
// transition, Best >= Current >= 0 holds.
type TransactionalStreak struct{}

func (TransactionalStreak) Complete(s Streak) Streak {
	s.Current++
	if s.Current > s.Best {
		s.Best = s.Current
	}
	return s
}

func (TransactionalStreak) Undo(s Streak) Streak {
	if s.Current > 0 {
		s.Current--
	}
	return s
}

// HistoryStreak recomputes both counters from the full log history instead of
// trusting the stored values. It is the self-healing alternative to
// TransactionalStreak and is not wired as the default.
type HistoryStreak struct {
	Logs []*dailylog.DailyLog
	AsOf time.Time
}

func (h HistoryStreak) Complete(Streak) Streak { return RecomputeStreak(h.Logs, h.AsOf) }
func (h HistoryStreak) Undo(Streak) Streak     { return RecomputeStreak(h.Logs, h.AsOf) }

// RecomputeStreak derives {current, best} from the ordered log set as of the
// given date. Best is the longest run of consecutive completed days. Current
// is the run ending on asOf, or on the day before when asOf itself has no
// completed log yet.
func RecomputeStreak(logs []*dailylog.DailyLog, asOf time.Time) Streak {
	completed := make([]time.Time, 0, len(logs))
	for _, l := range logs {
		if !l.Completed {
			continue
		}
		d, err := ParseDate(l.Date)
		if err != nil {
			continue
		}
		completed = append(completed, Midnight(d))
	}
	sort.Slice(completed, func(i, j int) bool { return completed[i].Before(completed[j]) })

	var s Streak
	run := 0
	runEnd := time.Time{}
	for i, d := range completed {
		if i > 0 && d.Equal(completed[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		runEnd = d
		if run > s.Best {
			s.Best = run
		}
	}

	asOf = Midnight(asOf)
	if run > 0 && (runEnd.Equal(asOf) || runEnd.Equal(asOf.AddDate(0, 0, -1))) {
		s.Current = run
	}
	return s
}
