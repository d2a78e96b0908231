// Package checkin owns the state transitions for a challenge's daily
// completion record: the subtask gate, the completion toggle with its streak
// side effect, and subtask toggles.
package checkin

import (
	"context"
	"errors"
	"fmt"

	"resoluteAPI/internal/progress"
	"resoluteAPI/internal/types/challenge"
	"resoluteAPI/internal/types/dailylog"
	"resoluteAPI/store"
)

var (
	// ErrSubtasksOutstanding rejects a completion while required subtasks
	// remain unchecked. The transition is a no-op, not a fault.
	ErrSubtasksOutstanding = errors.New("all subtasks must be completed first")
	// ErrUnknownSubtask rejects a toggle for a subtask id the challenge does
	// not declare.
	ErrUnknownSubtask = errors.New("unknown subtask")
)

type Coordinator struct {
	challenges store.ChallengeStore
	logs       store.DailyLogStore
	streak     progress.StreakStrategy
}

// NewCoordinator wires the coordinator with the transactional streak model.
// Pass a different strategy via WithStrategy to change how counters move.
func NewCoordinator(challenges store.ChallengeStore, logs store.DailyLogStore) *Coordinator {
	return &Coordinator{
		challenges: challenges,
		logs:       logs,
		streak:     progress.TransactionalStreak{},
	}
}

func (c *Coordinator) WithStrategy(s progress.StreakStrategy) *Coordinator {
	c.streak = s
	return c
}

// Result reports the state after a toggle.
type Result struct {
	Log       *dailylog.DailyLog   `json:"log"`
	Challenge *challenge.Challenge `json:"challenge"`
}

func (c *Coordinator) findLog(ctx context.Context, ch *challenge.Challenge, date string) (*dailylog.DailyLog, error) {
	logs, err := c.logs.Filter(ctx, store.DailyLogFilter{
		UserID:      ch.UserID,
		ChallengeID: &ch.ID,
		Date:        &date,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to look up daily log: %w", err)
	}
	if len(logs) == 0 {
		return nil, nil
	}
	return logs[0], nil
}

func allSubtasksChecked(ch *challenge.Challenge, log *dailylog.DailyLog) bool {
	for _, s := range ch.Subtasks {
		if log == nil || !log.HasSubtask(s.ID) {
			return false
		}
	}
	return true
}

// ToggleComplete flips the day's completion flag and applies the streak
// transition exactly once, keyed on the direction of change.
//
// The mutation is two-phase: the log upsert is staged first, then the streak
// counters are committed onto the challenge. A failure between the phases
// leaves the two records inconsistent; each phase wraps its error so the
// caller can tell which one gave out.
func (c *Coordinator) ToggleComplete(ctx context.Context, ch *challenge.Challenge, date string, completed bool) (*Result, error) {
	log, err := c.findLog(ctx, ch, date)
	if err != nil {
		return nil, err
	}

	alreadyComplete := log != nil && log.Completed
	if completed && len(ch.Subtasks) > 0 && !allSubtasksChecked(ch, log) && !alreadyComplete {
		return nil, ErrSubtasksOutstanding
	}

	// Phase 1: stage the log.
	if log != nil {
		log, err = c.logs.Update(ctx, log.ID, store.DailyLogPatch{Completed: &completed})
	} else {
		log, err = c.logs.Create(ctx, &dailylog.DailyLog{
			UserID:            ch.UserID,
			ChallengeID:       ch.ID,
			Date:              date,
			Completed:         completed,
			CompletedSubtasks: []string{},
		})
	}
	if err != nil {
		return nil, fmt.Errorf("stage daily log: %w", err)
	}

	// Phase 2: commit the streak counters.
	s := progress.Streak{Current: ch.CurrentStreak, Best: ch.BestStreak}
	if completed {
		s = c.streak.Complete(s)
	} else {
		s = c.streak.Undo(s)
	}
	updated, err := c.challenges.Update(ctx, ch.ID, store.ChallengePatch{
		CurrentStreak: &s.Current,
		BestStreak:    &s.Best,
	})
	if err != nil {
		return nil, fmt.Errorf("commit streak: %w", err)
	}

	return &Result{Log: log, Challenge: updated}, nil
}

// ToggleSubtask flips membership of subtaskID in the day's completed set. It
// never touches the completion flag or the streak, even when the toggle
// checks off the last subtask.
func (c *Coordinator) ToggleSubtask(ctx context.Context, ch *challenge.Challenge, date string, subtaskID string) (*Result, error) {
	if !ch.HasSubtask(subtaskID) {
		return nil, ErrUnknownSubtask
	}

	log, err := c.findLog(ctx, ch, date)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log, err = c.logs.Create(ctx, &dailylog.DailyLog{
			UserID:            ch.UserID,
			ChallengeID:       ch.ID,
			Date:              date,
			Completed:         false,
			CompletedSubtasks: []string{subtaskID},
		})
		if err != nil {
			return nil, fmt.Errorf("stage daily log: %w", err)
		}
		return &Result{Log: log, Challenge: ch}, nil
	}

	var next []string
	if log.HasSubtask(subtaskID) {
		next = make([]string, 0, len(log.CompletedSubtasks))
		for _, s := range log.CompletedSubtasks {
			if s != subtaskID {
				next = append(next, s)
			}
		}
	} else {
		next = append(append([]string{}, log.CompletedSubtasks...), subtaskID)
	}

	log, err = c.logs.Update(ctx, log.ID, store.DailyLogPatch{CompletedSubtasks: &next})
	if err != nil {
		return nil, fmt.Errorf("stage daily log: %w", err)
	}
	return &Result{Log: log, Challenge: ch}, nil
}
