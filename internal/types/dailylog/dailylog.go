package dailylog

import (
	"time"

	"github.com/google/uuid"
)

// DailyLog is one day's completion record for a challenge. At most one log
// exists per (challenge_id, date).
type DailyLog struct {
	ID                uuid.UUID `json:"id" db:"id"`
	UserID            string    `json:"user_id" db:"user_id"`
	ChallengeID       uuid.UUID `json:"challenge_id" db:"challenge_id"`
	Date              string    `json:"date" db:"date"`
	Completed         bool      `json:"completed" db:"completed"`
	CompletedSubtasks []string  `json:"completed_subtasks" db:"completed_subtasks"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// HasSubtask reports whether the given subtask id is checked on this log.
func (l *DailyLog) HasSubtask(id string) bool {
	for _, s := range l.CompletedSubtasks {
		if s == id {
			return true
		}
	}
	return false
}
