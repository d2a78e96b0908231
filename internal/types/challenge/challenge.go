package challenge

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekdays Frequency = "weekdays"
	FrequencyWeekends Frequency = "weekends"
)

// Frequency is stored for display only. Streak and progress math treat every
// calendar day uniformly regardless of this value.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekdays, FrequencyWeekends:
		return true
	}
	return false
}

type Icon string

const (
	IconTarget   Icon = "target"
	IconBook     Icon = "book"
	IconDumbbell Icon = "dumbbell"
	IconBrain    Icon = "brain"
	IconHeart    Icon = "heart"
	IconUtensils Icon = "utensils"
	IconMoon     Icon = "moon"
	IconPencil   Icon = "pencil"
)

func (i Icon) Valid() bool {
	switch i {
	case IconTarget, IconBook, IconDumbbell, IconBrain, IconHeart, IconUtensils, IconMoon, IconPencil:
		return true
	}
	return false
}

type Subtask struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Challenge struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	Category        string    `json:"category" db:"category"`
	Icon            Icon      `json:"icon" db:"icon"`
	StartDate       string    `json:"start_date" db:"start_date"`
	EndDate         string    `json:"end_date" db:"end_date"`
	Frequency       Frequency `json:"frequency" db:"frequency"`
	Subtasks        []Subtask `json:"subtasks" db:"subtasks"`
	Status          Status    `json:"status" db:"status"`
	CurrentStreak   int       `json:"current_streak" db:"current_streak"`
	BestStreak      int       `json:"best_streak" db:"best_streak"`
	ReminderEnabled bool      `json:"reminder_enabled" db:"reminder_enabled"`
	ReminderTime    string    `json:"reminder_time" db:"reminder_time"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// HasSubtask reports whether id belongs to the challenge's subtask list.
func (c *Challenge) HasSubtask(id string) bool {
	for _, s := range c.Subtasks {
		if s.ID == id {
			return true
		}
	}
	return false
}

type CreateChallengeRequest struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Icon            Icon      `json:"icon"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	Frequency       Frequency `json:"frequency"`
	Subtasks        []Subtask `json:"subtasks"`
	ReminderEnabled bool      `json:"reminder_enabled"`
	ReminderTime    string    `json:"reminder_time"`
}

type UpdateChallengeRequest struct {
	Name            *string    `json:"name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Category        *string    `json:"category,omitempty"`
	Icon            *Icon      `json:"icon,omitempty"`
	StartDate       *string    `json:"start_date,omitempty"`
	EndDate         *string    `json:"end_date,omitempty"`
	Frequency       *Frequency `json:"frequency,omitempty"`
	Subtasks        *[]Subtask `json:"subtasks,omitempty"`
	Status          *Status    `json:"status,omitempty"`
	ReminderEnabled *bool      `json:"reminder_enabled,omitempty"`
	ReminderTime    *string    `json:"reminder_time,omitempty"`
}

type DashboardStats struct {
	ActiveChallenges    int `json:"active_challenges"`
	CompletedToday      int `json:"completed_today"`
	TotalCurrentStreak  int `json:"total_current_streak"`
	CompletedChallenges int `json:"completed_challenges"`
}
