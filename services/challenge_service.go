package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"resoluteAPI/internal/checkin"
	"resoluteAPI/internal/progress"
	"resoluteAPI/internal/types/challenge"
	"resoluteAPI/internal/types/dailylog"
	"resoluteAPI/store"
)

// ErrInvalid marks request validation failures so the handler layer can map
// them to 400 instead of 500.
var ErrInvalid = errors.New("invalid request")

type ChallengeService struct {
	challenges  store.ChallengeStore
	logs        store.DailyLogStore
	coordinator *checkin.Coordinator
}

func NewChallengeService(challenges store.ChallengeStore, logs store.DailyLogStore) *ChallengeService {
	return &ChallengeService{
		challenges:  challenges,
		logs:        logs,
		coordinator: checkin.NewCoordinator(challenges, logs),
	}
}

func (s *ChallengeService) ListChallenges(ctx context.Context, userID string) ([]*challenge.Challenge, error) {
	challenges, err := s.challenges.List(ctx, userID, "-created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	if challenges == nil {
		challenges = []*challenge.Challenge{}
	}
	return challenges, nil
}

func (s *ChallengeService) CreateChallenge(ctx context.Context, userID string, req *challenge.CreateChallengeRequest) (*challenge.Challenge, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	icon := req.Icon
	if icon == "" {
		icon = challenge.IconTarget
	}
	if !icon.Valid() {
		return nil, fmt.Errorf("%w: unknown icon %q", ErrInvalid, req.Icon)
	}

	freq := req.Frequency
	if freq == "" {
		freq = challenge.FrequencyDaily
	}
	if !freq.Valid() {
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalid, req.Frequency)
	}

	start, err := progress.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	endStr := req.EndDate
	if endStr == "" {
		endStr = req.StartDate
	}
	end, err := progress.ParseDate(endStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	// Duration is clamped to at least one day.
	if end.Before(start) {
		end = start
		endStr = req.StartDate
	}

	subtasks := make([]challenge.Subtask, 0, len(req.Subtasks))
	seen := make(map[string]bool, len(req.Subtasks))
	for i, st := range req.Subtasks {
		if st.Name == "" {
			return nil, fmt.Errorf("%w: subtask name is required", ErrInvalid)
		}
		if st.ID == "" {
			st.ID = strconv.Itoa(i + 1)
		}
		if seen[st.ID] {
			return nil, fmt.Errorf("%w: duplicate subtask id %q", ErrInvalid, st.ID)
		}
		seen[st.ID] = true
		subtasks = append(subtasks, st)
	}

	reminderTime := req.ReminderTime
	if reminderTime == "" {
		reminderTime = "09:00"
	}

	created, err := s.challenges.Create(ctx, &challenge.Challenge{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Icon:            icon,
		StartDate:       progress.FormatDate(start),
		EndDate:         progress.FormatDate(end),
		Frequency:       freq,
		Subtasks:        subtasks,
		Status:          challenge.StatusActive,
		CurrentStreak:   0,
		BestStreak:      0,
		ReminderEnabled: req.ReminderEnabled,
		ReminderTime:    reminderTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	return created, nil
}

// GetChallenge returns the user's challenge or store.ErrNotFound.
func (s *ChallengeService) GetChallenge(ctx context.Context, userID string, id uuid.UUID) (*challenge.Challenge, error) {
	results, err := s.challenges.Filter(ctx, store.ChallengeFilter{UserID: userID, ID: &id})
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	if len(results) == 0 {
		return nil, store.ErrNotFound
	}
	return results[0], nil
}

// ChallengeDetail is the detail-page payload: the record plus everything the
// progress engine derives from its logs.
type ChallengeDetail struct {
	Challenge *challenge.Challenge `json:"challenge"`
	Summary   *progress.Summary    `json:"summary"`
	Calendar  []progress.DayCell   `json:"calendar"`
	TodayLog  *dailylog.DailyLog   `json:"today_log,omitempty"`
}

func (s *ChallengeService) GetDetail(ctx context.Context, userID string, id uuid.UUID, today time.Time) (*ChallengeDetail, error) {
	ch, err := s.GetChallenge(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	logs, err := s.ListLogs(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	summary, err := progress.Summarize(ch, logs, today)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize challenge: %w", err)
	}
	calendar, err := progress.CalendarDays(ch, logs, today)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar: %w", err)
	}

	detail := &ChallengeDetail{
		Challenge: ch,
		Summary:   summary,
		Calendar:  calendar,
	}
	todayStr := progress.FormatDate(today)
	for _, l := range logs {
		if l.Date == todayStr {
			detail.TodayLog = l
			break
		}
	}
	return detail, nil
}

func (s *ChallengeService) UpdateChallenge(ctx context.Context, userID string, id uuid.UUID, req *challenge.UpdateChallengeRequest) (*challenge.Challenge, error) {
	if _, err := s.GetChallenge(ctx, userID, id); err != nil {
		return nil, err
	}

	if req.Icon != nil && !req.Icon.Valid() {
		return nil, fmt.Errorf("%w: unknown icon %q", ErrInvalid, *req.Icon)
	}
	if req.Frequency != nil && !req.Frequency.Valid() {
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalid, *req.Frequency)
	}
	if req.StartDate != nil {
		if _, err := progress.ParseDate(*req.StartDate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if req.EndDate != nil {
		if _, err := progress.ParseDate(*req.EndDate); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}

	updated, err := s.challenges.Update(ctx, id, store.ChallengePatch{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Icon:            req.Icon,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Frequency:       req.Frequency,
		Subtasks:        req.Subtasks,
		Status:          req.Status,
		ReminderEnabled: req.ReminderEnabled,
		ReminderTime:    req.ReminderTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update challenge: %w", err)
	}
	return updated, nil
}

// DeleteChallenge removes the challenge record. Its daily logs are left in
// place; there is no cascade.
func (s *ChallengeService) DeleteChallenge(ctx context.Context, userID string, id uuid.UUID) error {
	if _, err := s.GetChallenge(ctx, userID, id); err != nil {
		return err
	}
	if err := s.challenges.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	return nil
}

func (s *ChallengeService) ListLogs(ctx context.Context, userID string, challengeID uuid.UUID) ([]*dailylog.DailyLog, error) {
	logs, err := s.logs.Filter(ctx, store.DailyLogFilter{UserID: userID, ChallengeID: &challengeID})
	if err != nil {
		return nil, fmt.Errorf("failed to list daily logs: %w", err)
	}
	if logs == nil {
		logs = []*dailylog.DailyLog{}
	}
	return logs, nil
}

// CheckIn toggles today's completion for the challenge.
func (s *ChallengeService) CheckIn(ctx context.Context, userID string, id uuid.UUID, completed bool, today time.Time) (*checkin.Result, error) {
	ch, err := s.GetChallenge(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.coordinator.ToggleComplete(ctx, ch, progress.FormatDate(today), completed)
}

// ToggleSubtask flips one subtask on today's log.
func (s *ChallengeService) ToggleSubtask(ctx context.Context, userID string, id uuid.UUID, subtaskID string, today time.Time) (*checkin.Result, error) {
	ch, err := s.GetChallenge(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.coordinator.ToggleSubtask(ctx, ch, progress.FormatDate(today), subtaskID)
}

func (s *ChallengeService) Calendar(ctx context.Context, userID string, id uuid.UUID, today time.Time) ([]progress.DayCell, error) {
	ch, err := s.GetChallenge(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	logs, err := s.ListLogs(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	cells, err := progress.CalendarDays(ch, logs, today)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar: %w", err)
	}
	return cells, nil
}

// Dashboard aggregates the home-screen stats across all of the user's
// challenges.
func (s *ChallengeService) Dashboard(ctx context.Context, userID string, today time.Time) (*challenge.DashboardStats, error) {
	challenges, err := s.ListChallenges(ctx, userID)
	if err != nil {
		return nil, err
	}

	todayStr := progress.FormatDate(today)
	completedTrue := true
	todayLogs, err := s.logs.Filter(ctx, store.DailyLogFilter{
		UserID:    userID,
		Date:      &todayStr,
		Completed: &completedTrue,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count today's logs: %w", err)
	}

	stats := &challenge.DashboardStats{CompletedToday: len(todayLogs)}
	for _, c := range challenges {
		stats.TotalCurrentStreak += c.CurrentStreak
		switch c.Status {
		case challenge.StatusActive:
			stats.ActiveChallenges++
		case challenge.StatusCompleted:
			stats.CompletedChallenges++
		}
	}
	return stats, nil
}
