package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"resoluteAPI/internal/types/category"
	"resoluteAPI/internal/types/challenge"
	"resoluteAPI/internal/types/dailylog"
	"resoluteAPI/internal/types/settings"
)

const dateLayout = "2006-01-02"

// orderClause maps an API sort spec ("-created_at") onto a whitelisted ORDER
// BY. Unknown columns fall back to created_at DESC.
func orderClause(sort string, allowed map[string]bool) string {
	col := strings.TrimPrefix(sort, "-")
	dir := "ASC"
	if strings.HasPrefix(sort, "-") || sort == "" {
		dir = "DESC"
	}
	if !allowed[col] {
		col = "created_at"
	}
	return fmt.Sprintf("ORDER BY %s %s", col, dir)
}

// ---------------------------------------------------------------------------
// Challenges

type PgxChallengeStore struct {
	db *pgxpool.Pool
}

func NewPgxChallengeStore(db *pgxpool.Pool) *PgxChallengeStore {
	return &PgxChallengeStore{db: db}
}

const challengeColumns = `id, user_id, name, description, category, icon, start_date, end_date,
	frequency, subtasks, status, current_streak, best_streak,
	reminder_enabled, reminder_time, created_at, updated_at`

func scanChallenge(row pgx.Row) (*challenge.Challenge, error) {
	c := &challenge.Challenge{}
	var start, end time.Time
	var subtasks []byte
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Description, &c.Category, &c.Icon,
		&start, &end, &c.Frequency, &subtasks, &c.Status,
		&c.CurrentStreak, &c.BestStreak,
		&c.ReminderEnabled, &c.ReminderTime, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.StartDate = start.Format(dateLayout)
	c.EndDate = end.Format(dateLayout)
	if len(subtasks) > 0 {
		if err := json.Unmarshal(subtasks, &c.Subtasks); err != nil {
			return nil, fmt.Errorf("failed to decode subtasks: %w", err)
		}
	}
	return c, nil
}

func (s *PgxChallengeStore) List(ctx context.Context, userID string, sort string) ([]*challenge.Challenge, error) {
	allowed := map[string]bool{"created_at": true, "name": true, "start_date": true, "end_date": true}
	query := fmt.Sprintf(`SELECT %s FROM challenges WHERE user_id = $1 %s`, challengeColumns, orderClause(sort, allowed))

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	defer rows.Close()

	var out []*challenge.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PgxChallengeStore) Filter(ctx context.Context, f ChallengeFilter) ([]*challenge.Challenge, error) {
	where := []string{"user_id = $1"}
	args := []any{f.UserID}
	if f.ID != nil {
		args = append(args, *f.ID)
		where = append(where, fmt.Sprintf("id = $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM challenges WHERE %s ORDER BY created_at DESC`,
		challengeColumns, strings.Join(where, " AND "))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter challenges: %w", err)
	}
	defer rows.Close()

	var out []*challenge.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PgxChallengeStore) Create(ctx context.Context, c *challenge.Challenge) (*challenge.Challenge, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	subtasks, err := json.Marshal(c.Subtasks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode subtasks: %w", err)
	}

	query := fmt.Sprintf(`
	INSERT INTO challenges (id, user_id, name, description, category, icon, start_date, end_date,
		frequency, subtasks, status, current_streak, best_streak, reminder_enabled, reminder_time,
		created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
	RETURNING %s`, challengeColumns)

	row := s.db.QueryRow(ctx, query,
		c.ID, c.UserID, c.Name, c.Description, c.Category, c.Icon,
		c.StartDate, c.EndDate, c.Frequency, subtasks, c.Status,
		c.CurrentStreak, c.BestStreak, c.ReminderEnabled, c.ReminderTime,
	)
	created, err := scanChallenge(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	return created, nil
}

func (s *PgxChallengeStore) Update(ctx context.Context, id uuid.UUID, p ChallengePatch) (*challenge.Challenge, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{id}

	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.Icon != nil {
		add("icon", *p.Icon)
	}
	if p.StartDate != nil {
		add("start_date", *p.StartDate)
	}
	if p.EndDate != nil {
		add("end_date", *p.EndDate)
	}
	if p.Frequency != nil {
		add("frequency", *p.Frequency)
	}
	if p.Subtasks != nil {
		b, err := json.Marshal(*p.Subtasks)
		if err != nil {
			return nil, fmt.Errorf("failed to encode subtasks: %w", err)
		}
		add("subtasks", b)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.CurrentStreak != nil {
		add("current_streak", *p.CurrentStreak)
	}
	if p.BestStreak != nil {
		add("best_streak", *p.BestStreak)
	}
	if p.ReminderEnabled != nil {
		add("reminder_enabled", *p.ReminderEnabled)
	}
	if p.ReminderTime != nil {
		add("reminder_time", *p.ReminderTime)
	}

	query := fmt.Sprintf(`UPDATE challenges SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(set, ", "), challengeColumns)

	row := s.db.QueryRow(ctx, query, args...)
	updated, err := scanChallenge(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update challenge: %w", err)
	}
	return updated, nil
}

func (s *PgxChallengeStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete challenge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Daily logs

type PgxDailyLogStore struct {
	db *pgxpool.Pool
}

func NewPgxDailyLogStore(db *pgxpool.Pool) *PgxDailyLogStore {
	return &PgxDailyLogStore{db: db}
}

const dailyLogColumns = `id, user_id, challenge_id, date, completed, completed_subtasks, created_at, updated_at`

func scanDailyLog(row pgx.Row) (*dailylog.DailyLog, error) {
	l := &dailylog.DailyLog{}
	var date time.Time
	err := row.Scan(&l.ID, &l.UserID, &l.ChallengeID, &date, &l.Completed, &l.CompletedSubtasks, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.Date = date.Format(dateLayout)
	if l.CompletedSubtasks == nil {
		l.CompletedSubtasks = []string{}
	}
	return l, nil
}

func (s *PgxDailyLogStore) List(ctx context.Context, userID string, sort string) ([]*dailylog.DailyLog, error) {
	allowed := map[string]bool{"created_at": true, "date": true}
	query := fmt.Sprintf(`SELECT %s FROM daily_logs WHERE user_id = $1 %s`, dailyLogColumns, orderClause(sort, allowed))

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily logs: %w", err)
	}
	defer rows.Close()

	var out []*dailylog.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily log: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *PgxDailyLogStore) Filter(ctx context.Context, f DailyLogFilter) ([]*dailylog.DailyLog, error) {
	where := []string{"user_id = $1"}
	args := []any{f.UserID}
	if f.ChallengeID != nil {
		args = append(args, *f.ChallengeID)
		where = append(where, fmt.Sprintf("challenge_id = $%d", len(args)))
	}
	if f.Date != nil {
		args = append(args, *f.Date)
		where = append(where, fmt.Sprintf("date = $%d", len(args)))
	}
	if f.Completed != nil {
		args = append(args, *f.Completed)
		where = append(where, fmt.Sprintf("completed = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM daily_logs WHERE %s ORDER BY date ASC`,
		dailyLogColumns, strings.Join(where, " AND "))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter daily logs: %w", err)
	}
	defer rows.Close()

	var out []*dailylog.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily log: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *PgxDailyLogStore) Create(ctx context.Context, l *dailylog.DailyLog) (*dailylog.DailyLog, error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CompletedSubtasks == nil {
		l.CompletedSubtasks = []string{}
	}

	// UNIQUE(challenge_id, date) makes a concurrent double-create surface as
	// a store error instead of a duplicate row.
	query := fmt.Sprintf(`
	INSERT INTO daily_logs (id, user_id, challenge_id, date, completed, completed_subtasks, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	RETURNING %s`, dailyLogColumns)

	row := s.db.QueryRow(ctx, query, l.ID, l.UserID, l.ChallengeID, l.Date, l.Completed, l.CompletedSubtasks)
	created, err := scanDailyLog(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create daily log: %w", err)
	}
	return created, nil
}

func (s *PgxDailyLogStore) Update(ctx context.Context, id uuid.UUID, p DailyLogPatch) (*dailylog.DailyLog, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{id}
	if p.Completed != nil {
		args = append(args, *p.Completed)
		set = append(set, fmt.Sprintf("completed = $%d", len(args)))
	}
	if p.CompletedSubtasks != nil {
		args = append(args, *p.CompletedSubtasks)
		set = append(set, fmt.Sprintf("completed_subtasks = $%d", len(args)))
	}

	query := fmt.Sprintf(`UPDATE daily_logs SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(set, ", "), dailyLogColumns)

	row := s.db.QueryRow(ctx, query, args...)
	updated, err := scanDailyLog(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update daily log: %w", err)
	}
	return updated, nil
}

func (s *PgxDailyLogStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM daily_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete daily log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Categories

type PgxCategoryStore struct {
	db *pgxpool.Pool
}

func NewPgxCategoryStore(db *pgxpool.Pool) *PgxCategoryStore {
	return &PgxCategoryStore{db: db}
}

const categoryColumns = `id, user_id, name, color, created_at`

func scanCategory(row pgx.Row) (*category.Category, error) {
	c := &category.Category{}
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *PgxCategoryStore) List(ctx context.Context, userID string, sort string) ([]*category.Category, error) {
	allowed := map[string]bool{"created_at": true, "name": true}
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE user_id = $1 %s`, categoryColumns, orderClause(sort, allowed))

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []*category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PgxCategoryStore) Filter(ctx context.Context, f CategoryFilter) ([]*category.Category, error) {
	where := []string{"user_id = $1"}
	args := []any{f.UserID}
	if f.ID != nil {
		args = append(args, *f.ID)
		where = append(where, fmt.Sprintf("id = $%d", len(args)))
	}
	if f.Name != nil {
		args = append(args, *f.Name)
		where = append(where, fmt.Sprintf("name = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM categories WHERE %s ORDER BY name ASC`,
		categoryColumns, strings.Join(where, " AND "))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter categories: %w", err)
	}
	defer rows.Close()

	var out []*category.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PgxCategoryStore) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	query := fmt.Sprintf(`
	INSERT INTO categories (id, user_id, name, color, created_at)
	VALUES ($1, $2, $3, $4, NOW())
	RETURNING %s`, categoryColumns)

	created, err := scanCategory(s.db.QueryRow(ctx, query, c.ID, c.UserID, c.Name, c.Color))
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return created, nil
}

func (s *PgxCategoryStore) Update(ctx context.Context, id uuid.UUID, p CategoryPatch) (*category.Category, error) {
	set := []string{}
	args := []any{id}
	if p.Name != nil {
		args = append(args, *p.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if p.Color != nil {
		args = append(args, *p.Color)
		set = append(set, fmt.Sprintf("color = $%d", len(args)))
	}
	if len(set) == 0 {
		results, err := s.Filter(ctx, CategoryFilter{ID: &id})
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, ErrNotFound
		}
		return results[0], nil
	}

	query := fmt.Sprintf(`UPDATE categories SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(set, ", "), categoryColumns)

	updated, err := scanCategory(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return updated, nil
}

func (s *PgxCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	// No cascade: challenges referencing the category by name keep the
	// dangling name.
	tag, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// User settings

type PgxSettingsStore struct {
	db *pgxpool.Pool
}

func NewPgxSettingsStore(db *pgxpool.Pool) *PgxSettingsStore {
	return &PgxSettingsStore{db: db}
}

const settingsColumns = `id, user_id, default_reminder_time, theme, created_at, updated_at`

func scanSettings(row pgx.Row) (*settings.UserSettings, error) {
	u := &settings.UserSettings{}
	err := row.Scan(&u.ID, &u.UserID, &u.DefaultReminderTime, &u.Theme, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *PgxSettingsStore) List(ctx context.Context, userID string) ([]*settings.UserSettings, error) {
	query := fmt.Sprintf(`SELECT %s FROM user_settings WHERE user_id = $1 ORDER BY created_at ASC`, settingsColumns)

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var out []*settings.UserSettings
	for rows.Next() {
		u, err := scanSettings(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settings: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *PgxSettingsStore) Create(ctx context.Context, u *settings.UserSettings) (*settings.UserSettings, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	query := fmt.Sprintf(`
	INSERT INTO user_settings (id, user_id, default_reminder_time, theme, created_at, updated_at)
	VALUES ($1, $2, $3, $4, NOW(), NOW())
	RETURNING %s`, settingsColumns)

	created, err := scanSettings(s.db.QueryRow(ctx, query, u.ID, u.UserID, u.DefaultReminderTime, u.Theme))
	if err != nil {
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}
	return created, nil
}

func (s *PgxSettingsStore) Update(ctx context.Context, id uuid.UUID, p SettingsPatch) (*settings.UserSettings, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{id}
	if p.DefaultReminderTime != nil {
		args = append(args, *p.DefaultReminderTime)
		set = append(set, fmt.Sprintf("default_reminder_time = $%d", len(args)))
	}
	if p.Theme != nil {
		args = append(args, *p.Theme)
		set = append(set, fmt.Sprintf("theme = $%d", len(args)))
	}

	query := fmt.Sprintf(`UPDATE user_settings SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(set, ", "), settingsColumns)

	updated, err := scanSettings(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return updated, nil
}

func (s *PgxSettingsStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM user_settings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
