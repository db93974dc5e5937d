package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yusufkecer/calorist-backend/internal/domain"
)

const trackingColumns = `id, user_id, day, calorie_intake, water_intake, created_at, updated_at`

type TrackingRepository struct {
	db *sql.DB
}

func NewTrackingRepository(db *sql.DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

func (r *TrackingRepository) GetDaily(ctx context.Context, userID uuid.UUID, day domain.Day) (*domain.DailyTracking, error) {
	t, err := scanTracking(r.db.QueryRowContext(ctx,
		`SELECT `+trackingColumns+` FROM daily_tracking WHERE user_id = ? AND day = ?`,
		userID, day.String(),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily tracking: %w", err)
	}
	return t, nil
}

// SaveDaily stores the intake of t's day. An existing record for the same
// user and day keeps its id and created_at and has its intake overwritten;
// t is updated to reflect the stored row.
func (r *TrackingRepository) SaveDaily(ctx context.Context, t *domain.DailyTracking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin daily tracking save: %w", err)
	}
	defer tx.Rollback()

	var existingID uuid.UUID
	var createdAt time.Time
	err = tx.QueryRowContext(ctx,
		`SELECT id, created_at FROM daily_tracking WHERE user_id = ? AND day = ?`,
		t.UserID, t.Date.String(),
	).Scan(&existingID, &createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO daily_tracking (`+trackingColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.UserID, t.Date.String(), t.CalorieIntake, t.WaterIntake, t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
		)
	case err != nil:
		return fmt.Errorf("failed to look up daily tracking: %w", err)
	default:
		t.ID = existingID
		t.CreatedAt = createdAt
		_, err = tx.ExecContext(ctx,
			`UPDATE daily_tracking SET calorie_intake = ?, water_intake = ?, updated_at = ? WHERE id = ?`,
			t.CalorieIntake, t.WaterIntake, t.UpdatedAt.UTC(), existingID,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to save daily tracking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit daily tracking save: %w", err)
	}
	return nil
}

func (r *TrackingRepository) GetGoals(ctx context.Context, userID uuid.UUID) (*domain.DailyTrackingGoals, error) {
	var g domain.DailyTrackingGoals
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, daily_calorie_goal, daily_water_goal, created_at, updated_at
		 FROM daily_tracking_goals WHERE user_id = ?`, userID,
	).Scan(&g.UserID, &g.DailyCalorieGoal, &g.DailyWaterGoal, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tracking goals: %w", err)
	}
	return &g, nil
}

// SaveGoals upserts the goals of g.UserID, keeping created_at of an existing row.
func (r *TrackingRepository) SaveGoals(ctx context.Context, g *domain.DailyTrackingGoals) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tracking goals save: %w", err)
	}
	defer tx.Rollback()

	var createdAt time.Time
	err = tx.QueryRowContext(ctx,
		`SELECT created_at FROM daily_tracking_goals WHERE user_id = ?`, g.UserID,
	).Scan(&createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO daily_tracking_goals (user_id, daily_calorie_goal, daily_water_goal, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?)`,
			g.UserID, g.DailyCalorieGoal, g.DailyWaterGoal, g.CreatedAt.UTC(), g.UpdatedAt.UTC(),
		)
	case err != nil:
		return fmt.Errorf("failed to look up tracking goals: %w", err)
	default:
		g.CreatedAt = createdAt
		_, err = tx.ExecContext(ctx,
			`UPDATE daily_tracking_goals SET daily_calorie_goal = ?, daily_water_goal = ?, updated_at = ?
			 WHERE user_id = ?`,
			g.DailyCalorieGoal, g.DailyWaterGoal, g.UpdatedAt.UTC(), g.UserID,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to save tracking goals: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tracking goals save: %w", err)
	}
	return nil
}

// GetWeekly returns the records in [start, start+7 days), by day.
func (r *TrackingRepository) GetWeekly(ctx context.Context, userID uuid.UUID, start domain.Day) ([]domain.DailyTracking, error) {
	return r.getRange(ctx, userID, start, start.AddDays(7))
}

// GetMonthly returns the records of the given calendar month, by day.
func (r *TrackingRepository) GetMonthly(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]domain.DailyTracking, error) {
	start := domain.StartOfMonth(year, month)
	return r.getRange(ctx, userID, start, domain.Day{Time: start.AddDate(0, 1, 0)})
}

func (r *TrackingRepository) getRange(ctx context.Context, userID uuid.UUID, from, to domain.Day) ([]domain.DailyTracking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+trackingColumns+`
		 FROM daily_tracking
		 WHERE user_id = ? AND day >= ? AND day < ?
		 ORDER BY day ASC`,
		userID, from.String(), to.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily tracking: %w", err)
	}
	defer rows.Close()

	var records []domain.DailyTracking
	for rows.Next() {
		t, err := scanTracking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily tracking: %w", err)
		}
		records = append(records, *t)
	}
	return records, rows.Err()
}

func scanTracking(s scanner) (*domain.DailyTracking, error) {
	var t domain.DailyTracking
	var day string
	if err := s.Scan(&t.ID, &t.UserID, &day, &t.CalorieIntake, &t.WaterIntake, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := domain.ParseDay(day)
	if err != nil {
		return nil, fmt.Errorf("invalid stored day %q: %w", day, err)
	}
	t.Date = d
	return &t, nil
}
