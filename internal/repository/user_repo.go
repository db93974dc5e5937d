package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yusufkecer/calorist-backend/internal/domain"
)

// profileSlot is the fixed key of the one active profile.
const profileSlot = 1

const userColumns = `id, name, age, gender, activity_level, goal, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetCurrent(ctx context.Context) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE profile_slot = ?`, profileSlot,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// Save makes u the active profile. The same profile is updated in place and
// keeps its created_at; a profile with another id replaces the old one
// together with everything that references it.
func (r *UserRepository) Save(ctx context.Context, u *domain.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin user save: %w", err)
	}
	defer tx.Rollback()

	if err := saveUser(ctx, tx, u); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user save: %w", err)
	}
	return nil
}

// SaveWithMeasurement saves u as Save does and inserts its first measurement
// in the same transaction. When the insert fails nothing is written and a
// replaced profile keeps its data. A measurement id collision is reported as
// ErrDuplicate.
func (r *UserRepository) SaveWithMeasurement(ctx context.Context, u *domain.User, m *domain.Measurement) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin profile setup: %w", err)
	}
	defer tx.Rollback()

	if err := saveUser(ctx, tx, u); err != nil {
		return err
	}
	if err := insertMeasurement(ctx, tx, m); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile setup: %w", err)
	}
	return nil
}

func saveUser(ctx context.Context, tx *sql.Tx, u *domain.User) error {
	var existingID uuid.UUID
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM users WHERE profile_slot = ?`, profileSlot,
	).Scan(&existingID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = insertUser(ctx, tx, u)
	case err != nil:
		return fmt.Errorf("failed to look up current user: %w", err)
	case existingID == u.ID:
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET name = ?, age = ?, gender = ?, activity_level = ?, goal = ?, updated_at = ?
			 WHERE id = ?`,
			u.Name, u.Age, string(u.Gender), string(u.ActivityLevel), string(u.Goal), u.UpdatedAt.UTC(), u.ID,
		)
	default:
		if _, err = tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, existingID); err == nil {
			err = insertUser(ctx, tx, u)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// Delete removes the profile and, through the foreign keys, its measurements
// and tracking data. It reports whether a row was removed.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return n > 0, nil
}

func insertUser(ctx context.Context, tx *sql.Tx, u *domain.User) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO users (id, profile_slot, name, age, gender, activity_level, goal, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, profileSlot, u.Name, u.Age, string(u.Gender), string(u.ActivityLevel), string(u.Goal),
		u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	return err
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	var gender, activity, goal string
	if err := row.Scan(&u.ID, &u.Name, &u.Age, &gender, &activity, &goal, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Gender = domain.Gender(gender)
	u.ActivityLevel = domain.ActivityLevel(activity)
	u.Goal = domain.Goal(goal)
	return &u, nil
}
