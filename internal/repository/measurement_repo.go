package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yusufkecer/calorist-backend/internal/domain"
)

const measurementColumns = `id, user_id, height, weight, neck, waist, hip, arm, measured_at`

type MeasurementRepository struct {
	db *sql.DB
}

func NewMeasurementRepository(db *sql.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

// Save inserts m. Measurements are never updated in place.
func (r *MeasurementRepository) Save(ctx context.Context, m *domain.Measurement) error {
	return insertMeasurement(ctx, r.db, m)
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertMeasurement(ctx context.Context, ex execer, m *domain.Measurement) error {
	_, err := ex.ExecContext(ctx,
		`INSERT INTO measurements (`+measurementColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.Height, m.Weight, m.Neck, m.Waist, m.Hip, m.Arm, m.Date.UTC(),
	)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create measurement: %w", err)
	}
	return nil
}

// GetAll lists a user's measurements, oldest first.
func (r *MeasurementRepository) GetAll(ctx context.Context, userID uuid.UUID) ([]domain.Measurement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+measurementColumns+`
		 FROM measurements
		 WHERE user_id = ?
		 ORDER BY measured_at ASC, id ASC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	defer rows.Close()

	var measurements []domain.Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan measurement: %w", err)
		}
		measurements = append(measurements, *m)
	}
	return measurements, rows.Err()
}

func (r *MeasurementRepository) GetLatest(ctx context.Context, userID uuid.UUID) (*domain.Measurement, error) {
	m, err := scanMeasurement(r.db.QueryRowContext(ctx,
		`SELECT `+measurementColumns+`
		 FROM measurements
		 WHERE user_id = ?
		 ORDER BY measured_at DESC, id DESC
		 LIMIT 1`, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest measurement: %w", err)
	}
	return m, nil
}

// Delete removes a measurement by id and reports whether it existed.
func (r *MeasurementRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM measurements WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete measurement: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete measurement: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMeasurement(s scanner) (*domain.Measurement, error) {
	var m domain.Measurement
	if err := s.Scan(&m.ID, &m.UserID, &m.Height, &m.Weight, &m.Neck, &m.Waist, &m.Hip, &m.Arm, &m.Date); err != nil {
		return nil, err
	}
	return &m, nil
}
