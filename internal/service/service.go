// Package service holds the application logic behind the HTTP surface:
// it validates input, orchestrates the stores and the calculator and maps
// storage failures to the errors below.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yusufkecer/calorist-backend/internal/domain"
	"github.com/yusufkecer/calorist-backend/internal/logger"
)

var (
	// ErrInvalidArgument marks input rejected by validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound marks a missing profile or measurement.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a write that collides with an existing record.
	ErrConflict = errors.New("conflict")
	// ErrInternal hides a storage failure that has already been logged.
	ErrInternal = errors.New("internal error")
)

// ValidationError describes which field was rejected and why.
// It matches ErrInvalidArgument under errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

type UserStore interface {
	GetCurrent(ctx context.Context) (*domain.User, error)
	Save(ctx context.Context, u *domain.User) error
	// SaveWithMeasurement saves u and its first measurement atomically.
	SaveWithMeasurement(ctx context.Context, u *domain.User, m *domain.Measurement) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type MeasurementStore interface {
	Save(ctx context.Context, m *domain.Measurement) error
	GetAll(ctx context.Context, userID uuid.UUID) ([]domain.Measurement, error)
	GetLatest(ctx context.Context, userID uuid.UUID) (*domain.Measurement, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type TrackingStore interface {
	GetDaily(ctx context.Context, userID uuid.UUID, day domain.Day) (*domain.DailyTracking, error)
	SaveDaily(ctx context.Context, t *domain.DailyTracking) error
	GetGoals(ctx context.Context, userID uuid.UUID) (*domain.DailyTrackingGoals, error)
	SaveGoals(ctx context.Context, g *domain.DailyTrackingGoals) error
	GetWeekly(ctx context.Context, userID uuid.UUID, start domain.Day) ([]domain.DailyTracking, error)
	GetMonthly(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]domain.DailyTracking, error)
}

// clock truncates to whole seconds so stored timestamps survive a round
// trip through DATETIME columns unchanged.
func clock() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func internalError(log *logger.Logger, op, msg string, err error) error {
	log.Error(msg, "op", op, "error", err)
	return fmt.Errorf("%s: %w", op, ErrInternal)
}

// currentUser loads the active profile and reports ErrNotFound without one.
func currentUser(ctx context.Context, users UserStore, log *logger.Logger, op string) (*domain.User, error) {
	u, err := users.GetCurrent(ctx)
	if err != nil {
		return nil, internalError(log, op, "failed to load user", err)
	}
	if u == nil {
		return nil, fmt.Errorf("%s: no profile: %w", op, ErrNotFound)
	}
	return u, nil
}
