package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/yusufkecer/calorist-backend/internal/domain"
	"github.com/yusufkecer/calorist-backend/internal/logger"
	"github.com/yusufkecer/calorist-backend/internal/repository"
)

// ProgressSummary describes weight over time. Weights and Dates are oldest
// first and of equal length. WeightChange is last minus first and needs at
// least two measurements.
type ProgressSummary struct {
	Weights      []float64   `json:"weights"`
	Dates        []time.Time `json:"dates"`
	LatestWeight *float64    `json:"latestWeight"`
	WeightChange *float64    `json:"weightChange"`
}

type ProgressService struct {
	users        UserStore
	measurements MeasurementStore
	log          *logger.Logger
	locks        *KeyedMutex
	now          func() time.Time
}

func NewProgressService(users UserStore, measurements MeasurementStore, locks *KeyedMutex, log *logger.Logger) *ProgressService {
	return &ProgressService{
		users:        users,
		measurements: measurements,
		log:          log,
		locks:        locks,
		now:          clock,
	}
}

// Measurements lists the profile's measurements, newest first.
func (s *ProgressService) Measurements(ctx context.Context) ([]domain.Measurement, error) {
	const op = "service.progress.Measurements"

	all, err := s.ascending(ctx, op)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all, nil
}

func (s *ProgressService) AddMeasurement(ctx context.Context, in MeasurementInput) (*domain.Measurement, error) {
	const op = "service.progress.AddMeasurement"

	if err := in.validate(s.now()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Held across the user lookup so Setup cannot replace the profile
	// before the insert lands.
	unlock := s.locks.Lock(profileLockKey)
	defer unlock()

	u, err := currentUser(ctx, s.users, s.log, op)
	if err != nil {
		return nil, err
	}

	m := newMeasurement(u.ID, in, s.now())
	if err := s.measurements.Save(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%s: measurement %s: %w", op, m.ID, ErrConflict)
		}
		return nil, internalError(s.log, op, "failed to save measurement", err)
	}

	s.log.Info("measurement added", "op", op, "measurement_id", m.ID)
	return &m, nil
}

func (s *ProgressService) DeleteMeasurement(ctx context.Context, id uuid.UUID) error {
	const op = "service.progress.DeleteMeasurement"

	unlock := s.locks.Lock(id.String())
	defer unlock()

	deleted, err := s.measurements.Delete(ctx, id)
	if err != nil {
		return internalError(s.log, op, "failed to delete measurement", err)
	}
	if !deleted {
		return fmt.Errorf("%s: measurement %s: %w", op, id, ErrNotFound)
	}

	s.log.Info("measurement deleted", "op", op, "measurement_id", id)
	return nil
}

func (s *ProgressService) Summary(ctx context.Context) (*ProgressSummary, error) {
	const op = "service.progress.Summary"

	all, err := s.ascending(ctx, op)
	if err != nil {
		return nil, err
	}

	summary := &ProgressSummary{
		Weights: make([]float64, 0, len(all)),
		Dates:   make([]time.Time, 0, len(all)),
	}
	for _, m := range all {
		summary.Weights = append(summary.Weights, m.Weight)
		summary.Dates = append(summary.Dates, m.Date)
	}
	if n := len(all); n > 0 {
		latest := all[n-1].Weight
		summary.LatestWeight = &latest
		if n >= 2 {
			change := latest - all[0].Weight
			summary.WeightChange = &change
		}
	}
	return summary, nil
}

// ascending returns the profile's measurements oldest first.
func (s *ProgressService) ascending(ctx context.Context, op string) ([]domain.Measurement, error) {
	u, err := currentUser(ctx, s.users, s.log, op)
	if err != nil {
		return nil, err
	}

	all, err := s.measurements.GetAll(ctx, u.ID)
	if err != nil {
		return nil, internalError(s.log, op, "failed to load measurements", err)
	}
	if all == nil {
		all = []domain.Measurement{}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.Before(all[j].Date) })
	return all, nil
}
