package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yusufkecer/calorist-backend/internal/calculator"
	"github.com/yusufkecer/calorist-backend/internal/domain"
	"github.com/yusufkecer/calorist-backend/internal/logger"
	"github.com/yusufkecer/calorist-backend/internal/repository"
)

const profileLockKey = "profile"

// Dashboard is the home screen: the profile, its latest measurement and the
// metrics derived from it. Measurement and Metrics are nil until the first
// measurement exists.
type Dashboard struct {
	User          domain.User
	Measurement   *domain.Measurement
	Metrics       *domain.BodyMetrics
	DailyCalories float64
}

type SetupInput struct {
	Name          string               `json:"name"`
	Age           int                  `json:"age"`
	Gender        domain.Gender        `json:"gender"`
	ActivityLevel domain.ActivityLevel `json:"activityLevel"`
	Goal          domain.Goal          `json:"goal"`
	Measurement   MeasurementInput     `json:"measurement"`
}

// UpdateProfileInput changes only the fields that are set.
type UpdateProfileInput struct {
	Name          *string               `json:"name,omitempty"`
	Age           *int                  `json:"age,omitempty"`
	Gender        *domain.Gender        `json:"gender,omitempty"`
	ActivityLevel *domain.ActivityLevel `json:"activityLevel,omitempty"`
	Goal          *domain.Goal          `json:"goal,omitempty"`
}

func (in UpdateProfileInput) empty() bool {
	return in.Name == nil && in.Age == nil && in.Gender == nil && in.ActivityLevel == nil && in.Goal == nil
}

type ProfileService struct {
	users        UserStore
	measurements MeasurementStore
	log          *logger.Logger
	locks        *KeyedMutex
	now          func() time.Time
}

func NewProfileService(users UserStore, measurements MeasurementStore, locks *KeyedMutex, log *logger.Logger) *ProfileService {
	return &ProfileService{
		users:        users,
		measurements: measurements,
		log:          log,
		locks:        locks,
		now:          clock,
	}
}

func (s *ProfileService) CurrentUser(ctx context.Context) (*domain.User, error) {
	return currentUser(ctx, s.users, s.log, "service.profile.CurrentUser")
}

// Dashboard loads the profile with its latest measurement and computes the
// body metrics for it.
func (s *ProfileService) Dashboard(ctx context.Context) (*Dashboard, error) {
	const op = "service.profile.Dashboard"

	u, err := currentUser(ctx, s.users, s.log, op)
	if err != nil {
		return nil, err
	}
	return s.dashboard(ctx, op, *u)
}

func (s *ProfileService) dashboard(ctx context.Context, op string, u domain.User) (*Dashboard, error) {
	m, err := s.measurements.GetLatest(ctx, u.ID)
	if err != nil {
		return nil, internalError(s.log, op, "failed to load latest measurement", err)
	}

	d := &Dashboard{User: u}
	if m == nil {
		return d, nil
	}

	metrics := calculator.ComputeBodyMetrics(*m, u)
	if !metrics.Valid() {
		s.log.Warn("body metrics out of formula domain", "op", op, "measurement_id", m.ID)
	}
	d.Measurement = m
	d.Metrics = &metrics
	d.DailyCalories = calculator.DailyCalories(*m, u)
	return d, nil
}

// Setup creates a new profile with its first measurement. Any previous
// profile is replaced along with its data, but only once both are stored.
func (s *ProfileService) Setup(ctx context.Context, in SetupInput) (*Dashboard, error) {
	const op = "service.profile.Setup"

	name, err := validateName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := validateAge(in.Age); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := validateProfile(in.Gender, in.ActivityLevel, in.Goal); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := in.Measurement.validate(s.now()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	unlock := s.locks.Lock(profileLockKey)
	defer unlock()

	now := s.now()
	u := domain.User{
		ID:            uuid.New(),
		Name:          name,
		Age:           in.Age,
		Gender:        in.Gender,
		ActivityLevel: in.ActivityLevel,
		Goal:          in.Goal,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m := newMeasurement(u.ID, in.Measurement, now)
	if err := s.users.SaveWithMeasurement(ctx, &u, &m); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%s: measurement %s: %w", op, m.ID, ErrConflict)
		}
		return nil, internalError(s.log, op, "failed to save profile", err)
	}

	s.log.Info("profile created", "op", op, "user_id", u.ID)
	return s.dashboard(ctx, op, u)
}

// UpdateProfile applies the set fields of in to the active profile and
// returns the recomputed dashboard.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*Dashboard, error) {
	const op = "service.profile.UpdateProfile"

	if in.empty() {
		return nil, fmt.Errorf("%s: %w", op, &ValidationError{"profile", "has no fields to update"})
	}

	unlock := s.locks.Lock(profileLockKey)
	defer unlock()

	u, err := currentUser(ctx, s.users, s.log, op)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name, err := validateName(*in.Name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		u.Name = name
	}
	if in.Age != nil {
		if err := validateAge(*in.Age); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		u.Age = *in.Age
	}
	if in.Gender != nil {
		u.Gender = *in.Gender
	}
	if in.ActivityLevel != nil {
		u.ActivityLevel = *in.ActivityLevel
	}
	if in.Goal != nil {
		u.Goal = *in.Goal
	}
	if err := validateProfile(u.Gender, u.ActivityLevel, u.Goal); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u.UpdatedAt = s.now()
	if err := s.users.Save(ctx, u); err != nil {
		return nil, internalError(s.log, op, "failed to save user", err)
	}

	s.log.Info("profile updated", "op", op, "user_id", u.ID)
	return s.dashboard(ctx, op, *u)
}

// DeleteProfile removes the active profile with all its measurements and
// tracking data.
func (s *ProfileService) DeleteProfile(ctx context.Context) error {
	const op = "service.profile.DeleteProfile"

	unlock := s.locks.Lock(profileLockKey)
	defer unlock()

	u, err := currentUser(ctx, s.users, s.log, op)
	if err != nil {
		return err
	}

	deleted, err := s.users.Delete(ctx, u.ID)
	if err != nil {
		return internalError(s.log, op, "failed to delete user", err)
	}
	if !deleted {
		return fmt.Errorf("%s: profile %s: %w", op, u.ID, ErrNotFound)
	}

	s.log.Info("profile deleted", "op", op, "user_id", u.ID)
	return nil
}

func newMeasurement(userID uuid.UUID, in MeasurementInput, now time.Time) domain.Measurement {
	date := now
	if in.Date != nil {
		date = in.Date.UTC().Truncate(time.Second)
	}
	return domain.Measurement{
		ID:     uuid.New(),
		UserID: userID,
		Height: in.Height,
		Weight: in.Weight,
		Neck:   in.Neck,
		Waist:  in.Waist,
		Hip:    in.Hip,
		Arm:    in.Arm,
		Date:   date,
	}
}
