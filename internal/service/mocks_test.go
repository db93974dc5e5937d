package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/yusufkecer/calorist-backend/internal/domain"
)

type userStoreMock struct{ mock.Mock }

func (m *userStoreMock) GetCurrent(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *userStoreMock) Save(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *userStoreMock) SaveWithMeasurement(ctx context.Context, u *domain.User, ms *domain.Measurement) error {
	return m.Called(ctx, u, ms).Error(0)
}

func (m *userStoreMock) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type measurementStoreMock struct{ mock.Mock }

func (m *measurementStoreMock) Save(ctx context.Context, ms *domain.Measurement) error {
	return m.Called(ctx, ms).Error(0)
}

func (m *measurementStoreMock) GetAll(ctx context.Context, userID uuid.UUID) ([]domain.Measurement, error) {
	args := m.Called(ctx, userID)
	all, _ := args.Get(0).([]domain.Measurement)
	return all, args.Error(1)
}

func (m *measurementStoreMock) GetLatest(ctx context.Context, userID uuid.UUID) (*domain.Measurement, error) {
	args := m.Called(ctx, userID)
	ms, _ := args.Get(0).(*domain.Measurement)
	return ms, args.Error(1)
}

func (m *measurementStoreMock) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type trackingStoreMock struct{ mock.Mock }

func (m *trackingStoreMock) GetDaily(ctx context.Context, userID uuid.UUID, day domain.Day) (*domain.DailyTracking, error) {
	args := m.Called(ctx, userID, day)
	t, _ := args.Get(0).(*domain.DailyTracking)
	return t, args.Error(1)
}

func (m *trackingStoreMock) SaveDaily(ctx context.Context, t *domain.DailyTracking) error {
	return m.Called(ctx, t).Error(0)
}

func (m *trackingStoreMock) GetGoals(ctx context.Context, userID uuid.UUID) (*domain.DailyTrackingGoals, error) {
	args := m.Called(ctx, userID)
	g, _ := args.Get(0).(*domain.DailyTrackingGoals)
	return g, args.Error(1)
}

func (m *trackingStoreMock) SaveGoals(ctx context.Context, g *domain.DailyTrackingGoals) error {
	return m.Called(ctx, g).Error(0)
}

func (m *trackingStoreMock) GetWeekly(ctx context.Context, userID uuid.UUID, start domain.Day) ([]domain.DailyTracking, error) {
	args := m.Called(ctx, userID, start)
	days, _ := args.Get(0).([]domain.DailyTracking)
	return days, args.Error(1)
}

func (m *trackingStoreMock) GetMonthly(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]domain.DailyTracking, error) {
	args := m.Called(ctx, userID, year, month)
	days, _ := args.Get(0).([]domain.DailyTracking)
	return days, args.Error(1)
}

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func testUser() *domain.User {
	return &domain.User{
		ID:            uuid.MustParse("6f1c2f6e-3b0a-4f4e-9d55-0d2a4a8e7b11"),
		Name:          "Ada",
		Age:           24,
		Gender:        domain.GenderMale,
		ActivityLevel: domain.ActivityModeratelyActive,
		Goal:          domain.GoalMaintainWeight,
		CreatedAt:     fixedNow.AddDate(0, -1, 0),
		UpdatedAt:     fixedNow.AddDate(0, -1, 0),
	}
}

func testMeasurementInput() MeasurementInput {
	return MeasurementInput{Height: 175, Weight: 75, Neck: 38, Waist: 80, Hip: 95, Arm: 32}
}
