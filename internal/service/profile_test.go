package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yusufkecer/calorist-backend/internal/domain"
	"github.com/yusufkecer/calorist-backend/internal/logger"
	"github.com/yusufkecer/calorist-backend/internal/repository"
)

func newProfileServiceForTest(users *userStoreMock, measurements *measurementStoreMock) *ProfileService {
	svc := NewProfileService(users, measurements, NewKeyedMutex(), logger.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestProfileService_DashboardNoProfile(t *testing.T) {
	users := &userStoreMock{}
	users.On("GetCurrent", mock.Anything).Return(nil, nil)

	_, err := newProfileServiceForTest(users, &measurementStoreMock{}).Dashboard(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProfileService_DashboardStorageError(t *testing.T) {
	users := &userStoreMock{}
	users.On("GetCurrent", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := newProfileServiceForTest(users, &measurementStoreMock{}).Dashboard(context.Background())
	require.ErrorIs(t, err, ErrInternal)
	require.NotContains(t, err.Error(), "connection refused")
}

func TestProfileService_DashboardWithoutMeasurement(t *testing.T) {
	u := testUser()
	users := &userStoreMock{}
	users.On("GetCurrent", mock.Anything).Return(u, nil)
	measurements := &measurementStoreMock{}
	measurements.On("GetLatest", mock.Anything, u.ID).Return(nil, nil)

	d, err := newProfileServiceForTest(users, measurements).Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, *u, d.User)
	require.Nil(t, d.Measurement)
	require.Nil(t, d.Metrics)
	require.Zero(t, d.DailyCalories)
}

func TestProfileService_DashboardComputesMetrics(t *testing.T) {
	u := testUser()
	m := newMeasurement(u.ID, testMeasurementInput(), fixedNow)
	users := &userStoreMock{}
	users.On("GetCurrent", mock.Anything).Return(u, nil)
	measurements := &measurementStoreMock{}
	measurements.On("GetLatest", mock.Anything, u.ID).Return(&m, nil)

	d, err := newProfileServiceForTest(users, measurements).Dashboard(context.Background())
	require.NoError(t, err)
	require.NotNil(t, d.Metrics)
	require.InDelta(t, 24.49, d.Metrics.BMI, 0.01)
	require.Equal(t, domain.BMINormal, d.Metrics.BMICategory)
	require.InDelta(t, 2679.5625, d.Metrics.DailyCalorieNeeds, 1e-9)
	require.Equal(t, d.Metrics.DailyCalorieNeeds, d.DailyCalories)
	require.Equal(t, 32.0, d.Metrics.ArmCircumference)
}

func TestProfileService_SetupRejectsInvalidInput(t *testing.T) {
	valid := SetupInput{
		Name:          "Ada",
		Age:           24,
		Gender:        domain.GenderMale,
		ActivityLevel: domain.ActivitySedentary,
		Goal:          domain.GoalLoseWeight,
		Measurement:   testMeasurementInput(),
	}

	tests := []struct {
		name   string
		modify func(*SetupInput)
		field  string
	}{
		{"blank name", func(in *SetupInput) { in.Name = "   " }, "name"},
		{"too young", func(in *SetupInput) { in.Age = 12 }, "age"},
		{"too old", func(in *SetupInput) { in.Age = 101 }, "age"},
		{"unknown gender", func(in *SetupInput) { in.Gender = "other" }, "gender"},
		{"unknown activity", func(in *SetupInput) { in.ActivityLevel = "" }, "activityLevel"},
		{"unknown goal", func(in *SetupInput) { in.Goal = "bulk" }, "goal"},
		{"short", func(in *SetupInput) { in.Measurement.Height = 99.9 }, "height"},
		{"tall", func(in *SetupInput) { in.Measurement.Height = 250.1 }, "height"},
		{"light", func(in *SetupInput) { in.Measurement.Weight = 29 }, "weight"},
		{"heavy", func(in *SetupInput) { in.Measurement.Weight = 301 }, "weight"},
		{"zero neck", func(in *SetupInput) { in.Measurement.Neck = 0 }, "neck"},
		{"negative hip", func(in *SetupInput) { in.Measurement.Hip = -1 }, "hip"},
		{"zero date", func(in *SetupInput) { in.Measurement.Date = &time.Time{} }, "date"},
		{"ancient date", func(in *SetupInput) {
			d := time.Date(999, time.March, 1, 0, 0, 0, 0, time.UTC)
			in.Measurement.Date = &d
		}, "date"},
		{"future date", func(in *SetupInput) {
			d := fixedNow.Add(48 * time.Hour)
			in.Measurement.Date = &d
		}, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.modify(&in)

			// No expectations: any store call fails the test.
			_, err := newProfileServiceForTest(&userStoreMock{}, &measurementStoreMock{}).Setup(context.Background(), in)
			require.ErrorIs(t, err, ErrInvalidArgument)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestProfileService_SetupAcceptsBoundaries(t *testing.T) {
	in := SetupInput{
		Name:          "Ada",
		Age:           MinAge,
		Gender:        domain.GenderFemale,
		ActivityLevel: domain.ActivityExtremelyActive,
		Goal:          domain.GoalGainWeight,
		Measurement:   MeasurementInput{Height: MinHeight, Weight: MaxWeight, Neck: 1, Waist: 1, Hip: 1, Arm: 1},
	}

	users := &userStoreMock{}
	users.On("SaveWithMeasurement", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	measurements := &measurementStoreMock{}
	measurements.On("GetLatest", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := newProfileServiceForTest(users, measurements).Setup(context.Background(), in)
	require.NoError(t, err)
}

func TestProfileService_Setup(t *testing.T) {
	var saved domain.User
	var savedMeasurement domain.Measurement

	users := &userStoreMock{}
	users.On("SaveWithMeasurement", mock.Anything, mock.AnythingOfType("*domain.User"), mock.AnythingOfType("*domain.Measurement")).
		Run(func(args mock.Arguments) {
			saved = *args.Get(1).(*domain.User)
			savedMeasurement = *args.Get(2).(*domain.Measurement)
		}).
		Return(nil)
	measurements := &measurementStoreMock{}
	measurements.On("GetLatest", mock.Anything, mock.Anything).Return(nil, nil)

	in := SetupInput{
		Name:          "  Ada ",
		Age:           24,
		Gender:        domain.GenderMale,
		ActivityLevel: domain.ActivityModeratelyActive,
		Goal:          domain.GoalLoseWeight,
		Measurement:   testMeasurementInput(),
	}
	_, err := newProfileServiceForTest(users, measurements).Setup(context.Background(), in)
	require.NoError(t, err)

	require.Equal(t, "Ada", saved.Name)
	require.Equal(t, domain.GoalLoseWeight, saved.Goal)
	require.Equal(t, fixedNow, saved.CreatedAt)
	require.Equal(t, fixedNow, saved.UpdatedAt)
	require.Equal(t, saved.ID, savedMeasurement.UserID)
	require.Equal(t, fixedNow, savedMeasurement.Date)
	require.Equal(t, 75.0, savedMeasurement.Weight)
	users.AssertExpectations(t)
	users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	measurements.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProfileService_SetupReturnsDashboard(t *testing.T) {
	users := &userStoreMock{}
	users.On("SaveWithMeasurement", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	latest := newMeasurement(testUser().ID, testMeasurementInput(), fixedNow)
	measurements := &measurementStoreMock{}
	measurements.On("GetLatest", mock.Anything, mock.Anything).Return(&latest, nil)

	d, err := newProfileServiceForTest(users, measurements).Setup(context.Background(), SetupInput{
		Name:          "Ada",
		Age:           24,
		Gender:        domain.GenderMale,
		ActivityLevel: domain.ActivityModeratelyActive,
		Goal:          domain.GoalLoseWeight,
		Measurement:   testMeasurementInput(),
	})
	require.NoError(t, err)
	require.NotNil(t, d.Metrics)
	require.InDelta(t, 2679.5625-500, d.DailyCalories, 1e-9)
}

func TestProfileService_SetupDuplicateMeasurement(t *testing.T) {
	users := &userStoreMock{}
	users.On("SaveWithMeasurement", mock.Anything, mock.Anything, mock.Anything).Return(repository.ErrDuplicate)
	measurements := &measurementStoreMock{}

	_, err := newProfileServiceForTest(users, measurements).Setup(context.Background(), SetupInput{
		Name:          "Ada",
		Age:           24,
		Gender:        domain.GenderMale,
		ActivityLevel: domain.ActivityModeratelyActive,
		Goal:          domain.GoalLoseWeight,
		Measurement:   testMeasurementInput(),
	})
	require.ErrorIs(t, err, ErrConflict)
}

func TestProfileService_SetupStorageError(t *testing.T) {
	users := &userStoreMock{}
	users.On("SaveWithMeasurement", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("constraint failed"))
	measurements := &measurementStoreMock{}

	_, err := newProfileServiceForTest(users, measurements).Setup(context.Background(), SetupInput{
		Name:          "Ada",
		Age:           24,
		Gender:        domain.GenderMale,
		ActivityLevel: domain.ActivityModeratelyActive,
		Goal:          domain.GoalLoseWeight,
		Measurement:   testMeasurementInput(),
	})
	require.ErrorIs(t, err, ErrInternal)
	measurements.AssertNotCalled(t, "GetLatest", mock.Anything, mock.Anything)
}

func TestProfileService_UpdateProfile(t *testing.T) {
	u := testUser()
	created := u.CreatedAt

	users := &userStoreMock{}
	users.On("GetCurrent", mock.Anything).Return(u, nil)
	users.On("Save", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	measurements := &measurementStoreMock{}
	measurements.On("GetLatest", mock.Anything, u.ID).Return(nil, nil)

	goal := domain.GoalGainWeight
	age := 30
	d, err := newProfileServiceForTest(users, measurements).UpdateProfile(context.Background(), UpdateProfileInput{
		Goal: &goal,
		Age:  &age,
	})
	require.NoError(t, err)

	require.Equal(t, u.ID, d.User.ID)
	require.Equal(t, "Ada", d.User.Name)
	require.Equal(t, 30, d.User.Age)
	require.Equal(t, domain.GoalGainWeight, d.User.Goal)
	require.Equal(t, domain.ActivityModeratelyActive, d.User.ActivityLevel)
	require.Equal(t, created, d.User.CreatedAt)
	require.Equal(t, fixedNow, d.User.UpdatedAt)
	users.AssertCalled(t, "Save", mock.Anything, mock.MatchedBy(func(saved *domain.User) bool {
		return saved.ID == u.ID && saved.Goal == domain.GoalGainWeight
	}))
}

func TestProfileService_UpdateProfileRecomputesCalories(t *testing.T) {
	u := testUser()
	m := newMeasurement(u.ID, testMeasurementInput(), fixedNow)

	users := &userStoreMock{}
	users.On("GetCurrent", mock.Anything).Return(u, nil)
	users.On("Save", mock.Anything, mock.Anything).Return(nil)
	measurements := &measurementStoreMock{}
	measurements.On("GetLatest", mock.Anything, u.ID).Return(&m, nil)

	level := domain.ActivitySedentary
	d, err := newProfileServiceForTest(users, measurements).UpdateProfile(context.Background(), UpdateProfileInput{
		ActivityLevel: &level,
	})
	require.NoError(t, err)
	require.InDelta(t, 1728.75*1.2, d.DailyCalories, 1e-9)
}

func TestProfileService_UpdateProfileValidation(t *testing.T) {
	_, err := newProfileServiceForTest(&userStoreMock{}, &measurementStoreMock{}).
		UpdateProfile(context.Background(), UpdateProfileInput{})
	require.ErrorIs(t, err, ErrInvalidArgument)

	users := &userStoreMock{}
	users.On("GetCurrent", mock.Anything).Return(testUser(), nil)
	age := 5
	_, err = newProfileServiceForTest(users, &measurementStoreMock{}).
		UpdateProfile(context.Background(), UpdateProfileInput{Age: &age})
	require.ErrorIs(t, err, ErrInvalidArgument)
	users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProfileService_DeleteProfile(t *testing.T) {
	u := testUser()
	users := &userStoreMock{}
	users.On("GetCurrent", mock.Anything).Return(u, nil)
	users.On("Delete", mock.Anything, u.ID).Return(true, nil)

	require.NoError(t, newProfileServiceForTest(users, &measurementStoreMock{}).DeleteProfile(context.Background()))
	users.AssertExpectations(t)
}

func TestProfileService_DeleteProfileMissing(t *testing.T) {
	users := &userStoreMock{}
	users.On("GetCurrent", mock.Anything).Return(nil, nil)

	err := newProfileServiceForTest(users, &measurementStoreMock{}).DeleteProfile(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}
