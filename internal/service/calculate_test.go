package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yusufkecer/calorist-backend/internal/domain"
)

func TestCalculate(t *testing.T) {
	metrics, err := Calculate(CalculateInput{
		Age:           24,
		Gender:        domain.GenderMale,
		ActivityLevel: domain.ActivityModeratelyActive,
		Goal:          domain.GoalMaintainWeight,
		Measurement:   testMeasurementInput(),
	})
	require.NoError(t, err)
	require.InDelta(t, 1728.75, metrics.BMR, 1e-9)
	require.Equal(t, domain.RiskLow, metrics.WaistToHipCategory)
	require.True(t, metrics.Valid())
}

func TestCalculateValidates(t *testing.T) {
	in := CalculateInput{
		Age:           24,
		Gender:        domain.GenderFemale,
		ActivityLevel: domain.ActivitySedentary,
		Goal:          domain.GoalMaintainWeight,
		Measurement:   testMeasurementInput(),
	}
	in.Measurement.Arm = 0

	_, err := Calculate(in)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
