package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/yusufkecer/calorist-backend/internal/calculator"
	"github.com/yusufkecer/calorist-backend/internal/domain"
)

// CalculateInput is a profile and a measurement that are not stored.
type CalculateInput struct {
	Age           int                  `json:"age"`
	Gender        domain.Gender        `json:"gender"`
	ActivityLevel domain.ActivityLevel `json:"activityLevel"`
	Goal          domain.Goal          `json:"goal"`
	Measurement   MeasurementInput     `json:"measurement"`
}

// Calculate validates in and computes its body metrics without touching
// storage.
func Calculate(in CalculateInput) (domain.BodyMetrics, error) {
	const op = "service.Calculate"

	if err := validateAge(in.Age); err != nil {
		return domain.BodyMetrics{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := validateProfile(in.Gender, in.ActivityLevel, in.Goal); err != nil {
		return domain.BodyMetrics{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := in.Measurement.validate(clock()); err != nil {
		return domain.BodyMetrics{}, fmt.Errorf("%s: %w", op, err)
	}

	u := domain.User{
		Age:           in.Age,
		Gender:        in.Gender,
		ActivityLevel: in.ActivityLevel,
		Goal:          in.Goal,
	}
	m := newMeasurement(uuid.Nil, in.Measurement, clock())
	return calculator.ComputeBodyMetrics(m, u), nil
}
