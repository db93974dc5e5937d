package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yusufkecer/calorist-backend/internal/domain"
)

const (
	MinHeight = 100.0
	MaxHeight = 250.0
	MinWeight = 30.0
	MaxWeight = 300.0
	MinAge    = 13
	MaxAge    = 100

	maxNameLength = 100

	// maxClockSkew is how far past the server clock a measurement may be
	// dated, to allow for clients in other time zones.
	maxClockSkew = 24 * time.Hour
)

var earliestMeasurement = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// MeasurementInput carries the body dimensions of a new measurement.
// A nil Date means now.
type MeasurementInput struct {
	Height float64    `json:"height"`
	Weight float64    `json:"weight"`
	Neck   float64    `json:"neck"`
	Waist  float64    `json:"waist"`
	Hip    float64    `json:"hip"`
	Arm    float64    `json:"arm"`
	Date   *time.Time `json:"date,omitempty"`
}

func (in MeasurementInput) validate(now time.Time) error {
	if in.Height < MinHeight || in.Height > MaxHeight {
		return &ValidationError{"height", fmt.Sprintf("must be between %g and %g cm", MinHeight, MaxHeight)}
	}
	if in.Weight < MinWeight || in.Weight > MaxWeight {
		return &ValidationError{"weight", fmt.Sprintf("must be between %g and %g kg", MinWeight, MaxWeight)}
	}
	for _, c := range []struct {
		field string
		value float64
	}{
		{"neck", in.Neck},
		{"waist", in.Waist},
		{"hip", in.Hip},
		{"arm", in.Arm},
	} {
		if !(c.value > 0) {
			return &ValidationError{c.field, "must be greater than 0"}
		}
	}
	if in.Date != nil {
		if in.Date.Before(earliestMeasurement) || in.Date.After(now.Add(maxClockSkew)) {
			return &ValidationError{"date", "is out of range"}
		}
	}
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{"name", "is required"}
	}
	if len([]rune(name)) > maxNameLength {
		return "", &ValidationError{"name", fmt.Sprintf("must be at most %d characters", maxNameLength)}
	}
	return name, nil
}

func validateAge(age int) error {
	if age < MinAge || age > MaxAge {
		return &ValidationError{"age", fmt.Sprintf("must be between %d and %d", MinAge, MaxAge)}
	}
	return nil
}

func validateProfile(g domain.Gender, a domain.ActivityLevel, goal domain.Goal) error {
	if !g.Valid() {
		return &ValidationError{"gender", "is not supported"}
	}
	if !a.Valid() {
		return &ValidationError{"activityLevel", "is not supported"}
	}
	if !goal.Valid() {
		return &ValidationError{"goal", "is not supported"}
	}
	return nil
}

func validateIntake(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return &ValidationError{field, "must be a non-negative number"}
	}
	return nil
}

func validateGoal(field string, v float64) error {
	if math.IsInf(v, 0) || !(v > 0) {
		return &ValidationError{field, "must be greater than 0"}
	}
	return nil
}
