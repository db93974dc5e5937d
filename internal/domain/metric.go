package domain

import (
	"encoding/json"
	"math"
)

type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese1      BMICategory = "obese1"
	BMIObese2      BMICategory = "obese2"
	BMIObese3      BMICategory = "obese3"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// BodyMetrics is derived from one Measurement and one User and is never stored.
// A metric whose inputs fall outside the formula's domain holds NaN.
type BodyMetrics struct {
	BMI                float64
	BMICategory        BMICategory
	BodyFatPercentage  float64
	WaistToHipRatio    float64
	WaistToHipCategory RiskLevel
	IdealWeight        float64
	BMR                float64
	TDEE               float64
	DailyCalorieNeeds  float64
	ArmCircumference   float64
}

// Valid reports whether every numeric metric is finite.
func (b BodyMetrics) Valid() bool {
	for _, v := range []float64{
		b.BMI, b.BodyFatPercentage, b.WaistToHipRatio, b.IdealWeight,
		b.BMR, b.TDEE, b.DailyCalorieNeeds, b.ArmCircumference,
	} {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

// MarshalJSON writes non-finite metrics as null.
func (b BodyMetrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		BMI                *float64    `json:"bmi"`
		BMICategory        BMICategory `json:"bmiCategory"`
		BodyFatPercentage  *float64    `json:"bodyFatPercentage"`
		WaistToHipRatio    *float64    `json:"waistToHipRatio"`
		WaistToHipCategory RiskLevel   `json:"waistToHipCategory"`
		IdealWeight        *float64    `json:"idealWeight"`
		BMR                *float64    `json:"bmr"`
		TDEE               *float64    `json:"tdee"`
		DailyCalorieNeeds  *float64    `json:"dailyCalorieNeeds"`
		ArmCircumference   *float64    `json:"armCircumference"`
	}{
		BMI:                finite(b.BMI),
		BMICategory:        b.BMICategory,
		BodyFatPercentage:  finite(b.BodyFatPercentage),
		WaistToHipRatio:    finite(b.WaistToHipRatio),
		WaistToHipCategory: b.WaistToHipCategory,
		IdealWeight:        finite(b.IdealWeight),
		BMR:                finite(b.BMR),
		TDEE:               finite(b.TDEE),
		DailyCalorieNeeds:  finite(b.DailyCalorieNeeds),
		ArmCircumference:   finite(b.ArmCircumference),
	})
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finite(v float64) *float64 {
	if !isFinite(v) {
		return nil
	}
	return &v
}
