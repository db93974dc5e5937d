// Package calculator holds the anthropometric formulas behind the body
// metrics: Mifflin-St Jeor BMR, TDEE, BMI, US Navy body fat, waist-to-hip
// ratio and the Devine ideal weight.
//
// Every function is pure. Inputs outside a formula's domain (for example a
// waist not larger than the neck in the body fat estimate) yield NaN instead
// of an error; range checks belong to the caller.
package calculator

import (
	"math"

	"github.com/yusufkecer/calorist-backend/internal/domain"
)

const (
	// LoseWeightDeficit is subtracted from TDEE for the lose-weight goal.
	LoseWeightDeficit = 500.0
	// GainWeightSurplus is added to TDEE for the gain-weight goal.
	GainWeightSurplus = 300.0
)

// BMR returns the basal metabolic rate in kcal/day.
func BMR(weightKg, heightCm float64, age int, gender domain.Gender) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch gender {
	case domain.GenderMale:
		return base + 5
	case domain.GenderFemale:
		return base - 161
	default:
		return math.NaN()
	}
}

// TDEE scales bmr by the activity multiplier.
func TDEE(bmr float64, level domain.ActivityLevel) float64 {
	m := level.Multiplier()
	if m == 0 {
		return math.NaN()
	}
	return bmr * m
}

// DailyCalorieTarget applies the fixed goal offset to tdee.
func DailyCalorieTarget(tdee float64, goal domain.Goal) float64 {
	switch goal {
	case domain.GoalLoseWeight:
		return tdee - LoseWeightDeficit
	case domain.GoalMaintainWeight:
		return tdee
	case domain.GoalGainWeight:
		return tdee + GainWeightSurplus
	default:
		return math.NaN()
	}
}

func BMI(weightKg, heightCm float64) float64 {
	h := heightCm / 100
	return weightKg / (h * h)
}

// BMICategoryOf buckets bmi into half-open intervals. NaN has no category.
func BMICategoryOf(bmi float64) domain.BMICategory {
	switch {
	case math.IsNaN(bmi):
		return ""
	case bmi < 18.5:
		return domain.BMIUnderweight
	case bmi < 25:
		return domain.BMINormal
	case bmi < 30:
		return domain.BMIOverweight
	case bmi < 35:
		return domain.BMIObese1
	case bmi < 40:
		return domain.BMIObese2
	default:
		return domain.BMIObese3
	}
}

// BodyFatPercentage estimates body fat with the US Navy method. weightKg and
// age do not enter the formula.
func BodyFatPercentage(heightCm, weightKg float64, age int, gender domain.Gender, waist, neck, hip float64) float64 {
	switch gender {
	case domain.GenderMale:
		return 495/(1.0324-0.19077*log10(waist-neck)+0.15456*log10(heightCm)) - 450
	case domain.GenderFemale:
		return 495/(1.29579-0.35004*log10(waist+hip-neck)+0.22100*log10(heightCm)) - 450
	default:
		return math.NaN()
	}
}

func WaistToHipRatio(waist, hip float64) float64 {
	return waist / hip
}

// WaistToHipCategoryOf maps a waist-to-hip ratio to a health risk level.
func WaistToHipCategoryOf(ratio float64, gender domain.Gender) domain.RiskLevel {
	var low, moderate float64
	switch gender {
	case domain.GenderMale:
		low, moderate = 0.90, 1.00
	case domain.GenderFemale:
		low, moderate = 0.80, 0.85
	default:
		return ""
	}
	switch {
	case math.IsNaN(ratio):
		return ""
	case ratio < low:
		return domain.RiskLow
	case ratio < moderate:
		return domain.RiskModerate
	default:
		return domain.RiskHigh
	}
}

// IdealWeight uses the Devine formula.
func IdealWeight(heightCm float64, gender domain.Gender) float64 {
	inchesOver5ft := (heightCm - 152.4) / 2.54
	switch gender {
	case domain.GenderMale:
		return 50 + 2.3*inchesOver5ft
	case domain.GenderFemale:
		return 45.5 + 2.3*inchesOver5ft
	default:
		return math.NaN()
	}
}

// log10 maps non-positive arguments to NaN; math.Log10(0) would be -Inf.
func log10(x float64) float64 {
	if x <= 0 {
		return math.NaN()
	}
	return math.Log10(x)
}
