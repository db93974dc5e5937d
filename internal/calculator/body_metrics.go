package calculator

import "github.com/yusufkecer/calorist-backend/internal/domain"

// ComputeBodyMetrics derives every body metric from one measurement and the
// user's profile. The result depends on nothing but its arguments.
func ComputeBodyMetrics(m domain.Measurement, u domain.User) domain.BodyMetrics {
	bmi := BMI(m.Weight, m.Height)
	whr := WaistToHipRatio(m.Waist, m.Hip)
	bmr := BMR(m.Weight, m.Height, u.Age, u.Gender)
	tdee := TDEE(bmr, u.ActivityLevel)

	return domain.BodyMetrics{
		BMI:                bmi,
		BMICategory:        BMICategoryOf(bmi),
		BodyFatPercentage:  BodyFatPercentage(m.Height, m.Weight, u.Age, u.Gender, m.Waist, m.Neck, m.Hip),
		WaistToHipRatio:    whr,
		WaistToHipCategory: WaistToHipCategoryOf(whr, u.Gender),
		IdealWeight:        IdealWeight(m.Height, u.Gender),
		BMR:                bmr,
		TDEE:               tdee,
		DailyCalorieNeeds:  DailyCalorieTarget(tdee, u.Goal),
		ArmCircumference:   m.Arm,
	}
}

// DailyCalories returns the goal-adjusted calorie target for the user at the
// given measurement.
func DailyCalories(m domain.Measurement, u domain.User) float64 {
	return DailyCalorieTarget(TDEE(BMR(m.Weight, m.Height, u.Age, u.Gender), u.ActivityLevel), u.Goal)
}
