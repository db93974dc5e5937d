package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultDailyCalorieGoal = 2000.0
	DefaultDailyWaterGoal   = 2.5
)

// DailyTracking is the intake logged for one user on one calendar day.
// WaterIntake is in liters.
type DailyTracking struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	Date          Day       `json:"date"`
	CalorieIntake float64   `json:"calorieIntake"`
	WaterIntake   float64   `json:"waterIntake"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type DailyTrackingGoals struct {
	UserID           uuid.UUID `json:"userId"`
	DailyCalorieGoal float64   `json:"dailyCalorieGoal"`
	DailyWaterGoal   float64   `json:"dailyWaterGoal"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// DefaultGoals returns the goals used until the user stores their own.
func DefaultGoals(userID uuid.UUID) DailyTrackingGoals {
	return DailyTrackingGoals{
		UserID:           userID,
		DailyCalorieGoal: DefaultDailyCalorieGoal,
		DailyWaterGoal:   DefaultDailyWaterGoal,
	}
}
