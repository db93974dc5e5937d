package domain

import (
	"time"

	"github.com/google/uuid"
)

// Measurement is an immutable snapshot of body dimensions.
// Lengths are in centimeters, weight in kilograms.
type Measurement struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	Height float64   `json:"height"`
	Weight float64   `json:"weight"`
	Neck   float64   `json:"neck"`
	Waist  float64   `json:"waist"`
	Hip    float64   `json:"hip"`
	Arm    float64   `json:"arm"`
	Date   time.Time `json:"date"`
}
