package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

func (g *Gender) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, (*string)(g), "gender", func(s string) bool { return Gender(s).Valid() })
}

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightlyActive"
	ActivityModeratelyActive ActivityLevel = "moderatelyActive"
	ActivityVeryActive       ActivityLevel = "veryActive"
	ActivityExtremelyActive  ActivityLevel = "extremelyActive"
)

// ActivityLevels lists every level in ascending order of activity.
var ActivityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLightlyActive,
	ActivityModeratelyActive,
	ActivityVeryActive,
	ActivityExtremelyActive,
}

// Multiplier returns the TDEE factor for the level, or 0 for an unknown level.
func (a ActivityLevel) Multiplier() float64 {
	switch a {
	case ActivitySedentary:
		return 1.2
	case ActivityLightlyActive:
		return 1.375
	case ActivityModeratelyActive:
		return 1.55
	case ActivityVeryActive:
		return 1.725
	case ActivityExtremelyActive:
		return 1.9
	default:
		return 0
	}
}

func (a ActivityLevel) Valid() bool {
	return a.Multiplier() != 0
}

func (a *ActivityLevel) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, (*string)(a), "activity level", func(s string) bool { return ActivityLevel(s).Valid() })
}

type Goal string

const (
	GoalLoseWeight     Goal = "loseWeight"
	GoalMaintainWeight Goal = "maintainWeight"
	GoalGainWeight     Goal = "gainWeight"
)

func (g Goal) Valid() bool {
	switch g {
	case GoalLoseWeight, GoalMaintainWeight, GoalGainWeight:
		return true
	}
	return false
}

func (g *Goal) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, (*string)(g), "goal", func(s string) bool { return Goal(s).Valid() })
}

// User is the single profile of the installation.
type User struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func unmarshalEnum(b []byte, dst *string, name string, valid func(string) bool) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !valid(s) {
		return fmt.Errorf("unknown %s %q", name, s)
	}
	*dst = s
	return nil
}
