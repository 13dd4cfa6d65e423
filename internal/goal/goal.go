package goal

import (
	"time"

	"github.com/google/uuid"
)

// Fallbacks applied per field when a stored goal is missing or zero.
const (
	DefaultCalories = 2000
	DefaultProtein  = 150
	DefaultCarbs    = 250
	DefaultFat      = 67
)

type DailyGoal struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	UserID   uuid.UUID  `json:"user_id" db:"user_id"`
	Date     *time.Time `json:"date" db:"date"`
	Calories float64    `json:"calories" db:"calories"`
	Protein  float64    `json:"protein" db:"protein"`
	Carbs    float64    `json:"carbs" db:"carbs"`
	Fat      float64    `json:"fat" db:"fat"`
}

type UpsertGoalRequest struct {
	Date     time.Time `json:"date" validate:"required"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
}
