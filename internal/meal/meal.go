package meal

import (
	"time"

	"github.com/google/uuid"
)

type MealPeriod string

const (
	PeriodBreakfast MealPeriod = "breakfast"
	PeriodLunch     MealPeriod = "lunch"
	PeriodDinner    MealPeriod = "dinner"
	PeriodLateNight MealPeriod = "late_night"
	PeriodSnack     MealPeriod = "snack"
)

type Meal struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	Name       string     `json:"name" db:"name"`
	Period     string     `json:"period" db:"period"`
	Calories   float64    `json:"calories" db:"calories"`
	Protein    float64    `json:"protein" db:"protein"`
	Carbs      float64    `json:"carbs" db:"carbs"`
	Fat        float64    `json:"fat" db:"fat"`
	UploadTime *time.Time `json:"upload_time" db:"upload_time"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
