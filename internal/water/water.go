package water

import (
	"time"

	"github.com/google/uuid"
)

// DailyGoalMl is the fixed hydration target reported in statistics.
const DailyGoalMl = 2000

type Intake struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	UserID   uuid.UUID  `json:"user_id" db:"user_id"`
	Date     *time.Time `json:"date" db:"date"`
	AmountMl float64    `json:"amount_ml" db:"amount_ml"`
}

type LogWaterRequest struct {
	Date     *time.Time `json:"date,omitempty"`
	AmountMl float64    `json:"amount_ml" validate:"required,gt=0"`
}
