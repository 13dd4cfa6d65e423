package badge

import (
	"time"

	"github.com/google/uuid"
)

type Badge struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Icon        string    `json:"icon" db:"icon"`
	Points      int       `json:"points" db:"points"`
	AchievedAt  time.Time `json:"achieved_at" db:"achieved_at"`
}
