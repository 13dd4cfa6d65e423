package event

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	EventType   string     `json:"event_type" db:"event_type"`
	Date        *time.Time `json:"date" db:"date"`
	Description *string    `json:"description,omitempty" db:"description"`
	CreatedAt   *time.Time `json:"created_at" db:"created_at"`
}

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	EventType   string    `json:"event_type" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Description *string   `json:"description,omitempty"`
}
