package shopping

import (
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Quantity  string    `json:"quantity,omitempty" db:"quantity"`
	Checked   bool      `json:"checked" db:"checked"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type AddItemRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity string `json:"quantity,omitempty"`
}
