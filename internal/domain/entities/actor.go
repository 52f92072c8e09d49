package entities

import (
	"time"
)

// Actor represents a person in the system, either a regular user or a
// provider able to receive appointments.
type Actor struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	IsProvider bool      `json:"is_provider" db:"is_provider"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
