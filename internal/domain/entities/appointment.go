package entities

import (
	"time"
)

// Appointment represents a booked slot between a user and a provider.
// Date keeps the instant exactly as the caller requested it; Slot is the
// hour-truncated instant used for availability and uniqueness.
type Appointment struct {
	ID         string     `json:"id" db:"id"`
	UserID     string     `json:"user_id" db:"user_id"`
	ProviderID string     `json:"provider_id" db:"provider_id"`
	Date       time.Time  `json:"date" db:"date"`
	Slot       time.Time  `json:"slot" db:"slot"`
	CanceledAt *time.Time `json:"canceled_at,omitempty" db:"canceled_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// Active reports whether the appointment still occupies its slot.
func (a *Appointment) Active() bool {
	return a.CanceledAt == nil
}

// SlotFor returns the hour-truncated slot containing t.
func SlotFor(t time.Time) time.Time {
	return t.Truncate(time.Hour)
}
