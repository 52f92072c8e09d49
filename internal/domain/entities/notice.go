package entities

import "time"

// Notice is an append-only, user-facing message. One is created for the
// provider on every successful booking.
type Notice struct {
	ID          string    `json:"id" db:"id"`
	RecipientID string    `json:"recipient_id" db:"recipient_id"`
	Content     string    `json:"content" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
