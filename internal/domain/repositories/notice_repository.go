package repositories

import (
	"context"

	"github.com/slotwise/booking/internal/domain/entities"
)

// NoticeRepository defines the interface for the append-only notice store
type NoticeRepository interface {
	// Create appends a new notice
	Create(ctx context.Context, notice *entities.Notice) error

	// ListByRecipient retrieves the most recent notices for a recipient
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*entities.Notice, error)
}
