package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/slotwise/booking/internal/domain/entities"
	"github.com/slotwise/booking/internal/domain/repositories"
	apperrors "github.com/slotwise/booking/pkg/errors"
)

// NoticeAdapter implements the NoticeRepository interface over sqlx
type NoticeAdapter struct {
	db *sqlx.DB
}

// NewNoticeAdapter creates a new notice adapter
func NewNoticeAdapter(db *sqlx.DB) repositories.NoticeRepository {
	return &NoticeAdapter{db: db}
}

// Create appends a new notice
func (a *NoticeAdapter) Create(ctx context.Context, notice *entities.Notice) error {
	if notice.ID == "" {
		notice.ID = uuid.New().String()
	}
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO notices (id, recipient_id, content, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := a.db.ExecContext(ctx, query,
		notice.ID, notice.RecipientID, notice.Content, notice.CreatedAt,
	)
	if err != nil {
		return apperrors.NewInternalError("failed to create notice", err)
	}

	return nil
}

// ListByRecipient retrieves the most recent notices for a recipient
func (a *NoticeAdapter) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*entities.Notice, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, recipient_id, content, created_at
		FROM notices
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	var notices []*entities.Notice
	if err := a.db.SelectContext(ctx, &notices, query, recipientID, limit); err != nil {
		return nil, apperrors.NewInternalError("failed to list notices", err)
	}

	return notices, nil
}
