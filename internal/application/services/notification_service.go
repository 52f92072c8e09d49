package services

import (
	"context"

	"github.com/slotwise/booking/internal/domain/entities"
	"github.com/slotwise/booking/internal/domain/providers"
	"github.com/slotwise/booking/internal/domain/repositories"
	"github.com/slotwise/booking/internal/infrastructure/observability"
)

// NotificationService creates user-facing notices and pushes them on the
// real-time channel.
type NotificationService struct {
	notices repositories.NoticeRepository
	bus     providers.EventBus
}

// NewNotificationService creates a new notification service. The event
// bus may be nil, in which case notices are only persisted.
func NewNotificationService(notices repositories.NoticeRepository, bus providers.EventBus) *NotificationService {
	return &NotificationService{
		notices: notices,
		bus:     bus,
	}
}

// NotifyAppointment appends a notice for the recipient and publishes it
// on the recipient's push channel. Persistence failures are returned;
// push failures are logged only, since the durable notice already exists.
func (n *NotificationService) NotifyAppointment(ctx context.Context, recipientID, content string) (*entities.Notice, error) {
	notice := &entities.Notice{
		RecipientID: recipientID,
		Content:     content,
	}

	if err := n.notices.Create(ctx, notice); err != nil {
		return nil, err
	}

	if n.bus != nil {
		channel := providers.NoticeChannel(recipientID)
		if err := n.bus.Publish(ctx, channel, notice); err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Str("channel", channel).
				Str("notice_id", notice.ID).
				Err(err).
				Msg("failed to push notice")
		}
	}

	return notice, nil
}

// ListNotices returns the most recent notices for a recipient
func (n *NotificationService) ListNotices(ctx context.Context, recipientID string, limit int) ([]*entities.Notice, error) {
	return n.notices.ListByRecipient(ctx, recipientID, limit)
}
