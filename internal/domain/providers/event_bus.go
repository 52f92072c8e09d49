package providers

import (
	"context"
	"fmt"

	"github.com/slotwise/booking/internal/domain/entities"
)

// NoticeChannel returns the push channel carrying notices for a recipient
func NoticeChannel(recipientID string) string {
	return fmt.Sprintf("notices:%s", recipientID)
}

// EventBus defines the interface for the real-time notice push channel
type EventBus interface {
	// Publish delivers a notice to all subscribers of a channel
	Publish(ctx context.Context, channel string, notice *entities.Notice) error

	// Subscribe subscribes to notices on a channel; the returned channel
	// is closed when ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *entities.Notice, error)

	// Close shuts down the bus and all subscriptions
	Close() error
}
