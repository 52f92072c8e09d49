package repositories

import (
	"context"
	"time"

	"github.com/slotwise/booking/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// Create inserts a new appointment. The storage layer enforces slot
	// uniqueness per provider for non-canceled rows and surfaces a
	// violation as a conflict error
	Create(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// FindActiveByProviderAndSlot returns the non-canceled appointment
	// occupying the given provider slot, or nil when the slot is free
	FindActiveByProviderAndSlot(ctx context.Context, providerID string, slot time.Time) (*entities.Appointment, error)

	// ListByUser retrieves appointments booked by a user
	ListByUser(ctx context.Context, userID string, filter AppointmentFilter) ([]*entities.Appointment, error)
}

// AppointmentFilter defines filters for listing appointments
type AppointmentFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
