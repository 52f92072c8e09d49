package repositories

import (
	"context"

	"github.com/slotwise/booking/internal/domain/entities"
)

// ActorRepository defines the interface for actor lookups. Actors are
// owned elsewhere; the booking flow only reads them.
type ActorRepository interface {
	// GetByID retrieves an actor by ID, failing with a not found error
	// when no such actor exists
	GetByID(ctx context.Context, id string) (*entities.Actor, error)

	// GetProviderByID retrieves an actor only if it exists and is flagged
	// as a provider; returns nil without error otherwise
	GetProviderByID(ctx context.Context, id string) (*entities.Actor, error)
}
