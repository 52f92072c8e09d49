package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/slotwise/booking/internal/domain/entities"
	"github.com/slotwise/booking/internal/domain/repositories"
	"github.com/slotwise/booking/internal/infrastructure/clients/postgres"
	apperrors "github.com/slotwise/booking/pkg/errors"
)

// ActorAdapter implements the ActorRepository interface
type ActorAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewActorAdapter creates a new actor adapter
func NewActorAdapter(client *postgres.Client) repositories.ActorRepository {
	return &ActorAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves an actor by ID
func (a *ActorAdapter) GetByID(ctx context.Context, id string) (*entities.Actor, error) {
	actor, err := a.getOne(ctx, goqu.Ex{"id": id})
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("actor with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get actor", err)
	}
	return actor, nil
}

// GetProviderByID retrieves an actor only if it is flagged as a provider.
// Absence and a non-provider match both return nil without error.
func (a *ActorAdapter) GetProviderByID(ctx context.Context, id string) (*entities.Actor, error) {
	actor, err := a.getOne(ctx, goqu.Ex{"id": id, "is_provider": true})
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get provider", err)
	}
	return actor, nil
}

func (a *ActorAdapter) getOne(ctx context.Context, where goqu.Ex) (*entities.Actor, error) {
	query, args, err := a.db.Select(
		"id", "name", "email", "is_provider", "created_at", "updated_at",
	).From("actors").
		Where(where).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	actor := &entities.Actor{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&actor.ID,
		&actor.Name,
		&actor.Email,
		&actor.IsProvider,
		&actor.CreatedAt,
		&actor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return actor, nil
}
