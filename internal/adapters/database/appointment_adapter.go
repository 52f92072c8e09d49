package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/slotwise/booking/internal/domain/entities"
	"github.com/slotwise/booking/internal/domain/repositories"
	"github.com/slotwise/booking/internal/infrastructure/clients/postgres"
	apperrors "github.com/slotwise/booking/pkg/errors"
)

// uniqueViolation is the PostgreSQL error code raised by the partial
// unique index on (provider_id, slot) WHERE canceled_at IS NULL.
const uniqueViolation = "23505"

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new appointment. A concurrent insert into the same
// provider slot loses to the unique index and comes back as a conflict.
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	now := time.Now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	record := goqu.Record{
		"id":          appointment.ID,
		"user_id":     appointment.UserID,
		"provider_id": appointment.ProviderID,
		"date":        appointment.Date,
		"slot":        appointment.Slot,
		"canceled_at": appointment.CanceledAt,
		"created_at":  appointment.CreatedAt,
		"updated_at":  appointment.UpdatedAt,
	}

	query, args, err := a.db.Insert("appointments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return apperrors.NewConflictError("appointment slot is already booked")
		}
		return apperrors.NewInternalError("failed to create appointment", err)
	}

	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(
		"id", "user_id", "provider_id", "date", "slot",
		"canceled_at", "created_at", "updated_at",
	).From("appointments").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment, err := scanAppointment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}

	return appointment, nil
}

// FindActiveByProviderAndSlot returns the non-canceled appointment in the
// given provider slot, or nil when the slot is free
func (a *AppointmentAdapter) FindActiveByProviderAndSlot(ctx context.Context, providerID string, slot time.Time) (*entities.Appointment, error) {
	query, args, err := a.db.Select(
		"id", "user_id", "provider_id", "date", "slot",
		"canceled_at", "created_at", "updated_at",
	).From("appointments").
		Where(goqu.Ex{
			"provider_id": providerID,
			"slot":        slot,
			"canceled_at": nil,
		}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment, err := scanAppointment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check slot availability", err)
	}

	return appointment, nil
}

// ListByUser retrieves the non-canceled appointments booked by a user
func (a *AppointmentAdapter) ListByUser(ctx context.Context, userID string, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	ds := a.db.Select(
		"id", "user_id", "provider_id", "date", "slot",
		"canceled_at", "created_at", "updated_at",
	).From("appointments").
		Where(goqu.Ex{"user_id": userID, "canceled_at": nil})

	if filter.From != nil {
		ds = ds.Where(goqu.C("slot").Gte(*filter.From))
	}

	if filter.To != nil {
		ds = ds.Where(goqu.C("slot").Lte(*filter.To))
	}

	ds = ds.Order(goqu.I("date").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	var appointments []*entities.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}

	return appointments, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*entities.Appointment, error) {
	appointment := &entities.Appointment{}
	var canceledAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.UserID,
		&appointment.ProviderID,
		&appointment.Date,
		&appointment.Slot,
		&canceledAt,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if canceledAt.Valid {
		appointment.CanceledAt = &canceledAt.Time
	}

	return appointment, nil
}
