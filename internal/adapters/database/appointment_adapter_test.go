package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotwise/booking/internal/adapters/database"
	"github.com/slotwise/booking/internal/domain/entities"
	"github.com/slotwise/booking/internal/domain/repositories"
	"github.com/slotwise/booking/internal/infrastructure/clients/postgres"
	apperrors "github.com/slotwise/booking/pkg/errors"
)

var appointmentColumns = []string{
	"id", "user_id", "provider_id", "date", "slot",
	"canceled_at", "created_at", "updated_at",
}

func newMockAdapter(t *testing.T) (repositories.AppointmentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewAppointmentAdapter(postgres.NewClientFromDB(db)), mock
}

func TestAppointmentAdapter_Create(t *testing.T) {
	date := time.Date(2030, time.January, 5, 15, 30, 0, 0, time.UTC)

	t.Run("inserts and assigns an id", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		mock.ExpectExec(`INSERT INTO "appointments"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		appointment := &entities.Appointment{
			UserID:     "U1",
			ProviderID: "P1",
			Date:       date,
			Slot:       entities.SlotFor(date),
		}

		err := adapter.Create(context.Background(), appointment)

		require.NoError(t, err)
		assert.NotEmpty(t, appointment.ID)
		assert.False(t, appointment.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps a unique violation to conflict", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		mock.ExpectExec(`INSERT INTO "appointments"`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "appointments_provider_slot_active_idx"})

		err := adapter.Create(context.Background(), &entities.Appointment{
			UserID:     "U1",
			ProviderID: "P1",
			Date:       date,
			Slot:       entities.SlotFor(date),
		})

		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("wraps other database failures as internal", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		mock.ExpectExec(`INSERT INTO "appointments"`).
			WillReturnError(&pq.Error{Code: "53300"})

		err := adapter.Create(context.Background(), &entities.Appointment{
			UserID:     "U1",
			ProviderID: "P1",
			Date:       date,
			Slot:       entities.SlotFor(date),
		})

		require.Error(t, err)
		assert.False(t, apperrors.IsConflict(err))
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	})
}

func TestAppointmentAdapter_FindActiveByProviderAndSlot(t *testing.T) {
	slot := time.Date(2030, time.January, 5, 15, 0, 0, 0, time.UTC)

	t.Run("returns nil when the slot is free", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		mock.ExpectQuery(`SELECT .* FROM "appointments"`).
			WillReturnRows(sqlmock.NewRows(appointmentColumns))

		appointment, err := adapter.FindActiveByProviderAndSlot(context.Background(), "P1", slot)

		require.NoError(t, err)
		assert.Nil(t, appointment)
	})

	t.Run("returns the occupying appointment", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		date := slot.Add(30 * time.Minute)
		mock.ExpectQuery(`SELECT .* FROM "appointments"`).
			WillReturnRows(sqlmock.NewRows(appointmentColumns).
				AddRow("apt-1", "U1", "P1", date, slot, nil, date, date))

		appointment, err := adapter.FindActiveByProviderAndSlot(context.Background(), "P1", slot)

		require.NoError(t, err)
		require.NotNil(t, appointment)
		assert.Equal(t, "apt-1", appointment.ID)
		assert.True(t, appointment.Active())
		assert.True(t, appointment.Date.Equal(date))
		assert.True(t, appointment.Slot.Equal(slot))
	})
}

func TestAppointmentAdapter_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		mock.ExpectQuery(`SELECT .* FROM "appointments"`).
			WillReturnRows(sqlmock.NewRows(appointmentColumns))

		appointment, err := adapter.GetByID(context.Background(), "missing")

		assert.Nil(t, appointment)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("found with cancellation timestamp", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		now := time.Now().UTC().Truncate(time.Second)
		canceled := now.Add(time.Hour)
		mock.ExpectQuery(`SELECT .* FROM "appointments"`).
			WillReturnRows(sqlmock.NewRows(appointmentColumns).
				AddRow("apt-1", "U1", "P1", now, now.Truncate(time.Hour), canceled, now, now))

		appointment, err := adapter.GetByID(context.Background(), "apt-1")

		require.NoError(t, err)
		require.NotNil(t, appointment.CanceledAt)
		assert.False(t, appointment.Active())
	})
}

func TestAppointmentAdapter_ListByUser(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	now := time.Now().UTC().Truncate(time.Second)
	mock.ExpectQuery(`SELECT .* FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns).
			AddRow("apt-1", "U1", "P1", now, now.Truncate(time.Hour), nil, now, now).
			AddRow("apt-2", "U1", "P2", now.Add(time.Hour), now.Add(time.Hour).Truncate(time.Hour), nil, now, now))

	appointments, err := adapter.ListByUser(context.Background(), "U1", repositories.AppointmentFilter{Limit: 20})

	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, "apt-1", appointments[0].ID)
	assert.Equal(t, "apt-2", appointments[1].ID)
}
