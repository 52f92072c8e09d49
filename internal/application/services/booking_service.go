package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/slotwise/booking/internal/domain/entities"
	"github.com/slotwise/booking/internal/domain/providers"
	"github.com/slotwise/booking/internal/domain/repositories"
	"github.com/slotwise/booking/internal/infrastructure/observability"
	apperrors "github.com/slotwise/booking/pkg/errors"
)

const appointmentPageSize = 20

// CreateAppointmentInput is the single entry point payload for booking.
// Date is an ISO-8601 timestamp string.
type CreateAppointmentInput struct {
	ProviderID string `json:"provider_id"`
	UserID     string `json:"user_id"`
	Date       string `json:"date"`
}

// BookingService runs the appointment creation pipeline: validate,
// persist, notify the provider, invalidate the user's listing cache.
type BookingService struct {
	appointments repositories.AppointmentRepository
	actors       repositories.ActorRepository
	cache        providers.CacheProvider
	formatter    providers.DateFormatter
	notifier     *NotificationService
	invalidator  *CacheInvalidationService
	listTTL      time.Duration
	locale       language.Tag
}

// NewBookingService creates a new booking service
func NewBookingService(
	appointments repositories.AppointmentRepository,
	actors repositories.ActorRepository,
	cache providers.CacheProvider,
	formatter providers.DateFormatter,
	notifier *NotificationService,
	invalidator *CacheInvalidationService,
	listTTL time.Duration,
) *BookingService {
	return &BookingService{
		appointments: appointments,
		actors:       actors,
		cache:        cache,
		formatter:    formatter,
		notifier:     notifier,
		invalidator:  invalidator,
		listTTL:      listTTL,
		locale:       language.AmericanEnglish,
	}
}

// CreateAppointment validates and books an appointment. Checks run in a
// fixed order and the first failure aborts with no writes. Once the
// insert succeeds the appointment stands: notification and cache
// invalidation failures never roll it back, and a notification failure
// is returned alongside the created appointment so callers can tell it
// apart from a booking failure.
func (s *BookingService) CreateAppointment(ctx context.Context, input CreateAppointmentInput) (*entities.Appointment, error) {
	logger := observability.LoggerFromContext(ctx)

	if input.ProviderID == input.UserID {
		return nil, apperrors.NewValidationError("you cannot create an appointment with yourself")
	}

	provider, err := s.actors.GetProviderByID(ctx, input.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, apperrors.NewValidationError("you can only create appointments with providers")
	}

	date, err := time.Parse(time.RFC3339, input.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("date must be a valid ISO-8601 timestamp")
	}

	// Slots are hour-quantized: sub-hour precision is discarded for the
	// availability check but kept in the stored date.
	hourStart := entities.SlotFor(date)
	if hourStart.Before(time.Now()) {
		return nil, apperrors.NewValidationError("past dates are not allowed")
	}

	existing, err := s.appointments.FindActiveByProviderAndSlot(ctx, input.ProviderID, hourStart)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("appointment date is not available")
	}

	appointment := &entities.Appointment{
		UserID:     input.UserID,
		ProviderID: input.ProviderID,
		Date:       date,
		Slot:       hourStart,
	}

	// The read check above races with concurrent bookings; the store's
	// unique constraint on (provider_id, slot) settles the race and the
	// loser gets a conflict here.
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	notifyErr := s.notifyProvider(ctx, appointment, hourStart)

	s.invalidator.InvalidateUserAppointments(ctx, input.UserID)

	logger.Info().
		Str("appointment_id", appointment.ID).
		Str("provider_id", appointment.ProviderID).
		Str("user_id", appointment.UserID).
		Time("slot", hourStart).
		Msg("appointment booked")

	if notifyErr != nil {
		return appointment, apperrors.NewExternalError("appointment created but provider notification failed", notifyErr)
	}
	return appointment, nil
}

// notifyProvider creates the provider-facing notice for a booked
// appointment, worded with the requester's name and the hour slot.
func (s *BookingService) notifyProvider(ctx context.Context, appointment *entities.Appointment, hourStart time.Time) error {
	user, err := s.actors.GetByID(ctx, appointment.UserID)
	if err != nil {
		return err
	}

	formatted, err := s.formatter.Format(hourStart, providers.NoticeTimePattern, s.locale)
	if err != nil {
		return err
	}

	content := fmt.Sprintf("New appointment with %s on %s", user.Name, formatted)
	if _, err := s.notifier.NotifyAppointment(ctx, appointment.ProviderID, content); err != nil {
		return err
	}

	return nil
}

// ListUserAppointments returns a page of the user's active appointments,
// read through the cache the booking pipeline invalidates.
func (s *BookingService) ListUserAppointments(ctx context.Context, userID string, page int) ([]*entities.Appointment, error) {
	logger := observability.LoggerFromContext(ctx)

	if page < 1 {
		page = 1
	}
	key := fmt.Sprintf("%s:page=%d", UserAppointmentsPrefix(userID), page)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
			var cached []*entities.Appointment
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
			logger.Warn().Str("key", key).Msg("discarding unreadable cached appointment page")
		}
	}

	appointments, err := s.appointments.ListByUser(ctx, userID, repositories.AppointmentFilter{
		Limit:  appointmentPageSize,
		Offset: (page - 1) * appointmentPageSize,
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(appointments); err == nil {
			if err := s.cache.Set(ctx, key, data, int(s.listTTL.Seconds())); err != nil {
				logger.Warn().Str("key", key).Err(err).Msg("failed to cache appointment page")
			}
		}
	}

	return appointments, nil
}
