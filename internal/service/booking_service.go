package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotelms/internal/booking"
	"hotelms/internal/database"
	"hotelms/internal/domain"
	"hotelms/internal/events"
	"hotelms/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrBookingFinalized is returned for status transitions out of a terminal
// state (cancelled or completed).
var ErrBookingFinalized = errors.New("booking is already finalized")

type BookingService struct {
	repo           domain.Repository
	eventBus       domain.EventPublisher
	housekeeper    domain.Housekeeper
	maxAdvanceDays int
	logger         *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, housekeeper domain.Housekeeper, maxAdvanceDays int, logger *zerolog.Logger) *BookingService {
	if maxAdvanceDays <= 0 {
		maxAdvanceDays = models.DefaultMaxAdvanceDays
	}
	return &BookingService{
		repo:           repo,
		eventBus:       eventBus,
		housekeeper:    housekeeper,
		maxAdvanceDays: maxAdvanceDays,
		logger:         logger,
	}
}

// CreateBooking runs the calendar validation and, when it passes, persists
// the booking inside the room-locking transaction. Validation failures are
// returned as data; the error channel carries storage outcomes only.
func (s *BookingService) CreateBooking(ctx context.Context, req domain.CreateBookingRequest) (*models.Booking, booking.ValidationResult, error) {
	stay := booking.StayRequest{
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
	}

	result := booking.ValidateStayRequest(stay, req.Today)
	result = s.checkAdvanceHorizon(result, req)
	if !result.Valid() {
		return nil, result, nil
	}

	room, err := s.repo.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, result, err
	}
	if !room.Available {
		return nil, result, database.ErrRoomNotAvailable
	}

	b := &models.Booking{
		Reference:       newReference(),
		RoomID:          room.ID,
		RoomNumber:      room.Number,
		RoomPrice:       room.Price,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		GuestName:       strings.TrimSpace(req.GuestName),
		GuestEmail:      strings.ToLower(strings.TrimSpace(req.GuestEmail)),
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		TotalPrice:      booking.TotalPrice(room.Price, req.CheckIn, req.CheckOut),
		Status:          models.StatusPending,
	}

	if err := s.repo.CreateBookingWithLock(ctx, b); err != nil {
		return nil, result, err
	}

	if err := s.repo.CreateOrUpdateGuest(ctx, &models.Guest{Name: b.GuestName, Email: b.GuestEmail}); err != nil {
		s.logger.Error().Err(err).Str("email", b.GuestEmail).Msg("guest upsert error")
	}

	s.publishEvent(events.EventBookingCreated, b)

	s.logger.Info().
		Int64("booking_id", b.ID).
		Str("reference", b.Reference).
		Str("room", b.RoomNumber).
		Float64("total", b.TotalPrice).
		Msg("Booking created")

	return b, result, nil
}

// ConfirmBooking moves a pending booking to confirmed. Cancelled and
// completed bookings are terminal; confirming one would resurrect a stay
// whose room may already belong to someone else.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID, version int64) error {
	b, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if models.IsTerminalStatus(b.Status) {
		return ErrBookingFinalized
	}

	if err := s.repo.UpdateBookingStatusWithVersion(ctx, bookingID, version, models.StatusConfirmed); err != nil {
		return err
	}

	b.Status = models.StatusConfirmed
	b.Version++
	s.publishEvent(events.EventBookingConfirmed, b)
	return nil
}

// CancelBooking cancels a live booking and hands the room release to
// housekeeping. A booking that is already cancelled or completed no longer
// owns its room, so a repeat cancel must not free it again.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, version int64) error {
	b, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if models.IsTerminalStatus(b.Status) {
		return ErrBookingFinalized
	}

	if err := s.repo.UpdateBookingStatusWithVersion(ctx, bookingID, version, models.StatusCancelled); err != nil {
		return err
	}

	b.Status = models.StatusCancelled
	b.Version++

	if s.housekeeper != nil {
		if err := s.housekeeper.EnqueueRelease(ctx, b.RoomID, b.ID); err != nil {
			s.logger.Error().Err(err).Int64("booking_id", b.ID).Msg("housekeeping enqueue error")
		}
	}

	s.publishEvent(events.EventBookingCancelled, b)
	return nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	return s.repo.ListBookings(ctx)
}

// ListGuestBookings returns the guest's bookings annotated with the
// lifecycle phase derived against the supplied today.
func (s *BookingService) ListGuestBookings(ctx context.Context, email string, today time.Time) ([]domain.GuestBooking, error) {
	bookings, err := s.repo.ListBookingsByGuestEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}

	out := make([]domain.GuestBooking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, domain.GuestBooking{
			Booking:   *b,
			Lifecycle: booking.LifecycleStatus(b.CheckIn, b.CheckOut, today),
		})
	}
	return out, nil
}

// GuestSpend totals the guest's stays from each booking's recorded nightly
// rate and night count. Cancelled bookings are excluded.
func (s *BookingService) GuestSpend(ctx context.Context, email string) (float64, error) {
	bookings, err := s.repo.ListBookingsByGuestEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return 0, err
	}

	kept := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == models.StatusCancelled {
			continue
		}
		kept = append(kept, *b)
	}

	return booking.AggregateSpend(kept), nil
}

func (s *BookingService) checkAdvanceHorizon(result booking.ValidationResult, req domain.CreateBookingRequest) booking.ValidationResult {
	if req.CheckIn.IsZero() || req.Today.IsZero() {
		return result
	}

	horizon := req.Today.AddDate(0, 0, s.maxAdvanceDays)
	if req.CheckIn.After(horizon) {
		result.Errors = append(result.Errors, booking.FieldError{
			Field:  booking.FieldCheckIn,
			Reason: booking.ReasonDateTooFar,
		})
	}
	return result
}

func (s *BookingService) publishEvent(eventType string, b *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:  b.ID,
		Reference:  b.Reference,
		RoomID:     b.RoomID,
		RoomNumber: b.RoomNumber,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
		Status:     b.Status,
		CheckIn:    b.CheckIn.Format(booking.DateLayout),
		CheckOut:   b.CheckOut.Format(booking.DateLayout),
		TotalPrice: b.TotalPrice,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", b.ID).Msg("publish event error")
	}
}

func newReference() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}
