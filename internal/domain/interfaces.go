package domain

import (
	"context"
	"time"

	"hotelms/internal/booking"
	"hotelms/internal/models"
)

type Repository interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	GetRoomByNumber(ctx context.Context, number string) (*models.Room, error)
	ListRooms(ctx context.Context) ([]*models.Room, error)
	ListAvailableRooms(ctx context.Context) ([]*models.Room, error)
	UpdateRoom(ctx context.Context, room *models.Room) error
	SetRoomAvailability(ctx context.Context, roomID int64, available bool) error
	DeleteRoom(ctx context.Context, id int64) error
	CountRooms(ctx context.Context) (total int, available int, err error)

	CreateBookingWithLock(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]*models.Booking, error)
	ListBookingsByGuestEmail(ctx context.Context, email string) ([]*models.Booking, error)
	ListExpiredStays(ctx context.Context, today time.Time) ([]*models.Booking, error)
	UpdateBookingStatusWithVersion(ctx context.Context, id, version int64, status string) error
	UpdateBookingStatus(ctx context.Context, id int64, status string) error

	CreateOrUpdateGuest(ctx context.Context, guest *models.Guest) error
	GetGuestByEmail(ctx context.Context, email string) (*models.Guest, error)
	ListGuests(ctx context.Context) ([]*models.Guest, error)
	DeleteGuest(ctx context.Context, id int64) error
}

type StateRepository interface {
	GetState(ctx context.Context, sessionID string) (*models.ChatState, error)
	SetState(ctx context.Context, state *models.ChatState) error
	ClearState(ctx context.Context, sessionID string) error
	CheckRateLimit(ctx context.Context, sessionID string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type Housekeeper interface {
	EnqueueRelease(ctx context.Context, roomID int64, bookingID int64) error
}

type RoomService interface {
	ListRooms(ctx context.Context) ([]*models.Room, error)
	ListAvailableRooms(ctx context.Context) ([]*models.Room, error)
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	UpdateRoom(ctx context.Context, room *models.Room) error
	DeleteRoom(ctx context.Context, id int64) error
}

type BookingService interface {
	// CreateBooking validates first; a failed validation comes back as data
	// in the ValidationResult with a nil booking and nil error.
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, booking.ValidationResult, error)
	ConfirmBooking(ctx context.Context, bookingID, version int64) error
	CancelBooking(ctx context.Context, bookingID, version int64) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]*models.Booking, error)
	ListGuestBookings(ctx context.Context, email string, today time.Time) ([]GuestBooking, error)
	GuestSpend(ctx context.Context, email string) (float64, error)
}

// CreateBookingRequest carries the stay request fields plus the explicit
// "today" the calendar rules are checked against.
type CreateBookingRequest struct {
	RoomID          int64
	CheckIn         time.Time
	CheckOut        time.Time
	GuestName       string
	GuestEmail      string
	SpecialRequests string
	Today           time.Time
}

// GuestBooking pairs a stored booking with its derived lifecycle phase.
type GuestBooking struct {
	Booking   models.Booking `json:"booking"`
	Lifecycle string         `json:"lifecycle"`
}

type ChatService interface {
	Reply(ctx context.Context, sessionID, message string) (string, error)
}
