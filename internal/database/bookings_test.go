package database

import (
	"context"
	"testing"
	"time"

	"hotelms/internal/booking"
	"hotelms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := booking.ParseDate(s)
	require.NoError(t, err)
	return d
}

func createTestRoom(t *testing.T, db *DB, number string) *models.Room {
	t.Helper()
	room := &models.Room{Number: number, Type: models.RoomTypeStandard, Price: 100, Available: true}
	require.NoError(t, db.CreateRoom(context.Background(), room))
	return room
}

func testBooking(room *models.Room, reference string) *models.Booking {
	return &models.Booking{
		Reference:  reference,
		RoomID:     room.ID,
		RoomNumber: room.Number,
		RoomPrice:  room.Price,
		CheckIn:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
		GuestName:  "Alice Smith",
		GuestEmail: "alice@example.com",
		TotalPrice: 300,
		Status:     models.StatusPending,
	}
}

func TestCreateBookingWithLock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	room := createTestRoom(t, db, "101")

	b := testBooking(room, "ref-1")
	require.NoError(t, db.CreateBookingWithLock(ctx, b))
	assert.NotZero(t, b.ID)
	assert.Equal(t, int64(1), b.Version)

	t.Run("RoomFlippedUnavailable", func(t *testing.T) {
		got, err := db.GetRoom(ctx, room.ID)
		require.NoError(t, err)
		assert.False(t, got.Available)
	})

	t.Run("SecondBookingRejected", func(t *testing.T) {
		err := db.CreateBookingWithLock(ctx, testBooking(room, "ref-2"))
		assert.ErrorIs(t, err, ErrRoomNotAvailable)
	})

	t.Run("MissingRoom", func(t *testing.T) {
		missing := testBooking(room, "ref-3")
		missing.RoomID = 9999
		assert.ErrorIs(t, db.CreateBookingWithLock(ctx, missing), ErrNotFound)
	})

	t.Run("DatesRoundTripAsCalendarDays", func(t *testing.T) {
		got, err := db.GetBooking(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, mustDate(t, "2024-06-01"), got.CheckIn)
		assert.Equal(t, mustDate(t, "2024-06-04"), got.CheckOut)
		assert.Equal(t, 300.0, got.TotalPrice)
	})

	t.Run("GetByReference", func(t *testing.T) {
		got, err := db.GetBookingByReference(ctx, "ref-1")
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)

		_, err = db.GetBookingByReference(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateBookingStatusWithVersion(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	room := createTestRoom(t, db, "101")

	b := testBooking(room, "ref-1")
	require.NoError(t, db.CreateBookingWithLock(ctx, b))

	require.NoError(t, db.UpdateBookingStatusWithVersion(ctx, b.ID, 1, models.StatusConfirmed))

	got, err := db.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Equal(t, int64(2), got.Version)

	t.Run("StaleVersion", func(t *testing.T) {
		err := db.UpdateBookingStatusWithVersion(ctx, b.ID, 1, models.StatusCancelled)
		assert.ErrorIs(t, err, ErrConcurrentModification)
	})

	t.Run("MissingBooking", func(t *testing.T) {
		err := db.UpdateBookingStatusWithVersion(ctx, 9999, 1, models.StatusCancelled)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Unversioned", func(t *testing.T) {
		require.NoError(t, db.UpdateBookingStatus(ctx, b.ID, models.StatusCancelled))
		got, err := db.GetBooking(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, got.Status)

		assert.ErrorIs(t, db.UpdateBookingStatus(ctx, 9999, models.StatusCancelled), ErrNotFound)
	})
}

func TestListBookings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	roomA := createTestRoom(t, db, "101")
	roomB := createTestRoom(t, db, "102")

	first := testBooking(roomA, "ref-1")
	require.NoError(t, db.CreateBookingWithLock(ctx, first))

	second := testBooking(roomB, "ref-2")
	second.GuestEmail = "bob@example.com"
	second.GuestName = "Bob Jones"
	require.NoError(t, db.CreateBookingWithLock(ctx, second))

	all, err := db.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := db.ListBookingsByGuestEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "ref-1", mine[0].Reference)

	none, err := db.ListBookingsByGuestEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListExpiredStays(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	room := createTestRoom(t, db, "101")
	b := testBooking(room, "ref-1") // check-out 2024-06-04
	require.NoError(t, db.CreateBookingWithLock(ctx, b))

	t.Run("NotExpiredOnCheckOutDay", func(t *testing.T) {
		expired, err := db.ListExpiredStays(ctx, mustDate(t, "2024-06-04"))
		require.NoError(t, err)
		assert.Empty(t, expired)
	})

	t.Run("ExpiredAfterCheckOut", func(t *testing.T) {
		expired, err := db.ListExpiredStays(ctx, mustDate(t, "2024-06-05"))
		require.NoError(t, err)
		require.Len(t, expired, 1)
		assert.Equal(t, b.ID, expired[0].ID)
	})

	t.Run("SkipsReleasedRooms", func(t *testing.T) {
		require.NoError(t, db.SetRoomAvailability(ctx, room.ID, true))
		expired, err := db.ListExpiredStays(ctx, mustDate(t, "2024-06-05"))
		require.NoError(t, err)
		assert.Empty(t, expired)
	})

	t.Run("SkipsCancelled", func(t *testing.T) {
		require.NoError(t, db.SetRoomAvailability(ctx, room.ID, false))
		require.NoError(t, db.UpdateBookingStatus(ctx, b.ID, models.StatusCancelled))
		expired, err := db.ListExpiredStays(ctx, mustDate(t, "2024-06-05"))
		require.NoError(t, err)
		assert.Empty(t, expired)
	})

	t.Run("SkipsCompleted", func(t *testing.T) {
		require.NoError(t, db.UpdateBookingStatus(ctx, b.ID, models.StatusCompleted))
		expired, err := db.ListExpiredStays(ctx, mustDate(t, "2024-06-05"))
		require.NoError(t, err)
		assert.Empty(t, expired)
	})
}
