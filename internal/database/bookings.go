package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelms/internal/booking"
	"hotelms/internal/models"
)

const bookingColumns = `id, reference, room_id, room_number, room_price, check_in, check_out,
       guest_name, guest_email, special_requests, total_price, status,
       created_at, updated_at, version`

// CreateBookingWithLock inserts the booking and flips the room to
// unavailable in one transaction. Both the availability check and the flip
// happen inside the transaction so two guests cannot take the same room.
func (db *DB) CreateBookingWithLock(ctx context.Context, b *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var available bool
	err = tx.QueryRowContext(ctx, `SELECT available FROM rooms WHERE id = ?`, b.RoomID).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check room availability in tx: %w", err)
	}
	if !available {
		return ErrRoomNotAvailable
	}

	now := time.Now()
	query := `INSERT INTO bookings (
				reference, room_id, room_number, room_price, check_in, check_out,
				guest_name, guest_email, special_requests, total_price, status,
				created_at, updated_at, version
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, query,
		b.Reference,
		b.RoomID,
		b.RoomNumber,
		b.RoomPrice,
		b.CheckIn.Format(booking.DateLayout),
		b.CheckOut.Format(booking.DateLayout),
		b.GuestName,
		b.GuestEmail,
		b.SpecialRequests,
		b.TotalPrice,
		b.Status,
		now,
		now,
		1,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE rooms SET available = 0, updated_at = ? WHERE id = ?`, now, b.RoomID); err != nil {
		return fmt.Errorf("failed to mark room unavailable: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
	b.Version = 1
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return db.queryBooking(ctx, query, id)
}

func (db *DB) GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference = ?`
	return db.queryBooking(ctx, query, reference)
}

func (db *DB) queryBooking(ctx context.Context, query string, args ...any) (*models.Booking, error) {
	row := db.QueryRowContext(ctx, query, args...)
	b, err := scanBookingRow(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

func (db *DB) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY check_in`
	return db.queryBookings(ctx, query)
}

func (db *DB) ListBookingsByGuestEmail(ctx context.Context, email string) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE guest_email = ? ORDER BY check_in`
	return db.queryBookings(ctx, query, email)
}

// ListExpiredStays returns bookings whose check-out date is strictly before
// the given day, still in a live status, and whose room is still marked
// unavailable. The housekeeping sweep marks each one completed before it
// re-opens the room, so a stay is only ever returned once.
func (db *DB) ListExpiredStays(ctx context.Context, today time.Time) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
              WHERE b.status NOT IN (?, ?)
              AND b.check_out < ?
              AND EXISTS (SELECT 1 FROM rooms r WHERE r.id = b.room_id AND r.available = 0)`
	return db.queryBookings(ctx, query,
		models.StatusCancelled, models.StatusCompleted, today.Format(booking.DateLayout))
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBookingRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return bookings, nil
}

func scanBookingRow(scan func(dest ...any) error) (*models.Booking, error) {
	var b models.Booking
	var checkIn, checkOut string
	var specialRequests sql.NullString
	err := scan(
		&b.ID,
		&b.Reference,
		&b.RoomID,
		&b.RoomNumber,
		&b.RoomPrice,
		&checkIn,
		&checkOut,
		&b.GuestName,
		&b.GuestEmail,
		&specialRequests,
		&b.TotalPrice,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.Version,
	)
	if err != nil {
		return nil, err
	}

	if b.CheckIn, err = booking.ParseDate(checkIn); err != nil {
		return nil, fmt.Errorf("invalid check_in in storage: %w", err)
	}
	if b.CheckOut, err = booking.ParseDate(checkOut); err != nil {
		return nil, fmt.Errorf("invalid check_out in storage: %w", err)
	}
	b.SpecialRequests = specialRequests.String
	return &b, nil
}

// UpdateBookingStatusWithVersion applies an optimistic-concurrency status
// change; a stale version returns ErrConcurrentModification.
func (db *DB) UpdateBookingStatusWithVersion(ctx context.Context, id, version int64, status string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ?, version = version + 1
              WHERE id = ? AND version = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now(), id, version)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		// Either the booking is gone or the version is stale.
		if _, err := db.GetBooking(ctx, id); err != nil {
			return err
		}
		return ErrConcurrentModification
	}
	return nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ?, version = version + 1 WHERE id = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
