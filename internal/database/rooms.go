package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelms/internal/models"
)

const roomColumns = `id, number, type, price, available, created_at, updated_at`

func (db *DB) CreateRoom(ctx context.Context, room *models.Room) error {
	query := `INSERT INTO rooms (number, type, price, available, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		room.Number,
		room.Type,
		room.Price,
		room.Available,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	room.ID = id
	room.CreatedAt = now
	room.UpdatedAt = now
	return nil
}

func (db *DB) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	return db.queryRoom(ctx, query, id)
}

func (db *DB) GetRoomByNumber(ctx context.Context, number string) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE number = ?`
	return db.queryRoom(ctx, query, number)
}

func (db *DB) queryRoom(ctx context.Context, query string, args ...any) (*models.Room, error) {
	var room models.Room
	err := db.QueryRowContext(ctx, query, args...).Scan(
		&room.ID,
		&room.Number,
		&room.Type,
		&room.Price,
		&room.Available,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &room, nil
}

func (db *DB) ListRooms(ctx context.Context) ([]*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY number`
	return db.queryRooms(ctx, query)
}

func (db *DB) ListAvailableRooms(ctx context.Context) ([]*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE available = 1 ORDER BY number`
	return db.queryRooms(ctx, query)
}

func (db *DB) queryRooms(ctx context.Context, query string, args ...any) ([]*models.Room, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(
			&room.ID,
			&room.Number,
			&room.Type,
			&room.Price,
			&room.Available,
			&room.CreatedAt,
			&room.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, &room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return rooms, nil
}

func (db *DB) UpdateRoom(ctx context.Context, room *models.Room) error {
	query := `UPDATE rooms SET number = ?, type = ?, price = ?, available = ?, updated_at = ?
              WHERE id = ?`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		room.Number,
		room.Type,
		room.Price,
		room.Available,
		now,
		room.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	room.UpdatedAt = now
	return nil
}

func (db *DB) SetRoomAvailability(ctx context.Context, roomID int64, available bool) error {
	query := `UPDATE rooms SET available = ?, updated_at = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, available, time.Now(), roomID)
	if err != nil {
		return fmt.Errorf("failed to set room availability: %w", err)
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

func (db *DB) DeleteRoom(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
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

// CountRooms returns total and currently available room counts in one pass,
// used by the chat widget.
func (db *DB) CountRooms(ctx context.Context) (total int, available int, err error) {
	query := `SELECT COUNT(*), COALESCE(SUM(CASE WHEN available = 1 THEN 1 ELSE 0 END), 0) FROM rooms`
	if err := db.QueryRowContext(ctx, query).Scan(&total, &available); err != nil {
		return 0, 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return total, available, nil
}
