package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelms/internal/models"
)

func (db *DB) CreateOrUpdateGuest(ctx context.Context, guest *models.Guest) error {
	query := `INSERT INTO guests (name, email, created_at, updated_at)
              VALUES (?, ?, ?, ?)
              ON CONFLICT(email) DO UPDATE SET
                name = excluded.name,
                updated_at = excluded.updated_at`
	now := time.Now()
	_, err := db.ExecContext(ctx, query, guest.Name, guest.Email, now, now)
	if err != nil {
		return fmt.Errorf("failed to create or update guest: %w", err)
	}
	return nil
}

func (db *DB) GetGuestByEmail(ctx context.Context, email string) (*models.Guest, error) {
	query := `SELECT id, name, email, created_at, updated_at FROM guests WHERE email = ?`
	var guest models.Guest
	err := db.QueryRowContext(ctx, query, email).Scan(
		&guest.ID,
		&guest.Name,
		&guest.Email,
		&guest.CreatedAt,
		&guest.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	return &guest, nil
}

func (db *DB) ListGuests(ctx context.Context) ([]*models.Guest, error) {
	query := `SELECT id, name, email, created_at, updated_at FROM guests ORDER BY name`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	defer rows.Close()

	var guests []*models.Guest
	for rows.Next() {
		var guest models.Guest
		if err := rows.Scan(
			&guest.ID,
			&guest.Name,
			&guest.Email,
			&guest.CreatedAt,
			&guest.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, &guest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return guests, nil
}

func (db *DB) DeleteGuest(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM guests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
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
