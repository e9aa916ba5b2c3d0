package models

import "time"

type Booking struct {
	ID              int64     `json:"id"`
	Reference       string    `json:"reference"`
	RoomID          int64     `json:"room_id"`
	RoomNumber      string    `json:"room_number"`
	RoomPrice       float64   `json:"room_price"`
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
	GuestName       string    `json:"guest_name"`
	GuestEmail      string    `json:"guest_email"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	TotalPrice      float64   `json:"total_price"`
	Status          string    `json:"status"` // pending, confirmed, cancelled
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Version         int64     `json:"version"`
}
