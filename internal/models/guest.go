package models

import "time"

// Guest is a contact record kept for the admin dashboard. It is not an
// authentication principal; token handling lives outside this service.
type Guest struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
