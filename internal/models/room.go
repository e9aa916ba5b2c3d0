package models

import "time"

type Room struct {
	ID        int64     `json:"id"`
	Number    string    `json:"number" yaml:"number"`
	Type      string    `json:"type" yaml:"type"`
	Price     float64   `json:"price" yaml:"price"`
	Available bool      `json:"available" yaml:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
