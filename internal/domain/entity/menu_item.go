// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is a food/drink catalog entry. Read-heavy, mutated only by admins.
type MenuItem struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"` // unique
	Description     string    `json:"description,omitempty"`
	Price           int64     `json:"price"` // cents
	Category        string    `json:"category"`
	ImageURL        string    `json:"image_url,omitempty"`
	IsAvailable     bool      `json:"is_available"`
	PreparationTime int       `json:"preparation_time,omitempty"` // minutes
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
