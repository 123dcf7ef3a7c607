// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RoomStatus represents the availability state of a room.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

// IsValid checks if the RoomStatus is a valid value.
func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	default:
		return false
	}
}

// Room is a physical gaming room. Invariant: at most one ACTIVE session may
// reference a room at any time, and Status == OCCUPIED exactly while such a
// session exists (maintained by the same transaction that creates/ends it).
type Room struct {
	ID             uuid.UUID  `json:"id"`
	RoomNumber     string     `json:"room_number"` // unique
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Status         RoomStatus `json:"status"`
	PricePerMinute int64      `json:"price_per_minute"` // cents
	ConsoleType    string     `json:"console_type"`
	Capacity       int        `json:"capacity"`
	ImageURL       string     `json:"image_url,omitempty"`
	Amenities      []string   `json:"amenities"`
	QRToken        string     `json:"qr_token,omitempty"` // signed token encoded into the printed QR poster
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
