package usecase

import (
	"context"

	"playden/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateRoomInput defines the data required to create a room.
type CreateRoomInput struct {
	RoomNumber     string
	Name           string
	ConsoleType    string
	Capacity       int
	PricePerMinute int64 // cents
	Description    string
	Amenities      []string
}

// UpdateRoomInput defines the mutable room fields. Nil pointers leave the
// field unchanged.
type UpdateRoomInput struct {
	Name           *string
	ConsoleType    *string
	Capacity       *int
	PricePerMinute *int64
	Description    *string
	Amenities      []string
	Status         *entity.RoomStatus
}

// RoomUsecase defines the interface for room management operations.
type RoomUsecase interface {
	// ListRooms retrieves rooms, optionally filtered by status.
	ListRooms(ctx context.Context, status *entity.RoomStatus) ([]*entity.Room, error)

	// GetRoom retrieves a room by its ID.
	GetRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error)

	// CreateRoom creates a room and signs its QR token.
	CreateRoom(ctx context.Context, input CreateRoomInput) (*entity.Room, error)

	// UpdateRoom modifies a room. Moving an occupied room to MAINTENANCE is
	// rejected while a session is active in it.
	UpdateRoom(ctx context.Context, id uuid.UUID, input UpdateRoomInput) (*entity.Room, error)

	// DeleteRoom removes a room. Rooms with an active session cannot be deleted.
	DeleteRoom(ctx context.Context, id uuid.UUID) error

	// VerifyQRToken validates a scanned token and returns the room it opens.
	VerifyQRToken(ctx context.Context, token string) (*entity.Room, error)

	// GetRoomQRImage renders the room's QR code as a PNG.
	GetRoomQRImage(ctx context.Context, id uuid.UUID) ([]byte, error)
}
