// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"playden/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for room persistence.
var (
	// ErrRoomNotFound is returned when a room is not found.
	ErrRoomNotFound = errors.New("room not found")
	// ErrDuplicateRoomNumber is returned when creating a room whose number is taken.
	ErrDuplicateRoomNumber = errors.New("room number already exists")
)

// RoomRepository defines the interface for room-related database operations.
type RoomRepository interface {
	// Create persists a new room.
	Create(ctx context.Context, room *entity.Room) error

	// FindByID retrieves a room by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)

	// FindByIDForUpdate retrieves a room with a row-level lock. Session start and
	// end take this lock to serialize concurrent occupancy changes. Must be
	// called inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error)

	// FindByRoomNumber retrieves a room by its human-facing number.
	FindByRoomNumber(ctx context.Context, roomNumber string) (*entity.Room, error)

	// List retrieves rooms ordered by room number. When status is non-nil only
	// rooms in that status are returned.
	List(ctx context.Context, status *entity.RoomStatus) ([]*entity.Room, error)

	// Update modifies an existing room.
	Update(ctx context.Context, room *entity.Room) error

	// UpdateStatus sets the room status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RoomStatus) error

	// Delete removes a room by its ID (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of rooms.
	Count(ctx context.Context) (int64, error)
}
