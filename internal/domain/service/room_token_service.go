package service

import (
	"github.com/google/uuid"
)

// RoomTokenService signs and verifies the tokens embedded in room QR codes.
// A token binds a room ID to an HMAC signature so that a scanned code cannot
// be forged or rebound to another room.
type RoomTokenService interface {
	// Sign produces an opaque token for the given room.
	Sign(roomID uuid.UUID) (string, error)

	// Verify checks the token signature and returns the room ID it was issued for.
	Verify(token string) (uuid.UUID, error)
}
