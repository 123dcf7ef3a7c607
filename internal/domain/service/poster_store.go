package service

import (
	"context"

	"github.com/google/uuid"
)

// PosterStore archives rendered room QR posters in blob storage so printed
// codes can be regenerated. Archival is best effort, callers log failures and
// continue.
type PosterStore interface {
	// SaveRoomPoster stores the PNG poster for a room.
	SaveRoomPoster(ctx context.Context, roomID uuid.UUID, png []byte) error

	// LoadRoomPoster retrieves a previously archived poster.
	LoadRoomPoster(ctx context.Context, roomID uuid.UUID) ([]byte, error)
}
