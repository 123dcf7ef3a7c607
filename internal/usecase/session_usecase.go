package usecase

import (
	"context"

	"playden/internal/domain/entity"

	"github.com/google/uuid"
)

// StartSessionInput defines the data required to start a play session.
// Exactly one of RoomID or QRToken identifies the room: admins may start by
// room ID, customers scan the room's QR code.
type StartSessionInput struct {
	UserID  uuid.UUID
	RoomID  *uuid.UUID
	QRToken string
}

// EndSessionOutput returns the completed session together with the ledger
// transaction that paid for it.
type EndSessionOutput struct {
	Session     *entity.Session
	Transaction *entity.Transaction
}

// ActiveSessionOutput is the user's running session with its cost projected to
// the time of the read. CurrentDuration is billable minutes, rounded up.
type ActiveSessionOutput struct {
	Session         *entity.Session
	CurrentDuration int
	CurrentCost     int64
}

// SessionPage is one page of session history.
type SessionPage struct {
	Sessions []*entity.Session
	Total    int64
}

// SessionUsecase defines the interface for play-session lifecycle operations.
type SessionUsecase interface {
	// StartSession opens a session in an available room. The user must hold at
	// least the configured reserve balance, have no other active session, and
	// the room must be free. The room price is snapshotted onto the session.
	StartSession(ctx context.Context, input StartSessionInput) (*entity.Session, error)

	// EndSession bills elapsed time at the snapshotted rate, rounding minutes
	// up, and completes the session. If the wallet cannot cover the cost the
	// session stays active and the wallet is untouched.
	EndSession(ctx context.Context, userID, sessionID uuid.UUID) (*EndSessionOutput, error)

	// GetActiveSession retrieves the user's active session with its running cost.
	GetActiveSession(ctx context.Context, userID uuid.UUID) (*ActiveSessionOutput, error)

	// GetSession retrieves a session by ID. Customers may only read their own sessions.
	GetSession(ctx context.Context, requesterID, sessionID uuid.UUID, isAdmin bool) (*entity.Session, error)

	// GetSessionHistory retrieves a page of the user's past sessions, newest first.
	GetSessionHistory(ctx context.Context, userID uuid.UUID, limit, offset int) (*SessionPage, error)
}
