// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"playden/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for session persistence.
var (
	// ErrSessionNotFound is returned when a session is not found.
	ErrSessionNotFound = errors.New("session not found")
	// ErrDuplicateActiveSession is returned when creating an active session would
	// violate the one-active-session-per-user or per-room constraint. The
	// constraint is enforced by partial unique indexes, so concurrent starts
	// surface here even after application-level checks pass.
	ErrDuplicateActiveSession = errors.New("active session already exists")
)

// SessionRepository defines the interface for play-session database operations.
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// FindByIDForUpdate retrieves a session with a row-level lock so concurrent
	// end requests serialize. Must be called inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// FindActiveByUserID retrieves the user's active session, if any.
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Session, error)

	// FindActiveByRoomID retrieves the room's active session, if any.
	FindActiveByRoomID(ctx context.Context, roomID uuid.UUID) (*entity.Session, error)

	// FindAllActive retrieves all active sessions, oldest first.
	FindAllActive(ctx context.Context) ([]*entity.Session, error)

	// FindByUserID retrieves a user's sessions, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Session, error)

	// CountByUserID returns the total number of sessions for a user.
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// Update modifies an existing session.
	Update(ctx context.Context, session *entity.Session) error

	// List retrieves sessions across all users, newest first.
	List(ctx context.Context, limit, offset int) ([]*entity.Session, error)

	// Count returns the total number of sessions.
	Count(ctx context.Context) (int64, error)
}
