package usecase

import (
	"context"

	"playden/internal/domain/entity"
	"playden/internal/domain/repository"

	"github.com/google/uuid"
)

// UserPage is one page of the admin user list.
type UserPage struct {
	Users []*entity.User
	Total int64
}

// AdminUsecase defines the interface for admin dashboard operations.
type AdminUsecase interface {
	// GetPlatformStats computes the dashboard counters.
	GetPlatformStats(ctx context.Context) (*repository.PlatformStats, error)

	// GetRecentActivity retrieves the newest platform activity entries.
	GetRecentActivity(ctx context.Context, limit int) ([]*repository.ActivityEntry, error)

	// ListUsers retrieves a page of registered users, newest first.
	ListUsers(ctx context.Context, limit, offset int) (*UserPage, error)

	// SetUserActive activates or deactivates a user account. Deactivated users
	// cannot log in, existing tokens expire naturally.
	SetUserActive(ctx context.Context, userID uuid.UUID, active bool) (*entity.User, error)

	// ListSessions retrieves a page of sessions across all users, newest first.
	ListSessions(ctx context.Context, limit, offset int) (*SessionPage, error)

	// ListActiveSessions retrieves all currently active sessions with their
	// running cost.
	ListActiveSessions(ctx context.Context) ([]*entity.Session, error)
}
