package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "playden/internal/delivery/context"
	"playden/internal/domain/entity"
	domainerrors "playden/internal/domain/errors"
	"playden/internal/domain/repository"
	"playden/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager   repository.TransactionManager
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	statsRepo   repository.StatsRepository
	logger      *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
	StatsRepo   repository.StatsRepository
	Logger      *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:   params.TxManager,
		userRepo:    params.UserRepo,
		sessionRepo: params.SessionRepo,
		statsRepo:   params.StatsRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetPlatformStats computes the dashboard counters.
func (srv *adminService) GetPlatformStats(ctx context.Context) (*repository.PlatformStats, error) {
	stats, err := srv.statsRepo.PlatformStats(ctx, time.Now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute platform stats")
	}

	return stats, nil
}

// GetRecentActivity retrieves the newest platform activity entries.
func (srv *adminService) GetRecentActivity(ctx context.Context, limit int) ([]*repository.ActivityEntry, error) {
	entries, err := srv.statsRepo.RecentActivity(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recent activity")
	}

	return entries, nil
}

// ListUsers retrieves a page of registered users, newest first.
func (srv *adminService) ListUsers(ctx context.Context, limit, offset int) (*usecase.UserPage, error) {
	users, err := srv.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	total, err := srv.userRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	return &usecase.UserPage{Users: users, Total: total}, nil
}

// SetUserActive activates or deactivates a user account. Deactivated users
// cannot log in again; already-issued tokens expire naturally.
func (srv *adminService) SetUserActive(ctx context.Context, userID uuid.UUID, active bool) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		var findErr error
		user, findErr = userRepo.FindByID(ctx, userID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(findErr, "failed to find user")
		}

		if user.IsActive == active {
			return nil
		}

		user.IsActive = active
		if updateErr := userRepo.Update(ctx, user); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update user active flag")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to set user active flag", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user activation transaction")
	}

	srv.log(ctx).Info("User active flag updated", slog.Any("userID", userID), slog.Bool("active", active))

	return user, nil
}

// ListSessions retrieves a page of sessions across all users, newest first.
func (srv *adminService) ListSessions(ctx context.Context, limit, offset int) (*usecase.SessionPage, error) {
	sessions, err := srv.sessionRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}

	total, err := srv.sessionRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count sessions")
	}

	return &usecase.SessionPage{Sessions: sessions, Total: total}, nil
}

// ListActiveSessions retrieves all currently active sessions.
func (srv *adminService) ListActiveSessions(ctx context.Context) ([]*entity.Session, error) {
	sessions, err := srv.sessionRepo.FindAllActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active sessions")
	}

	return sessions, nil
}
