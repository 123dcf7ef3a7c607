package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"playden/config"
	deliverycontext "playden/internal/delivery/context"
	"playden/internal/domain/entity"
	domainerrors "playden/internal/domain/errors"
	"playden/internal/domain/repository"
	"playden/internal/domain/service"
	"playden/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultReserveMinutes = 30

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager      repository.TransactionManager
	sessionRepo    repository.SessionRepository
	roomTokens     service.RoomTokenService
	publisher      service.EventPublisher
	reserveMinutes int
	logger         *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	SessionRepo repository.SessionRepository
	RoomTokens  service.RoomTokenService
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	reserveMinutes := defaultReserveMinutes
	if params.Config != nil && params.Config.Session != nil && params.Config.Session.ReserveMinutes > 0 {
		reserveMinutes = params.Config.Session.ReserveMinutes
	}

	return &sessionService{
		txManager:      params.TxManager,
		sessionRepo:    params.SessionRepo,
		roomTokens:     params.RoomTokens,
		publisher:      params.Publisher,
		reserveMinutes: reserveMinutes,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StartSession opens a session in an available room. Room lock, exclusivity
// checks, reserve check, session insert, and room status flip all happen in
// one transaction, so two concurrent starts cannot both succeed.
func (srv *sessionService) StartSession(ctx context.Context, input usecase.StartSessionInput) (*entity.Session, error) {
	roomID, err := srv.resolveRoomID(input)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting session", slog.Any("userID", input.UserID), slog.Any("roomID", roomID))

	var session *entity.Session
	var room *entity.Room

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roomRepo := repoFactory.NewRoomRepository()
		sessionRepo := repoFactory.NewSessionRepository()
		walletRepo := repoFactory.NewWalletRepository()

		var findErr error
		room, findErr = roomRepo.FindByIDForUpdate(ctx, roomID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrRoomNotFound) {
				return errors.Wrap(domainerrors.ErrRoomNotFound, "room not found for session start")
			}

			return errors.Wrap(findErr, "failed to lock room for session start")
		}

		if room.Status != entity.RoomAvailable {
			return errors.Wrap(domainerrors.ErrRoomUnavailable, "room is not available")
		}

		if _, findErr := sessionRepo.FindActiveByUserID(ctx, input.UserID); findErr == nil {
			return errors.Wrap(domainerrors.ErrSessionAlreadyActive, "user already has an active session")
		} else if !errors.Is(findErr, repository.ErrSessionNotFound) {
			return errors.Wrap(findErr, "failed to check for active session")
		}

		wallet, findErr := walletRepo.FindByUserID(ctx, input.UserID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrWalletNotFound) {
				return errors.Wrap(domainerrors.ErrWalletNotFound, "wallet not found for session start")
			}

			return errors.Wrap(findErr, "failed to load wallet for reserve check")
		}

		reserve := int64(srv.reserveMinutes) * room.PricePerMinute
		if wallet.Balance < reserve {
			return errors.Wrapf(domainerrors.ErrInsufficientFunds, "balance below %d-minute reserve", srv.reserveMinutes)
		}

		session = &entity.Session{
			ID:            uuid.New(),
			UserID:        input.UserID,
			RoomID:        room.ID,
			Status:        entity.SessionActive,
			StartTime:     time.Now(),
			CostPerMinute: room.PricePerMinute,
		}

		if createErr := sessionRepo.Create(ctx, session); createErr != nil {
			if errors.Is(createErr, repository.ErrDuplicateActiveSession) {
				return errors.Wrap(domainerrors.ErrRoomHasActiveSession, "concurrent session start lost the race")
			}

			return errors.Wrap(createErr, "failed to create session")
		}

		if updateErr := roomRepo.UpdateStatus(ctx, room.ID, entity.RoomOccupied); updateErr != nil {
			return errors.Wrap(updateErr, "failed to mark room occupied")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to start session", slog.Any("userID", input.UserID), slog.Any("roomID", roomID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute session start transaction")
	}

	session.Room = room
	srv.log(ctx).Info("Session started", slog.Any("sessionID", session.ID), slog.Any("roomID", room.ID))

	srv.emit(ctx, service.EventSessionStarted, input.UserID, map[string]any{
		"session_id":  session.ID.String(),
		"room_id":     room.ID.String(),
		"room_number": room.RoomNumber,
	})
	srv.emit(ctx, service.EventRoomStatusChanged, input.UserID, map[string]any{
		"room_id": room.ID.String(),
		"status":  string(entity.RoomOccupied),
	})

	return session, nil
}

// EndSession bills elapsed time at the snapshotted rate and completes the
// session. Debit and state change share one transaction: if the wallet cannot
// cover the cost, everything rolls back and the session stays active.
func (srv *sessionService) EndSession(ctx context.Context, userID, sessionID uuid.UUID) (*usecase.EndSessionOutput, error) {
	srv.log(ctx).Info("Ending session", slog.Any("userID", userID), slog.Any("sessionID", sessionID))

	var session *entity.Session
	var ledgerTx *entity.Transaction
	var room *entity.Room

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessionRepo := repoFactory.NewSessionRepository()
		roomRepo := repoFactory.NewRoomRepository()

		var findErr error
		session, findErr = sessionRepo.FindByIDForUpdate(ctx, sessionID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrSessionNotFound) {
				return errors.Wrap(domainerrors.ErrSessionNotFound, "session not found")
			}

			return errors.Wrap(findErr, "failed to lock session for end")
		}

		if session.UserID != userID {
			return errors.Wrap(domainerrors.ErrForbidden, "session belongs to another user")
		}

		if session.Status != entity.SessionActive {
			return errors.Wrap(domainerrors.ErrSessionNotActive, "session is not active")
		}

		room, findErr = roomRepo.FindByID(ctx, session.RoomID)
		if findErr != nil {
			return errors.Wrap(findErr, "failed to load room for session end")
		}

		endTime := time.Now()
		minutes := session.BillableMinutes(endTime)
		totalCost := session.CostAt(endTime)

		if totalCost > 0 {
			var debitErr error
			ledgerTx, debitErr = debitWallet(
				ctx, repoFactory, userID, totalCost,
				entity.TransactionSessionPayment,
				fmt.Sprintf("Session payment for room %s (%d minutes)", room.RoomNumber, minutes),
			)
			if debitErr != nil {
				return debitErr
			}
		}

		session.Status = entity.SessionCompleted
		session.EndTime = &endTime
		session.Duration = minutes
		session.TotalCost = totalCost
		session.IsPaid = true

		if updateErr := sessionRepo.Update(ctx, session); updateErr != nil {
			return errors.Wrap(updateErr, "failed to complete session")
		}

		if updateErr := roomRepo.UpdateStatus(ctx, session.RoomID, entity.RoomAvailable); updateErr != nil {
			return errors.Wrap(updateErr, "failed to release room")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to end session", slog.Any("sessionID", sessionID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute session end transaction")
	}

	session.Room = room
	srv.log(ctx).Info("Session ended",
		slog.Any("sessionID", session.ID),
		slog.Int("minutes", session.Duration),
		slog.Int64("totalCost", session.TotalCost))

	srv.emit(ctx, service.EventSessionEnded, userID, map[string]any{
		"session_id": session.ID.String(),
		"room_id":    session.RoomID.String(),
		"minutes":    session.Duration,
		"total_cost": session.TotalCost,
	})
	srv.emit(ctx, service.EventRoomStatusChanged, userID, map[string]any{
		"room_id": session.RoomID.String(),
		"status":  string(entity.RoomAvailable),
	})

	return &usecase.EndSessionOutput{Session: session, Transaction: ledgerTx}, nil
}

// GetActiveSession retrieves the user's active session with duration and cost
// projected to now, so clients can show the running meter.
func (srv *sessionService) GetActiveSession(ctx context.Context, userID uuid.UUID) (*usecase.ActiveSessionOutput, error) {
	session, err := srv.sessionRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, errors.Wrap(domainerrors.ErrSessionNotFound, "no active session")
		}

		return nil, errors.Wrap(err, "failed to find active session")
	}

	now := time.Now()

	return &usecase.ActiveSessionOutput{
		Session:         session,
		CurrentDuration: session.BillableMinutes(now),
		CurrentCost:     session.CostAt(now),
	}, nil
}

// GetSession retrieves a session by ID. Customers may only read their own sessions.
func (srv *sessionService) GetSession(ctx context.Context, requesterID, sessionID uuid.UUID, isAdmin bool) (*entity.Session, error) {
	session, err := srv.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, errors.Wrap(domainerrors.ErrSessionNotFound, "session not found")
		}

		return nil, errors.Wrap(err, "failed to find session")
	}

	if !isAdmin && session.UserID != requesterID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "session belongs to another user")
	}

	return session, nil
}

// GetSessionHistory retrieves a page of the user's past sessions, newest first.
func (srv *sessionService) GetSessionHistory(ctx context.Context, userID uuid.UUID, limit, offset int) (*usecase.SessionPage, error) {
	sessions, err := srv.sessionRepo.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session history")
	}

	total, err := srv.sessionRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count sessions")
	}

	return &usecase.SessionPage{Sessions: sessions, Total: total}, nil
}

// resolveRoomID determines the target room from either a direct room ID or a
// scanned QR token.
func (srv *sessionService) resolveRoomID(input usecase.StartSessionInput) (uuid.UUID, error) {
	if input.QRToken != "" {
		roomID, err := srv.roomTokens.Verify(input.QRToken)
		if err != nil {
			return uuid.Nil, errors.Wrap(domainerrors.ErrInvalidQRToken, "failed to verify room token")
		}

		return roomID, nil
	}

	if input.RoomID != nil {
		return *input.RoomID, nil
	}

	return uuid.Nil, errors.Wrap(domainerrors.ErrValidationFailed, "either room id or qr token is required")
}

// emit publishes a broadcast event after commit, logging failures only.
func (srv *sessionService) emit(ctx context.Context, name string, userID uuid.UUID, payload map[string]any) {
	event := &service.BroadcastEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Event:      name,
		UserID:     userID,
		Payload:    payload,
		OccurredAt: time.Now(),
	}

	if err := srv.publisher.PublishBroadcastEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish event", slog.String("event", name), slog.Any("error", err))
	}
}
