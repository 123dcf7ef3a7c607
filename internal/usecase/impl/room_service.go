package impl

import (
	"context"
	"log/slog"
	"time"

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

// roomService implements the RoomUsecase interface.
type roomService struct {
	txManager  repository.TransactionManager
	roomRepo   repository.RoomRepository
	roomTokens service.RoomTokenService
	qrcode     service.QRCodeService
	posters    service.PosterStore
	publisher  service.EventPublisher
	logger     *slog.Logger
}

// RoomServiceParams holds dependencies for RoomService, injected by Fx.
type RoomServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	RoomRepo   repository.RoomRepository
	RoomTokens service.RoomTokenService
	QRCode     service.QRCodeService
	Posters    service.PosterStore
	Publisher  service.EventPublisher
	Logger     *slog.Logger
}

// NewRoomService is the constructor for roomService.
func NewRoomService(params RoomServiceParams) usecase.RoomUsecase {
	return &roomService{
		txManager:  params.TxManager,
		roomRepo:   params.RoomRepo,
		roomTokens: params.RoomTokens,
		qrcode:     params.QRCode,
		posters:    params.Posters,
		publisher:  params.Publisher,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *roomService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListRooms retrieves rooms, optionally filtered by status.
func (srv *roomService) ListRooms(ctx context.Context, status *entity.RoomStatus) ([]*entity.Room, error) {
	rooms, err := srv.roomRepo.List(ctx, status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rooms")
	}

	return rooms, nil
}

// GetRoom retrieves a room by its ID.
func (srv *roomService) GetRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	room, err := srv.roomRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRoomNotFound, "room not found")
		}

		return nil, errors.Wrap(err, "failed to find room")
	}

	return room, nil
}

// CreateRoom creates a room and signs its QR token.
func (srv *roomService) CreateRoom(ctx context.Context, input usecase.CreateRoomInput) (*entity.Room, error) {
	srv.log(ctx).Info("Creating room", slog.String("roomNumber", input.RoomNumber))

	room := &entity.Room{
		ID:             uuid.New(),
		RoomNumber:     input.RoomNumber,
		Name:           input.Name,
		Description:    input.Description,
		Status:         entity.RoomAvailable,
		PricePerMinute: input.PricePerMinute,
		ConsoleType:    input.ConsoleType,
		Capacity:       input.Capacity,
		Amenities:      input.Amenities,
	}

	token, err := srv.roomTokens.Sign(room.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign room token")
	}
	room.QRToken = token

	if err := srv.roomRepo.Create(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicateRoomNumber) {
			return nil, errors.Wrap(domainerrors.ErrRoomNumberTaken, "room number already exists")
		}

		return nil, errors.Wrap(err, "failed to create room")
	}

	srv.log(ctx).Info("Room created", slog.Any("roomID", room.ID), slog.String("roomNumber", room.RoomNumber))

	srv.archivePoster(ctx, room)

	return room, nil
}

// archivePoster renders and stores the printable QR poster. Best effort, a
// failed archive never fails room creation.
func (srv *roomService) archivePoster(ctx context.Context, room *entity.Room) {
	png, err := srv.qrcode.GenerateRoomQR(room.QRToken)
	if err != nil {
		srv.log(ctx).Warn("Failed to render room QR poster", slog.Any("roomID", room.ID), slog.Any("error", err))

		return
	}

	if err := srv.posters.SaveRoomPoster(ctx, room.ID, png); err != nil {
		srv.log(ctx).Warn("Failed to archive room QR poster", slog.Any("roomID", room.ID), slog.Any("error", err))
	}
}

// UpdateRoom modifies a room. Status changes are checked against active
// sessions inside a transaction holding the room lock.
func (srv *roomService) UpdateRoom(ctx context.Context, id uuid.UUID, input usecase.UpdateRoomInput) (*entity.Room, error) {
	var room *entity.Room

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roomRepo := repoFactory.NewRoomRepository()
		sessionRepo := repoFactory.NewSessionRepository()

		var findErr error
		room, findErr = roomRepo.FindByIDForUpdate(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrRoomNotFound) {
				return errors.Wrap(domainerrors.ErrRoomNotFound, "room not found")
			}

			return errors.Wrap(findErr, "failed to lock room for update")
		}

		if input.Status != nil && *input.Status != room.Status {
			if !input.Status.IsValid() {
				return errors.Wrap(domainerrors.ErrValidationFailed, "unknown room status")
			}

			// A room with a running session cannot be manually re-statused, the
			// session end path owns that transition.
			if _, activeErr := sessionRepo.FindActiveByRoomID(ctx, id); activeErr == nil {
				return errors.Wrap(domainerrors.ErrRoomHasActiveSession, "room has an active session")
			} else if !errors.Is(activeErr, repository.ErrSessionNotFound) {
				return errors.Wrap(activeErr, "failed to check room sessions")
			}

			room.Status = *input.Status
		}

		applyRoomUpdates(room, input)

		if updateErr := roomRepo.Update(ctx, room); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update room")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to update room", slog.Any("roomID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute room update transaction")
	}

	if input.Status != nil {
		srv.emitStatusChanged(ctx, room)
	}

	return room, nil
}

// DeleteRoom removes a room. Rooms with an active session cannot be deleted.
func (srv *roomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		roomRepo := repoFactory.NewRoomRepository()
		sessionRepo := repoFactory.NewSessionRepository()

		if _, findErr := roomRepo.FindByIDForUpdate(ctx, id); findErr != nil {
			if errors.Is(findErr, repository.ErrRoomNotFound) {
				return errors.Wrap(domainerrors.ErrRoomNotFound, "room not found")
			}

			return errors.Wrap(findErr, "failed to lock room for delete")
		}

		if _, activeErr := sessionRepo.FindActiveByRoomID(ctx, id); activeErr == nil {
			return errors.Wrap(domainerrors.ErrRoomHasActiveSession, "room has an active session")
		} else if !errors.Is(activeErr, repository.ErrSessionNotFound) {
			return errors.Wrap(activeErr, "failed to check room sessions")
		}

		if deleteErr := roomRepo.Delete(ctx, id); deleteErr != nil {
			return errors.Wrap(deleteErr, "failed to delete room")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to delete room", slog.Any("roomID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute room delete transaction")
	}

	srv.log(ctx).Info("Room deleted", slog.Any("roomID", id))

	return nil
}

// VerifyQRToken validates a scanned token and returns the room it opens.
func (srv *roomService) VerifyQRToken(ctx context.Context, token string) (*entity.Room, error) {
	roomID, err := srv.roomTokens.Verify(token)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidQRToken, "failed to verify room token")
	}

	room, err := srv.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidQRToken, "token refers to unknown room")
		}

		return nil, errors.Wrap(err, "failed to find room for token")
	}

	return room, nil
}

// GetRoomQRImage renders the room's QR code as a PNG.
func (srv *roomService) GetRoomQRImage(ctx context.Context, id uuid.UUID) ([]byte, error) {
	room, err := srv.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcode.GenerateRoomQR(room.QRToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render room QR code")
	}

	return png, nil
}

func applyRoomUpdates(room *entity.Room, input usecase.UpdateRoomInput) {
	if input.Name != nil {
		room.Name = *input.Name
	}
	if input.ConsoleType != nil {
		room.ConsoleType = *input.ConsoleType
	}
	if input.Capacity != nil {
		room.Capacity = *input.Capacity
	}
	if input.PricePerMinute != nil {
		room.PricePerMinute = *input.PricePerMinute
	}
	if input.Description != nil {
		room.Description = *input.Description
	}
	if input.Amenities != nil {
		room.Amenities = input.Amenities
	}
}

func (srv *roomService) emitStatusChanged(ctx context.Context, room *entity.Room) {
	event := &service.BroadcastEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Event:     service.EventRoomStatusChanged,
		Payload: map[string]any{
			"room_id": room.ID.String(),
			"status":  string(room.Status),
		},
		OccurredAt: time.Now(),
	}

	if err := srv.publisher.PublishBroadcastEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish room status event", slog.Any("roomID", room.ID), slog.Any("error", err))
	}
}
