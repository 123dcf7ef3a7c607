package postgres

import (
	"context"

	"playden/internal/domain/entity"
	domainerrors "playden/internal/domain/errors"
	"playden/internal/domain/repository"
	"playden/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// roomRepository implements the repository.RoomRepository interface.
type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository is the constructor for roomRepository.
func NewRoomRepository(db *gorm.DB) repository.RoomRepository {
	return &roomRepository{
		db: db,
	}
}

// Create persists a new room.
func (repo *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	roomM := fromRoomDomain(room)

	if err := repo.db.WithContext(ctx).Create(roomM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateRoomNumber
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create room")
	}

	room.ID = roomM.ID
	room.CreatedAt = roomM.CreatedAt
	room.UpdatedAt = roomM.UpdatedAt

	return nil
}

// FindByID retrieves a room by its unique ID.
func (repo *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	var roomM model.RoomModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&roomM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}

		return nil, errors.Wrap(err, "failed to find room by ID")
	}

	return toRoomDomain(&roomM), nil
}

// FindByIDForUpdate retrieves a room with a FOR UPDATE row lock.
// Must be called inside a transaction.
func (repo *roomRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	var roomM model.RoomModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&roomM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}

		return nil, errors.Wrap(err, "failed to lock room by ID")
	}

	return toRoomDomain(&roomM), nil
}

// FindByRoomNumber retrieves a room by its human-facing number.
func (repo *roomRepository) FindByRoomNumber(ctx context.Context, roomNumber string) (*entity.Room, error) {
	var roomM model.RoomModel

	if err := repo.db.WithContext(ctx).
		Where("room_number = ?", roomNumber).
		First(&roomM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}

		return nil, errors.Wrap(err, "failed to find room by room number")
	}

	return toRoomDomain(&roomM), nil
}

// List retrieves rooms ordered by room number, optionally filtered by status.
func (repo *roomRepository) List(ctx context.Context, status *entity.RoomStatus) ([]*entity.Room, error) {
	query := repo.db.WithContext(ctx).Order("room_number ASC")
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var roomModels []*model.RoomModel
	if err := query.Find(&roomModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list rooms")
	}

	rooms := make([]*entity.Room, 0, len(roomModels))
	for _, roomM := range roomModels {
		rooms = append(rooms, toRoomDomain(roomM))
	}

	return rooms, nil
}

// Update modifies an existing room.
func (repo *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	roomM := fromRoomDomain(room)

	result := repo.db.WithContext(ctx).
		Model(&model.RoomModel{}).
		Where("id = ?", room.ID).
		Updates(map[string]any{
			"name":             roomM.Name,
			"description":      roomM.Description,
			"status":           roomM.Status,
			"price_per_minute": roomM.PricePerMinute,
			"console_type":     roomM.ConsoleType,
			"capacity":         roomM.Capacity,
			"image_url":        roomM.ImageURL,
			"amenities":        roomM.Amenities,
			"qr_token":         roomM.QRToken,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update room")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRoomNotFound
	}

	return nil
}

// UpdateStatus sets the room status.
func (repo *roomRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.RoomStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RoomModel{}).
		Where("id = ?", id).
		Update("status", string(status))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update room status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRoomNotFound
	}

	return nil
}

// Delete removes a room by its ID (soft delete).
func (repo *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RoomModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete room")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRoomNotFound
	}

	return nil
}

// Count returns the total number of rooms.
func (repo *roomRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.RoomModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count rooms")
	}

	return count, nil
}

// --- Mapper Functions ---

// toRoomDomain converts a GORM RoomModel to a domain Room entity.
func toRoomDomain(data *model.RoomModel) *entity.Room {
	if data == nil {
		return nil
	}

	return &entity.Room{
		ID:             data.ID,
		RoomNumber:     data.RoomNumber,
		Name:           data.Name,
		Description:    data.Description,
		Status:         entity.RoomStatus(data.Status),
		PricePerMinute: data.PricePerMinute,
		ConsoleType:    data.ConsoleType,
		Capacity:       data.Capacity,
		ImageURL:       data.ImageURL,
		Amenities:      data.Amenities,
		QRToken:        data.QRToken,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromRoomDomain converts a domain Room entity to a GORM RoomModel.
func fromRoomDomain(data *entity.Room) *model.RoomModel {
	if data == nil {
		return nil
	}

	return &model.RoomModel{
		ID:             data.ID,
		RoomNumber:     data.RoomNumber,
		Name:           data.Name,
		Description:    data.Description,
		Status:         string(data.Status),
		PricePerMinute: data.PricePerMinute,
		ConsoleType:    data.ConsoleType,
		Capacity:       data.Capacity,
		ImageURL:       data.ImageURL,
		Amenities:      data.Amenities,
		QRToken:        data.QRToken,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
