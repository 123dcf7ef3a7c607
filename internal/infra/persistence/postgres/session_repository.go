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

// sessionRepository implements the repository.SessionRepository interface.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{
		db: db,
	}
}

// Create persists a new session. The partial unique indexes on user_id and
// room_id reject a second ACTIVE session, which surfaces as
// ErrDuplicateActiveSession.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateActiveSession
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrRoomNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt
	session.UpdatedAt = sessionM.UpdatedAt

	return nil
}

// FindByID retrieves a session by its unique ID.
func (repo *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var sessionM model.SessionModel

	if err := repo.db.WithContext(ctx).
		Preload("Room").
		Where("id = ?", id).
		First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session by ID")
	}

	return toSessionDomain(&sessionM), nil
}

// FindByIDForUpdate retrieves a session with a FOR UPDATE row lock.
// Must be called inside a transaction.
func (repo *sessionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	var sessionM model.SessionModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to lock session by ID")
	}

	return toSessionDomain(&sessionM), nil
}

// FindActiveByUserID retrieves the user's active session, if any.
func (repo *sessionRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	var sessionM model.SessionModel

	if err := repo.db.WithContext(ctx).
		Preload("Room").
		Where("user_id = ? AND status = ?", userID, string(entity.SessionActive)).
		First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find active session by user")
	}

	return toSessionDomain(&sessionM), nil
}

// FindActiveByRoomID retrieves the room's active session, if any.
func (repo *sessionRepository) FindActiveByRoomID(ctx context.Context, roomID uuid.UUID) (*entity.Session, error) {
	var sessionM model.SessionModel

	if err := repo.db.WithContext(ctx).
		Where("room_id = ? AND status = ?", roomID, string(entity.SessionActive)).
		First(&sessionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find active session by room")
	}

	return toSessionDomain(&sessionM), nil
}

// FindAllActive retrieves all active sessions, oldest first.
func (repo *sessionRepository) FindAllActive(ctx context.Context) ([]*entity.Session, error) {
	var sessionModels []*model.SessionModel

	if err := repo.db.WithContext(ctx).
		Preload("Room").
		Where("status = ?", string(entity.SessionActive)).
		Order("start_time ASC").
		Find(&sessionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find active sessions")
	}

	return toSessionDomainSlice(sessionModels), nil
}

// FindByUserID retrieves a user's sessions, newest first.
func (repo *sessionRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Session, error) {
	var sessionModels []*model.SessionModel

	if err := repo.db.WithContext(ctx).
		Preload("Room").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&sessionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find sessions by user")
	}

	return toSessionDomainSlice(sessionModels), nil
}

// CountByUserID returns the total number of sessions for a user.
func (repo *sessionRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count sessions by user")
	}

	return count, nil
}

// Update modifies an existing session.
func (repo *sessionRepository) Update(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	result := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Where("id = ?", session.ID).
		Updates(map[string]any{
			"status":     sessionM.Status,
			"end_time":   sessionM.EndTime,
			"duration":   sessionM.Duration,
			"total_cost": sessionM.TotalCost,
			"is_paid":    sessionM.IsPaid,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update session")
	}

	if result.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

// List retrieves sessions across all users, newest first.
func (repo *sessionRepository) List(ctx context.Context, limit, offset int) ([]*entity.Session, error) {
	var sessionModels []*model.SessionModel

	if err := repo.db.WithContext(ctx).
		Preload("Room").
		Order("start_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&sessionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}

	return toSessionDomainSlice(sessionModels), nil
}

// Count returns the total number of sessions.
func (repo *sessionRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.SessionModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count sessions")
	}

	return count, nil
}

// --- Mapper Functions ---

// toSessionDomain converts a GORM SessionModel to a domain Session entity.
func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		ID:            data.ID,
		UserID:        data.UserID,
		RoomID:        data.RoomID,
		Status:        entity.SessionStatus(data.Status),
		StartTime:     data.StartTime,
		EndTime:       data.EndTime,
		Duration:      data.Duration,
		CostPerMinute: data.CostPerMinute,
		TotalCost:     data.TotalCost,
		IsPaid:        data.IsPaid,
		Room:          toRoomDomain(data.Room),
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func toSessionDomainSlice(models []*model.SessionModel) []*entity.Session {
	sessions := make([]*entity.Session, 0, len(models))
	for _, sessionM := range models {
		sessions = append(sessions, toSessionDomain(sessionM))
	}

	return sessions
}

// fromSessionDomain converts a domain Session entity to a GORM SessionModel.
func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		ID:            data.ID,
		UserID:        data.UserID,
		RoomID:        data.RoomID,
		Status:        string(data.Status),
		StartTime:     data.StartTime,
		EndTime:       data.EndTime,
		Duration:      data.Duration,
		CostPerMinute: data.CostPerMinute,
		TotalCost:     data.TotalCost,
		IsPaid:        data.IsPaid,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
