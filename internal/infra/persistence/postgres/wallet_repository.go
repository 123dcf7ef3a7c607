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

// walletRepository implements the repository.WalletRepository interface.
type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository is the constructor for walletRepository.
func NewWalletRepository(db *gorm.DB) repository.WalletRepository {
	return &walletRepository{
		db: db,
	}
}

// Create persists a new wallet.
func (repo *walletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	walletM := fromWalletDomain(wallet)

	if err := repo.db.WithContext(ctx).Create(walletM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create wallet")
	}

	wallet.ID = walletM.ID
	wallet.CreatedAt = walletM.CreatedAt
	wallet.UpdatedAt = walletM.UpdatedAt

	return nil
}

// FindByUserID retrieves the wallet owned by the given user.
func (repo *walletRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	var walletM model.WalletModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&walletM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWalletNotFound
		}

		return nil, errors.Wrap(err, "failed to find wallet by user ID")
	}

	return toWalletDomain(&walletM), nil
}

// FindByUserIDForUpdate retrieves the wallet with a FOR UPDATE row lock.
// Must be called inside a transaction.
func (repo *walletRepository) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error) {
	var walletM model.WalletModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&walletM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWalletNotFound
		}

		return nil, errors.Wrap(err, "failed to lock wallet by user ID")
	}

	return toWalletDomain(&walletM), nil
}

// UpdateBalance sets the wallet balance to the given value.
func (repo *walletRepository) UpdateBalance(ctx context.Context, walletID uuid.UUID, balance int64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.WalletModel{}).
		Where("id = ?", walletID).
		Update("balance", balance)

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return errors.Wrap(result.Error, "wallet balance constraint violated")
		}

		return errors.Wrap(result.Error, "failed to update wallet balance")
	}

	if result.RowsAffected == 0 {
		return repository.ErrWalletNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toWalletDomain converts a GORM WalletModel to a domain Wallet entity.
func toWalletDomain(data *model.WalletModel) *entity.Wallet {
	if data == nil {
		return nil
	}

	return &entity.Wallet{
		ID:        data.ID,
		UserID:    data.UserID,
		Balance:   data.Balance,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromWalletDomain converts a domain Wallet entity to a GORM WalletModel.
func fromWalletDomain(data *entity.Wallet) *model.WalletModel {
	if data == nil {
		return nil
	}

	return &model.WalletModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Balance:   data.Balance,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
