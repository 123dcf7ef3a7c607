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
)

// transactionRepository implements the repository.TransactionRepository
// interface over the append-only ledger table.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository is the constructor for transactionRepository.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create appends a ledger transaction. The unique index on external_ref turns
// a duplicate gateway reference into ErrDuplicateExternalRef.
func (repo *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	txM := fromTransactionDomain(tx)

	if err := repo.db.WithContext(ctx).Create(txM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateExternalRef
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrWalletNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create ledger transaction")
	}

	tx.ID = txM.ID
	tx.CreatedAt = txM.CreatedAt

	return nil
}

// FindByExternalRef retrieves a ledger transaction by its external reference.
func (repo *transactionRepository) FindByExternalRef(ctx context.Context, externalRef string) (*entity.Transaction, error) {
	var txM model.TransactionModel

	if err := repo.db.WithContext(ctx).
		Where("external_ref = ?", externalRef).
		First(&txM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTransactionNotFound
		}

		return nil, errors.Wrap(err, "failed to find transaction by external ref")
	}

	return toTransactionDomain(&txM), nil
}

// FindByWalletID retrieves ledger transactions for a wallet, newest first.
func (repo *transactionRepository) FindByWalletID(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entity.Transaction, error) {
	var txModels []*model.TransactionModel

	if err := repo.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find transactions by wallet")
	}

	transactions := make([]*entity.Transaction, 0, len(txModels))
	for _, txM := range txModels {
		transactions = append(transactions, toTransactionDomain(txM))
	}

	return transactions, nil
}

// CountByWalletID returns the total number of ledger transactions for a wallet.
func (repo *transactionRepository) CountByWalletID(ctx context.Context, walletID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("wallet_id = ?", walletID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count transactions by wallet")
	}

	return count, nil
}

// SumByType returns the sum of transaction amounts for the given type.
func (repo *transactionRepository) SumByType(ctx context.Context, txType entity.TransactionType) (int64, error) {
	var sum int64

	if err := repo.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("type = ?", string(txType)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum transactions by type")
	}

	return sum, nil
}

// --- Mapper Functions ---

// toTransactionDomain converts a GORM TransactionModel to a domain Transaction entity.
func toTransactionDomain(data *model.TransactionModel) *entity.Transaction {
	if data == nil {
		return nil
	}

	externalRef := ""
	if data.ExternalRef != nil {
		externalRef = *data.ExternalRef
	}

	return &entity.Transaction{
		ID:            data.ID,
		WalletID:      data.WalletID,
		Type:          entity.TransactionType(data.Type),
		Amount:        data.Amount,
		BalanceBefore: data.BalanceBefore,
		BalanceAfter:  data.BalanceAfter,
		Description:   data.Description,
		ExternalRef:   externalRef,
		CreatedAt:     data.CreatedAt,
	}
}

// fromTransactionDomain converts a domain Transaction entity to a GORM TransactionModel.
// An empty ExternalRef is stored as NULL so the unique index only applies to
// real gateway references.
func fromTransactionDomain(data *entity.Transaction) *model.TransactionModel {
	if data == nil {
		return nil
	}

	var externalRef *string
	if data.ExternalRef != "" {
		externalRef = &data.ExternalRef
	}

	return &model.TransactionModel{
		ID:            data.ID,
		WalletID:      data.WalletID,
		Type:          string(data.Type),
		Amount:        data.Amount,
		BalanceBefore: data.BalanceBefore,
		BalanceAfter:  data.BalanceAfter,
		Description:   data.Description,
		ExternalRef:   externalRef,
		CreatedAt:     data.CreatedAt,
	}
}
