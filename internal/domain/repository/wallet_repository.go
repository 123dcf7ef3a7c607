// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"playden/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for wallet persistence.
var (
	// ErrWalletNotFound is returned when a wallet is not found.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrTransactionNotFound is returned when a ledger transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrDuplicateExternalRef is returned when a ledger transaction with the same
	// external reference already exists. Used for idempotent deposit crediting.
	ErrDuplicateExternalRef = errors.New("transaction with external reference already exists")
)

// WalletRepository defines the interface for wallet-related database operations.
type WalletRepository interface {
	// Create persists a new wallet, typically during user registration.
	Create(ctx context.Context, wallet *entity.Wallet) error

	// FindByUserID retrieves the wallet owned by the given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error)

	// FindByUserIDForUpdate retrieves the wallet with a row-level lock so the
	// balance cannot change underneath the caller. Must be called inside a
	// transaction.
	FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Wallet, error)

	// UpdateBalance sets the wallet balance to the given value.
	UpdateBalance(ctx context.Context, walletID uuid.UUID, balance int64) error
}

// TransactionRepository defines the interface for the append-only ledger.
// Ledger rows are immutable once written.
type TransactionRepository interface {
	// Create appends a ledger transaction.
	Create(ctx context.Context, tx *entity.Transaction) error

	// FindByExternalRef retrieves a ledger transaction by its external reference.
	FindByExternalRef(ctx context.Context, externalRef string) (*entity.Transaction, error)

	// FindByWalletID retrieves ledger transactions for a wallet, newest first.
	FindByWalletID(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*entity.Transaction, error)

	// CountByWalletID returns the total number of ledger transactions for a wallet.
	CountByWalletID(ctx context.Context, walletID uuid.UUID) (int64, error)

	// SumByType returns the sum of transaction amounts for the given type across
	// all wallets. Used for revenue reporting.
	SumByType(ctx context.Context, txType entity.TransactionType) (int64, error)
}
