// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"

	"playden/internal/domain/entity"
	domainerrors "playden/internal/domain/errors"
	"playden/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// creditWallet locks the wallet row, appends a credit ledger entry, and raises
// the balance, all through repositories bound to the caller's transaction.
// BalanceBefore/BalanceAfter are snapshotted under the lock so the ledger can
// be replayed independently of the wallet row.
func creditWallet(
	ctx context.Context,
	repoFactory repository.RepositoryFactory,
	userID uuid.UUID,
	amount int64,
	txType entity.TransactionType,
	description string,
	externalRef string,
) (*entity.Transaction, error) {
	if amount <= 0 {
		return nil, errors.Wrap(domainerrors.ErrInvalidAmount, "credit amount must be positive")
	}

	walletRepo := repoFactory.NewWalletRepository()
	txRepo := repoFactory.NewTransactionRepository()

	wallet, err := walletRepo.FindByUserIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrWalletNotFound) {
			return nil, errors.Wrap(domainerrors.ErrWalletNotFound, "wallet not found for credit")
		}

		return nil, errors.Wrap(err, "failed to lock wallet for credit")
	}

	ledgerTx := &entity.Transaction{
		ID:            uuid.New(),
		WalletID:      wallet.ID,
		Type:          txType,
		Amount:        amount,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  wallet.Balance + amount,
		Description:   description,
		ExternalRef:   externalRef,
	}

	if err := txRepo.Create(ctx, ledgerTx); err != nil {
		if errors.Is(err, repository.ErrDuplicateExternalRef) {
			return nil, errors.Wrap(domainerrors.ErrDepositAlreadyProcessed, "external reference already credited")
		}

		return nil, errors.Wrap(err, "failed to append credit ledger entry")
	}

	if err := walletRepo.UpdateBalance(ctx, wallet.ID, ledgerTx.BalanceAfter); err != nil {
		return nil, errors.Wrap(err, "failed to update wallet balance after credit")
	}

	return ledgerTx, nil
}

// debitWallet locks the wallet row, verifies the balance covers the amount,
// appends a debit ledger entry (stored with a negative signed amount), and
// lowers the balance. A balance that would go negative aborts the caller's
// transaction with ErrInsufficientFunds and leaves the wallet untouched.
func debitWallet(
	ctx context.Context,
	repoFactory repository.RepositoryFactory,
	userID uuid.UUID,
	amount int64,
	txType entity.TransactionType,
	description string,
) (*entity.Transaction, error) {
	if amount <= 0 {
		return nil, errors.Wrap(domainerrors.ErrInvalidAmount, "debit amount must be positive")
	}

	walletRepo := repoFactory.NewWalletRepository()
	txRepo := repoFactory.NewTransactionRepository()

	wallet, err := walletRepo.FindByUserIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrWalletNotFound) {
			return nil, errors.Wrap(domainerrors.ErrWalletNotFound, "wallet not found for debit")
		}

		return nil, errors.Wrap(err, "failed to lock wallet for debit")
	}

	if wallet.Balance < amount {
		return nil, errors.Wrap(domainerrors.ErrInsufficientFunds, "balance does not cover debit")
	}

	ledgerTx := &entity.Transaction{
		ID:            uuid.New(),
		WalletID:      wallet.ID,
		Type:          txType,
		Amount:        -amount,
		BalanceBefore: wallet.Balance,
		BalanceAfter:  wallet.Balance - amount,
		Description:   description,
	}

	if err := txRepo.Create(ctx, ledgerTx); err != nil {
		return nil, errors.Wrap(err, "failed to append debit ledger entry")
	}

	if err := walletRepo.UpdateBalance(ctx, wallet.ID, ledgerTx.BalanceAfter); err != nil {
		return nil, errors.Wrap(err, "failed to update wallet balance after debit")
	}

	return ledgerTx, nil
}
