package usecase

import (
	"context"

	"playden/internal/domain/entity"
	"playden/internal/domain/service"

	"github.com/google/uuid"
)

// WalletOutput bundles the wallet with its most recent ledger entries.
type WalletOutput struct {
	Wallet       *entity.Wallet
	Transactions []*entity.Transaction
}

// TransactionPage is one page of ledger history.
type TransactionPage struct {
	Transactions []*entity.Transaction
	Total        int64
}

// WalletUsecase defines the interface for wallet and deposit operations.
type WalletUsecase interface {
	// GetWallet retrieves the user's wallet with its recent transactions.
	GetWallet(ctx context.Context, userID uuid.UUID) (*WalletOutput, error)

	// GetTransactions retrieves a page of the user's ledger history, newest first.
	GetTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) (*TransactionPage, error)

	// CreateDepositIntent registers a deposit with the payment gateway and
	// returns the intent for client-side confirmation. No ledger entry is
	// written until the payment succeeds.
	CreateDepositIntent(ctx context.Context, userID uuid.UUID, amount int64) (*service.PaymentIntent, error)

	// ConfirmDeposit verifies the payment succeeded at the gateway and credits
	// the wallet. Crediting is idempotent on the payment intent ID, so the
	// client confirm path and the webhook path cannot double-credit.
	ConfirmDeposit(ctx context.Context, userID uuid.UUID, paymentIntentID string) (*entity.Transaction, error)

	// HandleWebhookEvent processes a verified gateway webhook. Successful
	// payment events credit the wallet through the same idempotent path as
	// ConfirmDeposit. Unrecognized event types are ignored.
	HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error
}
