package impl

import (
	"context"
	"fmt"
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

// Deposit limits in cents. Below the minimum the gateway fee dominates, above
// the maximum manual review is required.
const (
	minDepositAmount = 500
	maxDepositAmount = 100000

	recentTransactionCount = 10
)

// walletService implements the WalletUsecase interface.
type walletService struct {
	txManager  repository.TransactionManager
	walletRepo repository.WalletRepository
	txRepo     repository.TransactionRepository
	gateway    service.PaymentGateway
	publisher  service.EventPublisher
	logger     *slog.Logger
}

// WalletServiceParams holds dependencies for WalletService, injected by Fx.
type WalletServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	WalletRepo repository.WalletRepository
	TxRepo     repository.TransactionRepository
	Gateway    service.PaymentGateway
	Publisher  service.EventPublisher
	Logger     *slog.Logger
}

// NewWalletService is the constructor for walletService.
func NewWalletService(params WalletServiceParams) usecase.WalletUsecase {
	return &walletService{
		txManager:  params.TxManager,
		walletRepo: params.WalletRepo,
		txRepo:     params.TxRepo,
		gateway:    params.Gateway,
		publisher:  params.Publisher,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *walletService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetWallet retrieves the user's wallet with its recent transactions.
func (srv *walletService) GetWallet(ctx context.Context, userID uuid.UUID) (*usecase.WalletOutput, error) {
	wallet, err := srv.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrWalletNotFound) {
			return nil, errors.Wrap(domainerrors.ErrWalletNotFound, "wallet not found")
		}

		return nil, errors.Wrap(err, "failed to find wallet")
	}

	transactions, err := srv.txRepo.FindByWalletID(ctx, wallet.ID, recentTransactionCount, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recent transactions")
	}

	return &usecase.WalletOutput{Wallet: wallet, Transactions: transactions}, nil
}

// GetTransactions retrieves a page of the user's ledger history, newest first.
func (srv *walletService) GetTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) (*usecase.TransactionPage, error) {
	wallet, err := srv.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrWalletNotFound) {
			return nil, errors.Wrap(domainerrors.ErrWalletNotFound, "wallet not found")
		}

		return nil, errors.Wrap(err, "failed to find wallet")
	}

	transactions, err := srv.txRepo.FindByWalletID(ctx, wallet.ID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load transactions")
	}

	total, err := srv.txRepo.CountByWalletID(ctx, wallet.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count transactions")
	}

	return &usecase.TransactionPage{Transactions: transactions, Total: total}, nil
}

// CreateDepositIntent registers a deposit with the payment gateway. No ledger
// entry is written until the payment succeeds.
func (srv *walletService) CreateDepositIntent(ctx context.Context, userID uuid.UUID, amount int64) (*service.PaymentIntent, error) {
	if amount < minDepositAmount || amount > maxDepositAmount {
		return nil, errors.Wrapf(domainerrors.ErrInvalidAmount, "deposit amount %d outside allowed range", amount)
	}

	// Ensure the wallet exists before touching the gateway.
	if _, err := srv.walletRepo.FindByUserID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrWalletNotFound) {
			return nil, errors.Wrap(domainerrors.ErrWalletNotFound, "wallet not found")
		}

		return nil, errors.Wrap(err, "failed to find wallet")
	}

	intent, err := srv.gateway.CreateIntent(ctx, userID, amount)
	if err != nil {
		srv.log(ctx).Error("Failed to create payment intent", slog.Any("userID", userID), slog.Int64("amount", amount), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrGatewayFailure, "failed to create payment intent")
	}

	srv.log(ctx).Info("Created deposit intent", slog.Any("userID", userID), slog.String("intentID", intent.ID), slog.Int64("amount", amount))

	return intent, nil
}

// ConfirmDeposit verifies the payment succeeded at the gateway and credits the
// wallet. The gateway call happens outside the database transaction, and the
// credit is keyed on the payment intent ID so confirm and webhook cannot
// double-credit.
func (srv *walletService) ConfirmDeposit(ctx context.Context, userID uuid.UUID, paymentIntentID string) (*entity.Transaction, error) {
	// Fast path: already credited, return the existing ledger entry.
	if existing, err := srv.txRepo.FindByExternalRef(ctx, paymentIntentID); err == nil {
		srv.log(ctx).Info("Deposit already credited", slog.String("intentID", paymentIntentID))

		return existing, nil
	} else if !errors.Is(err, repository.ErrTransactionNotFound) {
		return nil, errors.Wrap(err, "failed to check existing deposit")
	}

	intent, err := srv.gateway.ConfirmDeposit(ctx, paymentIntentID)
	if err != nil {
		srv.log(ctx).Error("Failed to confirm payment intent", slog.String("intentID", paymentIntentID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrGatewayFailure, "failed to confirm payment intent")
	}

	// The credit goes to the wallet the intent was created for. Knowing an
	// intent ID must not let another user capture the deposit.
	if intent.UserID != userID {
		srv.log(ctx).Warn("Rejected deposit confirm for foreign intent", slog.Any("userID", userID), slog.String("intentID", paymentIntentID))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "payment intent belongs to another user")
	}

	ledgerTx, err := srv.creditDeposit(ctx, userID, intent.Amount, paymentIntentID)
	if err != nil {
		return nil, err
	}

	srv.emitDeposited(ctx, userID, ledgerTx)

	return ledgerTx, nil
}

// HandleWebhookEvent processes a verified gateway webhook. Successful payment
// events credit the wallet through the same idempotent path as ConfirmDeposit.
func (srv *walletService) HandleWebhookEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := srv.gateway.ParseWebhookEvent(payload, signature)
	if err != nil {
		srv.log(ctx).Warn("Rejected webhook with invalid signature", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrValidationFailed, "invalid webhook signature")
	}

	if event.Type != "payment_intent.succeeded" {
		srv.log(ctx).Debug("Ignoring webhook event", slog.String("type", event.Type))

		return nil
	}

	// Intents created outside this platform carry no owner metadata. Ack them
	// so the gateway stops retrying, there is no wallet to credit.
	if event.UserID == uuid.Nil {
		srv.log(ctx).Warn("Ignoring payment event without wallet owner", slog.String("intentID", event.PaymentIntentID))

		return nil
	}

	ledgerTx, err := srv.creditDeposit(ctx, event.UserID, event.Amount, event.PaymentIntentID)
	if err != nil {
		// The confirm path may have credited this intent already, webhooks retry
		// so treat that as success.
		if errors.Is(err, domainerrors.ErrDepositAlreadyProcessed) {
			srv.log(ctx).Info("Webhook deposit already credited", slog.String("intentID", event.PaymentIntentID))

			return nil
		}

		return err
	}

	srv.emitDeposited(ctx, event.UserID, ledgerTx)

	return nil
}

func (srv *walletService) creditDeposit(ctx context.Context, userID uuid.UUID, amount int64, paymentIntentID string) (*entity.Transaction, error) {
	var ledgerTx *entity.Transaction

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var creditErr error
		ledgerTx, creditErr = creditWallet(
			ctx, repoFactory, userID, amount,
			entity.TransactionDeposit,
			fmt.Sprintf("Wallet deposit via card payment (%s)", paymentIntentID),
			paymentIntentID,
		)

		return creditErr
	})

	if err != nil {
		srv.log(ctx).Error("Failed to credit deposit", slog.Any("userID", userID), slog.String("intentID", paymentIntentID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute deposit credit transaction")
	}

	srv.log(ctx).Info("Credited deposit", slog.Any("userID", userID), slog.String("intentID", paymentIntentID), slog.Int64("amount", amount))

	return ledgerTx, nil
}

// emitDeposited publishes the deposit event after commit. Publishing is
// fire-and-forget, failures are logged only.
func (srv *walletService) emitDeposited(ctx context.Context, userID uuid.UUID, ledgerTx *entity.Transaction) {
	event := &service.BroadcastEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Event:     service.EventWalletDeposited,
		UserID:    userID,
		Payload: map[string]any{
			"transaction_id": ledgerTx.ID.String(),
			"amount":         ledgerTx.Amount,
			"balance":        ledgerTx.BalanceAfter,
		},
		OccurredAt: time.Now(),
	}

	if err := srv.publisher.PublishBroadcastEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish deposit event", slog.Any("userID", userID), slog.Any("error", err))
	}
}
