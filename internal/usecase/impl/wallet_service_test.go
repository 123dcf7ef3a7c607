package impl

import (
	"context"
	"testing"

	"playden/internal/domain/entity"
	domainerrors "playden/internal/domain/errors"
	"playden/internal/domain/service"
	"playden/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWalletService(store *fakeStore, gateway *fakeGateway, publisher *fakePublisher) usecase.WalletUsecase {
	return NewWalletService(WalletServiceParams{
		TxManager:  newFakeTxManager(store),
		WalletRepo: &fakeWalletRepo{store: store},
		TxRepo:     &fakeTransactionRepo{store: store},
		Gateway:    gateway,
		Publisher:  publisher,
		Logger:     newDiscardLogger(),
	})
}

func TestWalletService_CreateDepositIntent_Success(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	service := newTestWalletService(store, gateway, &fakePublisher{})

	user := store.seedUserWithWallet(0)

	intent, err := service.CreateDepositIntent(context.Background(), user.ID, 1000)

	require.NoError(t, err)
	assert.Equal(t, int64(1000), intent.Amount)
	assert.NotEmpty(t, intent.ID)
	assert.NotEmpty(t, intent.ClientSecret)

	// The ledger stays empty until the payment succeeds.
	assert.Empty(t, store.transactions)
}

func TestWalletService_CreateDepositIntent_AmountOutOfRange(t *testing.T) {
	store := newFakeStore()
	service := newTestWalletService(store, newFakeGateway(), &fakePublisher{})

	user := store.seedUserWithWallet(0)

	_, err := service.CreateDepositIntent(context.Background(), user.ID, minDepositAmount-1)
	require.ErrorIs(t, err, domainerrors.ErrInvalidAmount)

	_, err = service.CreateDepositIntent(context.Background(), user.ID, maxDepositAmount+1)
	require.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
}

func TestWalletService_ConfirmDeposit_CreditsWallet(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	publisher := &fakePublisher{}
	service := newTestWalletService(store, gateway, publisher)

	user := store.seedUserWithWallet(250)
	intentID := gateway.registerSucceeded(user.ID, 1000)

	ledgerTx, err := service.ConfirmDeposit(context.Background(), user.ID, intentID)

	require.NoError(t, err)
	assert.Equal(t, entity.TransactionDeposit, ledgerTx.Type)
	assert.Equal(t, int64(1000), ledgerTx.Amount)
	assert.Equal(t, int64(250), ledgerTx.BalanceBefore)
	assert.Equal(t, int64(1250), ledgerTx.BalanceAfter)
	assert.Equal(t, intentID, ledgerTx.ExternalRef)

	assert.Equal(t, int64(1250), store.walletOf(user.ID).Balance)
	assert.Contains(t, publisher.eventNames(), "wallet:deposited")
}

func TestWalletService_ConfirmDeposit_IdempotentOnIntentID(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	service := newTestWalletService(store, gateway, &fakePublisher{})

	user := store.seedUserWithWallet(0)
	intentID := gateway.registerSucceeded(user.ID, 1000)

	first, err := service.ConfirmDeposit(context.Background(), user.ID, intentID)
	require.NoError(t, err)

	second, err := service.ConfirmDeposit(context.Background(), user.ID, intentID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1000), store.walletOf(user.ID).Balance)
	assert.Len(t, store.transactions, 1)
}

func TestWalletService_ConfirmDeposit_ForeignIntentRejected(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	service := newTestWalletService(store, gateway, &fakePublisher{})

	payer := store.seedUserWithWallet(0)
	other := store.seedUserWithWallet(0)
	intentID := gateway.registerSucceeded(payer.ID, 5000)

	// Another user presenting a leaked intent ID must not capture the deposit.
	_, err := service.ConfirmDeposit(context.Background(), other.ID, intentID)

	require.ErrorIs(t, err, domainerrors.ErrForbidden)
	assert.Equal(t, int64(0), store.walletOf(other.ID).Balance)
	assert.Equal(t, int64(0), store.walletOf(payer.ID).Balance)
	assert.Empty(t, store.transactions)

	// The rightful owner still gets credited afterwards.
	ledgerTx, err := service.ConfirmDeposit(context.Background(), payer.ID, intentID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), ledgerTx.Amount)
	assert.Equal(t, int64(5000), store.walletOf(payer.ID).Balance)
}

func TestWalletService_ConfirmDeposit_GatewayRejects(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	service := newTestWalletService(store, gateway, &fakePublisher{})

	user := store.seedUserWithWallet(0)

	_, err := service.ConfirmDeposit(context.Background(), user.ID, "pi_unknown")

	require.ErrorIs(t, err, domainerrors.ErrGatewayFailure)
	assert.Equal(t, int64(0), store.walletOf(user.ID).Balance)
	assert.Empty(t, store.transactions)
}

func TestWalletService_HandleWebhookEvent_CreditsWallet(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	publisher := &fakePublisher{}
	service := newTestWalletService(store, gateway, publisher)

	user := store.seedUserWithWallet(0)
	gateway.webhookEvent = succeededWebhookEvent(user, 2000, "pi_hook1")

	err := service.HandleWebhookEvent(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	assert.Equal(t, int64(2000), store.walletOf(user.ID).Balance)
	assert.Contains(t, publisher.eventNames(), "wallet:deposited")
}

func TestWalletService_HandleWebhookEvent_AfterConfirmIsNoOp(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	service := newTestWalletService(store, gateway, &fakePublisher{})

	user := store.seedUserWithWallet(0)
	intentID := gateway.registerSucceeded(user.ID, 1000)

	_, err := service.ConfirmDeposit(context.Background(), user.ID, intentID)
	require.NoError(t, err)

	gateway.webhookEvent = succeededWebhookEvent(user, 1000, intentID)

	err = service.HandleWebhookEvent(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	assert.Equal(t, int64(1000), store.walletOf(user.ID).Balance)
	assert.Len(t, store.transactions, 1)
}

func TestWalletService_HandleWebhookEvent_InvalidSignature(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	gateway.rejectHooks = true
	service := newTestWalletService(store, gateway, &fakePublisher{})

	store.seedUserWithWallet(0)

	err := service.HandleWebhookEvent(context.Background(), []byte(`{}`), "bad-sig")

	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Empty(t, store.transactions)
}

func TestWalletService_HandleWebhookEvent_IgnoresOtherEventTypes(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	service := newTestWalletService(store, gateway, &fakePublisher{})

	user := store.seedUserWithWallet(0)
	event := succeededWebhookEvent(user, 1000, "pi_created")
	event.Type = "payment_intent.created"
	gateway.webhookEvent = event

	err := service.HandleWebhookEvent(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	assert.Empty(t, store.transactions)
}

func TestWalletService_HandleWebhookEvent_AcksEventWithoutOwner(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	service := newTestWalletService(store, gateway, &fakePublisher{})

	store.seedUserWithWallet(0)
	gateway.webhookEvent = &ownerlessWebhookEvent

	// Intents created outside the platform carry no owner metadata. The event
	// is acked so the gateway stops retrying, and nothing is credited.
	err := service.HandleWebhookEvent(context.Background(), []byte(`{}`), "sig")

	require.NoError(t, err)
	assert.Empty(t, store.transactions)
}

var ownerlessWebhookEvent = service.WebhookEvent{
	Type:            "payment_intent.succeeded",
	PaymentIntentID: "pi_external",
	Amount:          3000,
}

func TestWalletService_GetWallet_WithRecentTransactions(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	service := newTestWalletService(store, gateway, &fakePublisher{})

	user := store.seedUserWithWallet(0)
	intentID := gateway.registerSucceeded(user.ID, 1000)
	_, err := service.ConfirmDeposit(context.Background(), user.ID, intentID)
	require.NoError(t, err)

	output, err := service.GetWallet(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(1000), output.Wallet.Balance)
	assert.Len(t, output.Transactions, 1)
}

func TestWalletService_GetWallet_NotFound(t *testing.T) {
	store := newFakeStore()
	service := newTestWalletService(store, newFakeGateway(), &fakePublisher{})

	user := store.seedUserWithWallet(0)
	delete(store.wallets, user.ID)

	_, err := service.GetWallet(context.Background(), user.ID)

	require.ErrorIs(t, err, domainerrors.ErrWalletNotFound)
}

func succeededWebhookEvent(user *entity.User, amount int64, intentID string) *service.WebhookEvent {
	return &service.WebhookEvent{
		Type:            "payment_intent.succeeded",
		PaymentIntentID: intentID,
		Amount:          amount,
		UserID:          user.ID,
	}
}
