package impl

import (
	"context"
	"testing"
	"time"

	"playden/internal/domain/entity"
	"playden/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The wallet balance must always equal the sum of every ledger entry, each
// entry snapshotting the balance around it. Run a mixed flow of deposits and
// debits against one wallet and check the books balance.
func TestLedger_BalanceEqualsTransactionSum(t *testing.T) {
	store := newFakeStore()
	gateway := newFakeGateway()
	publisher := &fakePublisher{}

	wallets := newTestWalletService(store, gateway, publisher)
	orders := newTestOrderService(store, publisher, &fakeNotification{})
	sessions := newTestSessionService(store, newFakeRoomTokens(), publisher)

	user := store.seedUserWithWallet(0)

	// Deposit 5000 through the confirm path.
	intentID := gateway.registerSucceeded(user.ID, 5000)
	_, err := wallets.ConfirmDeposit(context.Background(), user.ID, intentID)
	require.NoError(t, err)

	// Order two colas, 500 total.
	cola := store.seedMenuItem("Cola", 250, true)
	_, err = orders.CreateOrder(context.Background(), usecase.CreateOrderInput{
		UserID: user.ID,
		Items:  []usecase.OrderItemInput{{MenuItemID: cola.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// End a 90-second session at 100 cents/minute, billed as 2 minutes.
	room := store.seedRoom(entity.RoomAvailable, 100)
	session := seedActiveSession(store, user, room, 90*time.Second)
	_, err = sessions.EndSession(context.Background(), user.ID, session.ID)
	require.NoError(t, err)

	// Deposit another 1000 through the webhook path.
	gateway.webhookEvent = succeededWebhookEvent(user, 1000, "pi_hook_sum")
	require.NoError(t, wallets.HandleWebhookEvent(context.Background(), []byte(`{}`), "sig"))

	require.Len(t, store.transactions, 4)

	var sum int64
	for _, ledgerTx := range store.transactions {
		sum += ledgerTx.Amount
		assert.Equal(t, ledgerTx.Amount, ledgerTx.BalanceAfter-ledgerTx.BalanceBefore)
	}

	assert.Equal(t, int64(5300), sum)
	assert.Equal(t, sum, store.walletOf(user.ID).Balance)
}
