package impl

import (
	"context"
	"testing"
	"time"

	"playden/internal/domain/entity"
	domainerrors "playden/internal/domain/errors"
	"playden/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService(store *fakeStore, tokens *fakeRoomTokens, publisher *fakePublisher) usecase.SessionUsecase {
	return NewSessionService(SessionServiceParams{
		TxManager:   newFakeTxManager(store),
		SessionRepo: &fakeSessionRepo{store: store},
		RoomTokens:  tokens,
		Publisher:   publisher,
		Config:      newTestConfig(30),
		Logger:      newDiscardLogger(),
	})
}

func seedActiveSession(store *fakeStore, user *entity.User, room *entity.Room, startedAgo time.Duration) *entity.Session {
	session := &entity.Session{
		ID:            uuid.New(),
		UserID:        user.ID,
		RoomID:        room.ID,
		Status:        entity.SessionActive,
		StartTime:     time.Now().Add(-startedAgo),
		CostPerMinute: room.PricePerMinute,
	}
	store.sessions[session.ID] = session
	room.Status = entity.RoomOccupied

	return session
}

func TestSessionService_StartSession_Success(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestSessionService(store, newFakeRoomTokens(), publisher)

	user := store.seedUserWithWallet(3000) // exactly the 30-minute reserve at 100/min
	room := store.seedRoom(entity.RoomAvailable, 100)

	session, err := service.StartSession(context.Background(), usecase.StartSessionInput{
		UserID: user.ID,
		RoomID: &room.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.SessionActive, session.Status)
	assert.Equal(t, int64(100), session.CostPerMinute)
	assert.Equal(t, room.ID, session.RoomID)
	assert.Equal(t, entity.RoomOccupied, store.rooms[room.ID].Status)

	// No money moves at start, only at end.
	assert.Equal(t, int64(3000), store.walletOf(user.ID).Balance)
	assert.Empty(t, store.transactions)

	assert.Contains(t, publisher.eventNames(), "session:started")
	assert.Contains(t, publisher.eventNames(), "room:status_changed")
}

func TestSessionService_StartSession_ByQRToken(t *testing.T) {
	store := newFakeStore()
	tokens := newFakeRoomTokens()
	service := newTestSessionService(store, tokens, &fakePublisher{})

	user := store.seedUserWithWallet(10000)
	room := store.seedRoom(entity.RoomAvailable, 100)
	token, err := tokens.Sign(room.ID)
	require.NoError(t, err)

	session, err := service.StartSession(context.Background(), usecase.StartSessionInput{
		UserID:  user.ID,
		QRToken: token,
	})

	require.NoError(t, err)
	assert.Equal(t, room.ID, session.RoomID)
}

func TestSessionService_StartSession_InvalidQRToken(t *testing.T) {
	store := newFakeStore()
	service := newTestSessionService(store, newFakeRoomTokens(), &fakePublisher{})

	user := store.seedUserWithWallet(10000)

	_, err := service.StartSession(context.Background(), usecase.StartSessionInput{
		UserID:  user.ID,
		QRToken: "forged-token",
	})

	require.ErrorIs(t, err, domainerrors.ErrInvalidQRToken)
}

func TestSessionService_StartSession_InsufficientReserve(t *testing.T) {
	store := newFakeStore()
	service := newTestSessionService(store, newFakeRoomTokens(), &fakePublisher{})

	user := store.seedUserWithWallet(2999) // one cent short of the reserve
	room := store.seedRoom(entity.RoomAvailable, 100)

	_, err := service.StartSession(context.Background(), usecase.StartSessionInput{
		UserID: user.ID,
		RoomID: &room.ID,
	})

	require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)
	assert.Empty(t, store.sessions)
	assert.Equal(t, entity.RoomAvailable, store.rooms[room.ID].Status)
}

func TestSessionService_StartSession_RoomNotAvailable(t *testing.T) {
	store := newFakeStore()
	service := newTestSessionService(store, newFakeRoomTokens(), &fakePublisher{})

	user := store.seedUserWithWallet(10000)
	room := store.seedRoom(entity.RoomMaintenance, 100)

	_, err := service.StartSession(context.Background(), usecase.StartSessionInput{
		UserID: user.ID,
		RoomID: &room.ID,
	})

	require.ErrorIs(t, err, domainerrors.ErrRoomUnavailable)
}

func TestSessionService_StartSession_UserAlreadyActive(t *testing.T) {
	store := newFakeStore()
	service := newTestSessionService(store, newFakeRoomTokens(), &fakePublisher{})

	user := store.seedUserWithWallet(10000)
	occupied := store.seedRoom(entity.RoomAvailable, 100)
	seedActiveSession(store, user, occupied, time.Minute)

	other := store.seedRoom(entity.RoomAvailable, 100)

	_, err := service.StartSession(context.Background(), usecase.StartSessionInput{
		UserID: user.ID,
		RoomID: &other.ID,
	})

	require.ErrorIs(t, err, domainerrors.ErrSessionAlreadyActive)
}

func TestSessionService_EndSession_BillsRoundedUpMinutes(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestSessionService(store, newFakeRoomTokens(), publisher)

	user := store.seedUserWithWallet(3000)
	room := store.seedRoom(entity.RoomAvailable, 100)
	// 90 seconds elapsed bills 2 whole minutes.
	session := seedActiveSession(store, user, room, 90*time.Second)

	output, err := service.EndSession(context.Background(), user.ID, session.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.SessionCompleted, output.Session.Status)
	assert.Equal(t, 2, output.Session.Duration)
	assert.Equal(t, int64(200), output.Session.TotalCost)
	assert.True(t, output.Session.IsPaid)
	assert.NotNil(t, output.Session.EndTime)

	require.NotNil(t, output.Transaction)
	assert.Equal(t, entity.TransactionSessionPayment, output.Transaction.Type)
	assert.Equal(t, int64(-200), output.Transaction.Amount)
	assert.Equal(t, int64(3000), output.Transaction.BalanceBefore)
	assert.Equal(t, int64(2800), output.Transaction.BalanceAfter)

	assert.Equal(t, int64(2800), store.walletOf(user.ID).Balance)
	assert.Equal(t, entity.RoomAvailable, store.rooms[room.ID].Status)

	assert.Contains(t, publisher.eventNames(), "session:ended")
	assert.Contains(t, publisher.eventNames(), "room:status_changed")
}

func TestSessionService_EndSession_InsufficientFundsLeavesSessionActive(t *testing.T) {
	store := newFakeStore()
	service := newTestSessionService(store, newFakeRoomTokens(), &fakePublisher{})

	user := store.seedUserWithWallet(100)
	room := store.seedRoom(entity.RoomAvailable, 100)
	// 90 seconds elapsed costs 200, the wallet holds 100.
	session := seedActiveSession(store, user, room, 90*time.Second)

	_, err := service.EndSession(context.Background(), user.ID, session.ID)

	require.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)
	assert.Equal(t, entity.SessionActive, store.sessions[session.ID].Status)
	assert.Nil(t, store.sessions[session.ID].EndTime)
	assert.Equal(t, int64(100), store.walletOf(user.ID).Balance)
	assert.Empty(t, store.transactions)
	assert.Equal(t, entity.RoomOccupied, store.rooms[room.ID].Status)
}

func TestSessionService_EndSession_OtherUsersSession(t *testing.T) {
	store := newFakeStore()
	service := newTestSessionService(store, newFakeRoomTokens(), &fakePublisher{})

	owner := store.seedUserWithWallet(10000)
	intruder := store.seedUserWithWallet(10000)
	room := store.seedRoom(entity.RoomAvailable, 100)
	session := seedActiveSession(store, owner, room, time.Minute)

	_, err := service.EndSession(context.Background(), intruder.ID, session.ID)

	require.ErrorIs(t, err, domainerrors.ErrForbidden)
	assert.Equal(t, entity.SessionActive, store.sessions[session.ID].Status)
}

func TestSessionService_EndSession_AlreadyCompleted(t *testing.T) {
	store := newFakeStore()
	service := newTestSessionService(store, newFakeRoomTokens(), &fakePublisher{})

	user := store.seedUserWithWallet(10000)
	room := store.seedRoom(entity.RoomAvailable, 100)
	session := seedActiveSession(store, user, room, time.Minute)
	session.Status = entity.SessionCompleted

	_, err := service.EndSession(context.Background(), user.ID, session.ID)

	require.ErrorIs(t, err, domainerrors.ErrSessionNotActive)
}

func TestSessionService_GetActiveSession_ProjectsRunningCost(t *testing.T) {
	store := newFakeStore()
	service := newTestSessionService(store, newFakeRoomTokens(), &fakePublisher{})

	user := store.seedUserWithWallet(10000)
	room := store.seedRoom(entity.RoomAvailable, 100)
	session := seedActiveSession(store, user, room, 90*time.Second)

	output, err := service.GetActiveSession(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, session.ID, output.Session.ID)

	// 90 seconds elapsed bills as 2 minutes at 100 cents/minute.
	assert.Equal(t, 2, output.CurrentDuration)
	assert.Equal(t, int64(200), output.CurrentCost)
}

func TestSessionService_GetActiveSession_NoneActive(t *testing.T) {
	store := newFakeStore()
	service := newTestSessionService(store, newFakeRoomTokens(), &fakePublisher{})

	user := store.seedUserWithWallet(0)

	_, err := service.GetActiveSession(context.Background(), user.ID)

	require.ErrorIs(t, err, domainerrors.ErrSessionNotFound)
}

func TestSessionService_GetSession_OwnerOrAdminOnly(t *testing.T) {
	store := newFakeStore()
	service := newTestSessionService(store, newFakeRoomTokens(), &fakePublisher{})

	owner := store.seedUserWithWallet(10000)
	stranger := store.seedUserWithWallet(0)
	session := seedActiveSession(store, owner, store.seedRoom(entity.RoomAvailable, 100), time.Minute)

	fetched, err := service.GetSession(context.Background(), owner.ID, session.ID, false)
	require.NoError(t, err)
	assert.Equal(t, session.ID, fetched.ID)

	_, err = service.GetSession(context.Background(), stranger.ID, session.ID, false)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	// Admins read any session.
	fetched, err = service.GetSession(context.Background(), stranger.ID, session.ID, true)
	require.NoError(t, err)
	assert.Equal(t, session.ID, fetched.ID)

	_, err = service.GetSession(context.Background(), owner.ID, uuid.New(), false)
	require.ErrorIs(t, err, domainerrors.ErrSessionNotFound)
}

func TestSessionService_GetSessionHistory_Paged(t *testing.T) {
	store := newFakeStore()
	service := newTestSessionService(store, newFakeRoomTokens(), &fakePublisher{})

	user := store.seedUserWithWallet(0)
	for i := 0; i < 3; i++ {
		end := time.Now()
		store.sessions[uuid.New()] = &entity.Session{
			ID:        uuid.New(),
			UserID:    user.ID,
			RoomID:    uuid.New(),
			Status:    entity.SessionCompleted,
			StartTime: time.Now().Add(-time.Duration(i+1) * time.Hour),
			EndTime:   &end,
		}
	}

	pageOut, err := service.GetSessionHistory(context.Background(), user.ID, 2, 0)

	require.NoError(t, err)
	assert.Len(t, pageOut.Sessions, 2)
	assert.Equal(t, int64(3), pageOut.Total)
}
