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

func newTestRoomService(store *fakeStore, tokens *fakeRoomTokens, posters *fakePosterStore, publisher *fakePublisher) usecase.RoomUsecase {
	return NewRoomService(RoomServiceParams{
		TxManager:  newFakeTxManager(store),
		RoomRepo:   &fakeRoomRepo{store: store},
		RoomTokens: tokens,
		QRCode:     &fakeQRCode{},
		Posters:    posters,
		Publisher:  publisher,
		Logger:     newDiscardLogger(),
	})
}

func TestRoomService_CreateRoom_SignsTokenAndArchivesPoster(t *testing.T) {
	store := newFakeStore()
	tokens := newFakeRoomTokens()
	posters := newFakePosterStore()
	service := newTestRoomService(store, tokens, posters, &fakePublisher{})

	room, err := service.CreateRoom(context.Background(), usecase.CreateRoomInput{
		RoomNumber:     "A-01",
		Name:           "Neon Den",
		ConsoleType:    "PS5",
		Capacity:       4,
		PricePerMinute: 100,
		Amenities:      []string{"headsets"},
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoomAvailable, room.Status)
	assert.NotEmpty(t, room.QRToken)

	// The token round-trips back to this room.
	roomID, err := tokens.Verify(room.QRToken)
	require.NoError(t, err)
	assert.Equal(t, room.ID, roomID)

	assert.Contains(t, posters.saved, room.ID)
}

func TestRoomService_CreateRoom_DuplicateRoomNumber(t *testing.T) {
	store := newFakeStore()
	service := newTestRoomService(store, newFakeRoomTokens(), newFakePosterStore(), &fakePublisher{})

	input := usecase.CreateRoomInput{RoomNumber: "A-01", Name: "Neon Den", PricePerMinute: 100}

	_, err := service.CreateRoom(context.Background(), input)
	require.NoError(t, err)

	_, err = service.CreateRoom(context.Background(), input)
	require.ErrorIs(t, err, domainerrors.ErrRoomNumberTaken)
}

func TestRoomService_UpdateRoom_StatusBlockedByActiveSession(t *testing.T) {
	store := newFakeStore()
	service := newTestRoomService(store, newFakeRoomTokens(), newFakePosterStore(), &fakePublisher{})

	user := store.seedUserWithWallet(10000)
	room := store.seedRoom(entity.RoomAvailable, 100)
	seedActiveSession(store, user, room, time.Minute)

	maintenance := entity.RoomMaintenance
	_, err := service.UpdateRoom(context.Background(), room.ID, usecase.UpdateRoomInput{Status: &maintenance})

	require.ErrorIs(t, err, domainerrors.ErrRoomHasActiveSession)
	assert.Equal(t, entity.RoomOccupied, store.rooms[room.ID].Status)
}

func TestRoomService_UpdateRoom_PriceChangeLeavesSnapshotAlone(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestRoomService(store, newFakeRoomTokens(), newFakePosterStore(), publisher)

	room := store.seedRoom(entity.RoomAvailable, 100)
	session := &entity.Session{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		RoomID:        uuid.New(), // a different room, so the status guard stays out of the way
		Status:        entity.SessionActive,
		StartTime:     time.Now(),
		CostPerMinute: 100,
	}
	store.sessions[session.ID] = session

	newPrice := int64(250)
	updated, err := service.UpdateRoom(context.Background(), room.ID, usecase.UpdateRoomInput{PricePerMinute: &newPrice})

	require.NoError(t, err)
	assert.Equal(t, int64(250), updated.PricePerMinute)
	assert.Equal(t, int64(100), session.CostPerMinute)

	// No status change, no broadcast.
	assert.Empty(t, publisher.events)
}

func TestRoomService_UpdateRoom_StatusChangeBroadcasts(t *testing.T) {
	store := newFakeStore()
	publisher := &fakePublisher{}
	service := newTestRoomService(store, newFakeRoomTokens(), newFakePosterStore(), publisher)

	room := store.seedRoom(entity.RoomAvailable, 100)

	maintenance := entity.RoomMaintenance
	updated, err := service.UpdateRoom(context.Background(), room.ID, usecase.UpdateRoomInput{Status: &maintenance})

	require.NoError(t, err)
	assert.Equal(t, entity.RoomMaintenance, updated.Status)
	assert.Contains(t, publisher.eventNames(), "room:status_changed")
}

func TestRoomService_DeleteRoom_BlockedByActiveSession(t *testing.T) {
	store := newFakeStore()
	service := newTestRoomService(store, newFakeRoomTokens(), newFakePosterStore(), &fakePublisher{})

	user := store.seedUserWithWallet(10000)
	room := store.seedRoom(entity.RoomAvailable, 100)
	seedActiveSession(store, user, room, time.Minute)

	err := service.DeleteRoom(context.Background(), room.ID)

	require.ErrorIs(t, err, domainerrors.ErrRoomHasActiveSession)
	assert.Contains(t, store.rooms, room.ID)
}

func TestRoomService_DeleteRoom_Success(t *testing.T) {
	store := newFakeStore()
	service := newTestRoomService(store, newFakeRoomTokens(), newFakePosterStore(), &fakePublisher{})

	room := store.seedRoom(entity.RoomAvailable, 100)

	err := service.DeleteRoom(context.Background(), room.ID)

	require.NoError(t, err)
	assert.NotContains(t, store.rooms, room.ID)
}

func TestRoomService_VerifyQRToken_RoundTrip(t *testing.T) {
	store := newFakeStore()
	tokens := newFakeRoomTokens()
	service := newTestRoomService(store, tokens, newFakePosterStore(), &fakePublisher{})

	created, err := service.CreateRoom(context.Background(), usecase.CreateRoomInput{
		RoomNumber:     "B-02",
		Name:           "Pixel Cave",
		PricePerMinute: 80,
	})
	require.NoError(t, err)

	room, err := service.VerifyQRToken(context.Background(), created.QRToken)

	require.NoError(t, err)
	assert.Equal(t, created.ID, room.ID)
}

func TestRoomService_VerifyQRToken_Invalid(t *testing.T) {
	store := newFakeStore()
	service := newTestRoomService(store, newFakeRoomTokens(), newFakePosterStore(), &fakePublisher{})

	_, err := service.VerifyQRToken(context.Background(), "not-a-real-token")

	require.ErrorIs(t, err, domainerrors.ErrInvalidQRToken)
}

func TestRoomService_GetRoomQRImage(t *testing.T) {
	store := newFakeStore()
	service := newTestRoomService(store, newFakeRoomTokens(), newFakePosterStore(), &fakePublisher{})

	created, err := service.CreateRoom(context.Background(), usecase.CreateRoomInput{
		RoomNumber:     "C-03",
		Name:           "Retro Row",
		PricePerMinute: 60,
	})
	require.NoError(t, err)

	png, err := service.GetRoomQRImage(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte("png:"+created.QRToken), png)
}

func TestRoomService_ListRooms_FiltersByStatus(t *testing.T) {
	store := newFakeStore()
	service := newTestRoomService(store, newFakeRoomTokens(), newFakePosterStore(), &fakePublisher{})

	store.seedRoom(entity.RoomAvailable, 100)
	store.seedRoom(entity.RoomMaintenance, 100)

	available := entity.RoomAvailable
	rooms, err := service.ListRooms(context.Background(), &available)

	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, entity.RoomAvailable, rooms[0].Status)
}
