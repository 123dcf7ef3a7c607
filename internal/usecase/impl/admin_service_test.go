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

func newTestAdminService(store *fakeStore) usecase.AdminUsecase {
	return NewAdminService(AdminServiceParams{
		TxManager:   newFakeTxManager(store),
		UserRepo:    &fakeUserRepo{store: store},
		SessionRepo: &fakeSessionRepo{store: store},
		StatsRepo:   &fakeStatsRepo{},
		Logger:      newDiscardLogger(),
	})
}

func TestAdminService_SetUserActive_Deactivates(t *testing.T) {
	store := newFakeStore()
	service := newTestAdminService(store)

	user := store.seedUserWithWallet(0)
	require.True(t, user.IsActive)

	updated, err := service.SetUserActive(context.Background(), user.ID, false)

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.False(t, store.users[user.ID].IsActive)
}

func TestAdminService_SetUserActive_IdempotentWhenUnchanged(t *testing.T) {
	store := newFakeStore()
	service := newTestAdminService(store)

	user := store.seedUserWithWallet(0)

	updated, err := service.SetUserActive(context.Background(), user.ID, true)

	require.NoError(t, err)
	assert.True(t, updated.IsActive)
}

func TestAdminService_SetUserActive_UnknownUser(t *testing.T) {
	store := newFakeStore()
	service := newTestAdminService(store)

	_, err := service.SetUserActive(context.Background(), uuid.New(), false)

	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAdminService_ListUsers_Paged(t *testing.T) {
	store := newFakeStore()
	service := newTestAdminService(store)

	for i := 0; i < 3; i++ {
		store.seedUserWithWallet(0)
	}

	pageOut, err := service.ListUsers(context.Background(), 2, 0)

	require.NoError(t, err)
	assert.Len(t, pageOut.Users, 2)
	assert.Equal(t, int64(3), pageOut.Total)
}

func TestAdminService_ListActiveSessions_OldestFirst(t *testing.T) {
	store := newFakeStore()
	service := newTestAdminService(store)

	first := store.seedUserWithWallet(10000)
	second := store.seedUserWithWallet(10000)
	older := seedActiveSession(store, first, store.seedRoom(entity.RoomAvailable, 100), 2*time.Hour)
	newer := seedActiveSession(store, second, store.seedRoom(entity.RoomAvailable, 100), time.Hour)

	// A completed session stays out of the active list.
	done := store.seedUserWithWallet(0)
	completed := seedActiveSession(store, done, store.seedRoom(entity.RoomAvailable, 100), time.Minute)
	completed.Status = entity.SessionCompleted

	sessions, err := service.ListActiveSessions(context.Background())

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, older.ID, sessions[0].ID)
	assert.Equal(t, newer.ID, sessions[1].ID)
}

func TestAdminService_GetPlatformStats(t *testing.T) {
	store := newFakeStore()
	service := newTestAdminService(store)

	stats, err := service.GetPlatformStats(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, stats)
}
