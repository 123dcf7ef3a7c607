package impl

import (
	"context"
	"testing"

	domainerrors "playden/internal/domain/errors"
	"playden/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMenuService(store *fakeStore, cache *fakeMenuCache) usecase.MenuUsecase {
	return NewMenuService(MenuServiceParams{
		MenuRepo: &fakeMenuRepo{store: store},
		Cache:    cache,
		Logger:   newDiscardLogger(),
	})
}

func TestMenuService_ListItems_ServesSecondReadFromCache(t *testing.T) {
	store := newFakeStore()
	cache := newFakeMenuCache()
	service := newTestMenuService(store, cache)

	store.seedMenuItem("Cola", 150, true)
	store.seedMenuItem("Fries", 200, true)

	first, err := service.ListItems(context.Background(), "", true)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 0, cache.hits)

	second, err := service.ListItems(context.Background(), "", true)
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Equal(t, 1, cache.hits)
}

func TestMenuService_ListItems_AvailableOnlyFilters(t *testing.T) {
	store := newFakeStore()
	service := newTestMenuService(store, newFakeMenuCache())

	store.seedMenuItem("Cola", 150, true)
	store.seedMenuItem("Ramen", 300, false)

	visible, err := service.ListItems(context.Background(), "", true)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	all, err := service.ListItems(context.Background(), "", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMenuService_CreateItem_InvalidatesCache(t *testing.T) {
	store := newFakeStore()
	cache := newFakeMenuCache()
	service := newTestMenuService(store, cache)

	store.seedMenuItem("Cola", 150, true)

	_, err := service.ListItems(context.Background(), "", true)
	require.NoError(t, err)

	created, err := service.CreateItem(context.Background(), usecase.CreateMenuItemInput{
		Name:     "Fries",
		Price:    200,
		Category: "snacks",
	})
	require.NoError(t, err)
	assert.True(t, created.IsAvailable)
	assert.Equal(t, 1, cache.invalidates)

	// The next read sees the new item instead of the stale listing.
	items, err := service.ListItems(context.Background(), "", true)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestMenuService_CreateItem_NonPositivePrice(t *testing.T) {
	store := newFakeStore()
	service := newTestMenuService(store, newFakeMenuCache())

	_, err := service.CreateItem(context.Background(), usecase.CreateMenuItemInput{Name: "Freebie", Price: 0})

	require.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
}

func TestMenuService_CreateItem_DuplicateName(t *testing.T) {
	store := newFakeStore()
	service := newTestMenuService(store, newFakeMenuCache())

	_, err := service.CreateItem(context.Background(), usecase.CreateMenuItemInput{Name: "Cola", Price: 150})
	require.NoError(t, err)

	_, err = service.CreateItem(context.Background(), usecase.CreateMenuItemInput{Name: "Cola", Price: 150})
	require.ErrorIs(t, err, domainerrors.ErrMenuItemNameTaken)
}

func TestMenuService_UpdateItem_TogglesAvailability(t *testing.T) {
	store := newFakeStore()
	cache := newFakeMenuCache()
	service := newTestMenuService(store, cache)

	item := store.seedMenuItem("Cola", 150, true)

	unavailable := false
	updated, err := service.UpdateItem(context.Background(), item.ID, usecase.UpdateMenuItemInput{IsAvailable: &unavailable})

	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, 1, cache.invalidates)
}

func TestMenuService_UpdateItem_NonPositivePrice(t *testing.T) {
	store := newFakeStore()
	service := newTestMenuService(store, newFakeMenuCache())

	item := store.seedMenuItem("Cola", 150, true)

	badPrice := int64(-1)
	_, err := service.UpdateItem(context.Background(), item.ID, usecase.UpdateMenuItemInput{Price: &badPrice})

	require.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
}

func TestMenuService_DeleteItem_InvalidatesCache(t *testing.T) {
	store := newFakeStore()
	cache := newFakeMenuCache()
	service := newTestMenuService(store, cache)

	item := store.seedMenuItem("Cola", 150, true)

	err := service.DeleteItem(context.Background(), item.ID)

	require.NoError(t, err)
	assert.NotContains(t, store.menuItems, item.ID)
	assert.Equal(t, 1, cache.invalidates)
}

func TestMenuService_ListCategories(t *testing.T) {
	store := newFakeStore()
	service := newTestMenuService(store, newFakeMenuCache())

	cola := store.seedMenuItem("Cola", 150, true)
	cola.Category = "drinks"
	fries := store.seedMenuItem("Fries", 200, true)
	fries.Category = "snacks"

	categories, err := service.ListCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"drinks", "snacks"}, categories)
}
