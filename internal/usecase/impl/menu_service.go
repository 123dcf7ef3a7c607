package impl

import (
	"context"
	"log/slog"

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

// menuService implements the MenuUsecase interface. Listings are served
// through a read-through cache since the catalog changes only on admin edits.
type menuService struct {
	menuRepo repository.MenuRepository
	cache    service.MenuCache
	logger   *slog.Logger
}

// MenuServiceParams holds dependencies for MenuService, injected by Fx.
type MenuServiceParams struct {
	fx.In

	MenuRepo repository.MenuRepository
	Cache    service.MenuCache
	Logger   *slog.Logger
}

// NewMenuService is the constructor for menuService.
func NewMenuService(params MenuServiceParams) usecase.MenuUsecase {
	return &menuService{
		menuRepo: params.MenuRepo,
		cache:    params.Cache,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *menuService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListItems retrieves menu items, optionally filtered by category.
func (srv *menuService) ListItems(ctx context.Context, category string, availableOnly bool) ([]*entity.MenuItem, error) {
	if items, ok := srv.cache.GetItems(ctx, category, availableOnly); ok {
		return items, nil
	}

	items, err := srv.menuRepo.List(ctx, category, availableOnly)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list menu items")
	}

	srv.cache.SetItems(ctx, category, availableOnly, items)

	return items, nil
}

// ListCategories retrieves the distinct menu categories.
func (srv *menuService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := srv.menuRepo.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list menu categories")
	}

	return categories, nil
}

// GetItem retrieves a menu item by its ID.
func (srv *menuService) GetItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := srv.menuRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return nil, errors.Wrap(domainerrors.ErrMenuItemNotFound, "menu item not found")
		}

		return nil, errors.Wrap(err, "failed to find menu item")
	}

	return item, nil
}

// CreateItem creates a menu item and invalidates cached listings.
func (srv *menuService) CreateItem(ctx context.Context, input usecase.CreateMenuItemInput) (*entity.MenuItem, error) {
	if input.Price <= 0 {
		return nil, errors.Wrap(domainerrors.ErrInvalidAmount, "menu price must be positive")
	}

	item := &entity.MenuItem{
		ID:              uuid.New(),
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		Category:        input.Category,
		ImageURL:        input.ImageURL,
		IsAvailable:     true,
		PreparationTime: input.PreparationTime,
	}

	if err := srv.menuRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateMenuItemName) {
			return nil, errors.Wrap(domainerrors.ErrMenuItemNameTaken, "menu item name already exists")
		}

		return nil, errors.Wrap(err, "failed to create menu item")
	}

	srv.cache.Invalidate(ctx)
	srv.log(ctx).Info("Menu item created", slog.Any("itemID", item.ID), slog.String("name", item.Name))

	return item, nil
}

// UpdateItem modifies a menu item and invalidates cached listings. Price
// changes never touch committed orders, those hold their own snapshots.
func (srv *menuService) UpdateItem(ctx context.Context, id uuid.UUID, input usecase.UpdateMenuItemInput) (*entity.MenuItem, error) {
	item, err := srv.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Price != nil && *input.Price <= 0 {
		return nil, errors.Wrap(domainerrors.ErrInvalidAmount, "menu price must be positive")
	}

	applyMenuItemUpdates(item, input)

	if err := srv.menuRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicateMenuItemName) {
			return nil, errors.Wrap(domainerrors.ErrMenuItemNameTaken, "menu item name already exists")
		}

		return nil, errors.Wrap(err, "failed to update menu item")
	}

	srv.cache.Invalidate(ctx)
	srv.log(ctx).Info("Menu item updated", slog.Any("itemID", item.ID))

	return item, nil
}

// DeleteItem removes a menu item and invalidates cached listings.
func (srv *menuService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := srv.menuRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return errors.Wrap(domainerrors.ErrMenuItemNotFound, "menu item not found")
		}

		return errors.Wrap(err, "failed to delete menu item")
	}

	srv.cache.Invalidate(ctx)
	srv.log(ctx).Info("Menu item deleted", slog.Any("itemID", id))

	return nil
}

func applyMenuItemUpdates(item *entity.MenuItem, input usecase.UpdateMenuItemInput) {
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.ImageURL != nil {
		item.ImageURL = *input.ImageURL
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}
	if input.PreparationTime != nil {
		item.PreparationTime = *input.PreparationTime
	}
}
