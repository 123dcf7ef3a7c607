package usecase

import (
	"context"

	"playden/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateMenuItemInput defines the data required to create a menu item.
type CreateMenuItemInput struct {
	Name            string
	Description     string
	Price           int64 // cents
	Category        string
	ImageURL        string
	PreparationTime int // minutes
}

// UpdateMenuItemInput defines the mutable menu-item fields. Nil pointers leave
// the field unchanged.
type UpdateMenuItemInput struct {
	Name            *string
	Description     *string
	Price           *int64
	Category        *string
	ImageURL        *string
	IsAvailable     *bool
	PreparationTime *int
}

// MenuUsecase defines the interface for menu management operations.
type MenuUsecase interface {
	// ListItems retrieves menu items, optionally filtered by category. Customers
	// see available items only, staff views pass availableOnly=false.
	ListItems(ctx context.Context, category string, availableOnly bool) ([]*entity.MenuItem, error)

	// ListCategories retrieves the distinct menu categories.
	ListCategories(ctx context.Context) ([]string, error)

	// GetItem retrieves a menu item by its ID.
	GetItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)

	// CreateItem creates a menu item.
	CreateItem(ctx context.Context, input CreateMenuItemInput) (*entity.MenuItem, error)

	// UpdateItem modifies a menu item. Price changes never touch committed orders.
	UpdateItem(ctx context.Context, id uuid.UUID, input UpdateMenuItemInput) (*entity.MenuItem, error)

	// DeleteItem removes a menu item.
	DeleteItem(ctx context.Context, id uuid.UUID) error
}
