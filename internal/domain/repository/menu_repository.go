// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"playden/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for menu persistence.
var (
	// ErrMenuItemNotFound is returned when a menu item is not found.
	ErrMenuItemNotFound = errors.New("menu item not found")
	// ErrDuplicateMenuItemName is returned when creating an item whose name is taken.
	ErrDuplicateMenuItemName = errors.New("menu item name already exists")
)

// MenuRepository defines the interface for menu-item database operations.
type MenuRepository interface {
	// Create persists a new menu item.
	Create(ctx context.Context, item *entity.MenuItem) error

	// FindByID retrieves a menu item by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)

	// FindByIDs retrieves menu items by their IDs. Missing IDs are simply absent
	// from the result, the caller decides whether that is an error.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.MenuItem, error)

	// List retrieves menu items ordered by category then name. When category is
	// non-empty only items in that category are returned. When availableOnly is
	// true, unavailable items are filtered out.
	List(ctx context.Context, category string, availableOnly bool) ([]*entity.MenuItem, error)

	// ListCategories retrieves the distinct categories in use.
	ListCategories(ctx context.Context) ([]string, error)

	// Update modifies an existing menu item.
	Update(ctx context.Context, item *entity.MenuItem) error

	// Delete removes a menu item by its ID (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
