// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"playden/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order database operations.
type OrderRepository interface {
	// Create persists a new order together with its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its items by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByIDForUpdate retrieves an order with a row-level lock so concurrent
	// status changes serialize. Must be called inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByUserID retrieves a user's orders with items, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Order, error)

	// CountByUserID returns the total number of orders for a user.
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// List retrieves orders across all users, newest first. When status is
	// non-nil only orders in that status are returned.
	List(ctx context.Context, status *entity.OrderStatus, limit, offset int) ([]*entity.Order, error)

	// Count returns the number of orders, optionally filtered by status.
	Count(ctx context.Context, status *entity.OrderStatus) (int64, error)

	// UpdateStatus sets the order status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
}
