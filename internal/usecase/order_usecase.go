package usecase

import (
	"context"

	"playden/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	MenuItemID uuid.UUID
	Quantity   int
}

// CreateOrderInput defines the data required to place an order.
type CreateOrderInput struct {
	UserID uuid.UUID
	RoomID *uuid.UUID
	Items  []OrderItemInput
	Notes  string
}

// OrderPage is one page of order history.
type OrderPage struct {
	Orders []*entity.Order
	Total  int64
}

// OrderUsecase defines the interface for food/drink order operations.
type OrderUsecase interface {
	// CreateOrder places an order. All items must exist and be available, each
	// price is snapshotted onto its line, and the wallet is debited for the
	// total in the same transaction that persists the order.
	CreateOrder(ctx context.Context, input CreateOrderInput) (*entity.Order, error)

	// GetOrder retrieves an order. Customers may only read their own orders.
	GetOrder(ctx context.Context, requesterID, orderID uuid.UUID, isAdmin bool) (*entity.Order, error)

	// GetUserOrders retrieves a page of the user's orders, newest first.
	GetUserOrders(ctx context.Context, userID uuid.UUID, limit, offset int) (*OrderPage, error)

	// ListOrders retrieves a page of all orders, optionally filtered by status.
	// Staff view for the kitchen queue.
	ListOrders(ctx context.Context, status *entity.OrderStatus, limit, offset int) (*OrderPage, error)

	// UpdateOrderStatus moves an order along its fulfilment flow. Invalid
	// transitions are rejected, cancellation does not refund the wallet.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
}
