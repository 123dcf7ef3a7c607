// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the fulfilment state of a food/drink order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether an order may move from s to next. Orders
// progress PENDING -> PREPARING -> READY -> DELIVERED, and may be CANCELLED
// from any state before delivery. DELIVERED and CANCELLED are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return false
	}
	switch s {
	case OrderPending:
		return next == OrderPreparing || next == OrderCancelled
	case OrderPreparing:
		return next == OrderReady || next == OrderCancelled
	case OrderReady:
		return next == OrderDelivered || next == OrderCancelled
	default:
		return false
	}
}

// OrderItem is one line of an order. PriceAtOrder snapshots the menu price at
// creation time, decoupling the committed order from later menu edits.
type OrderItem struct {
	ID           uuid.UUID `json:"id"`
	OrderID      uuid.UUID `json:"order_id"`
	MenuItemID   uuid.UUID `json:"menu_item_id"`
	Quantity     int       `json:"quantity"`
	PriceAtOrder int64     `json:"price_at_order"` // cents
	MenuItem     *MenuItem `json:"menu_item,omitempty"`
}

// Order aggregates OrderItems delivered to a room (or the counter when RoomID
// is nil). TotalAmount is computed once at creation and never recomputed.
type Order struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	RoomID      *uuid.UUID   `json:"room_id,omitempty"`
	Status      OrderStatus  `json:"status"`
	TotalAmount int64        `json:"total_amount"` // cents
	Notes       string       `json:"notes,omitempty"`
	IsPaid      bool         `json:"is_paid"`
	Items       []*OrderItem `json:"items"`
	Room        *Room        `json:"room,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
