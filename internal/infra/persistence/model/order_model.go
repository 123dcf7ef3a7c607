package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	RoomID      *uuid.UUID `gorm:"type:uuid;index"`
	Status      string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	TotalAmount int64      `gorm:"not null"`
	Notes       string     `gorm:"type:text"`
	IsPaid      bool       `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID"`
	Room  *RoomModel       `gorm:"foreignKey:RoomID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. PriceAtOrder freezes the
// menu price at order time.
type OrderItemModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	MenuItemID   uuid.UUID `gorm:"type:uuid;not null"`
	Quantity     int       `gorm:"not null;check:quantity > 0"`
	PriceAtOrder int64     `gorm:"not null"`

	MenuItem *MenuItemModel `gorm:"foreignKey:MenuItemID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
