package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItemModel mirrors the 'menu_items' table.
type MenuItemModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name            string    `gorm:"type:varchar(100);unique;not null"`
	Description     string    `gorm:"type:text"`
	Price           int64     `gorm:"not null;check:price > 0"`
	Category        string    `gorm:"type:varchar(50);not null;index"`
	ImageURL        string    `gorm:"type:varchar(500)"`
	IsAvailable     bool      `gorm:"not null;default:true"`
	PreparationTime int       `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (MenuItemModel) TableName() string {
	return "menu_items"
}
