package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomModel mirrors the 'rooms' table. Amenities is a JSONB array.
type RoomModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RoomNumber     string    `gorm:"type:varchar(20);unique;not null"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Description    string    `gorm:"type:text"`
	Status         string    `gorm:"type:varchar(20);not null;default:'AVAILABLE'"`
	PricePerMinute int64     `gorm:"not null;check:price_per_minute >= 0"`
	ConsoleType    string    `gorm:"type:varchar(50)"`
	Capacity       int       `gorm:"not null;default:1"`
	ImageURL       string    `gorm:"type:varchar(500)"`
	Amenities      []string  `gorm:"type:jsonb;serializer:json"`
	QRToken        string    `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (RoomModel) TableName() string {
	return "rooms"
}
