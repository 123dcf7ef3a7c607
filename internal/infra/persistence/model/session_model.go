package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionModel mirrors the 'sessions' table. The partial unique indexes on
// room_id and user_id (WHERE status = 'ACTIVE') enforce the one-active-session
// invariant at the database level, so concurrent starts that slip past the
// application checks fail on insert.
type SessionModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:udx_sessions_active_user,where:status = 'ACTIVE'"`
	RoomID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:udx_sessions_active_room,where:status = 'ACTIVE'"`
	Status        string    `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	StartTime     time.Time `gorm:"not null"`
	EndTime       *time.Time
	Duration      int   `gorm:"not null;default:0"`
	CostPerMinute int64 `gorm:"not null"`
	TotalCost     int64 `gorm:"not null;default:0"`
	IsPaid        bool  `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Room *RoomModel `gorm:"foreignKey:RoomID"`
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
