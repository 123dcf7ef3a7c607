package model

import (
	"time"

	"github.com/google/uuid"
)

// WalletModel mirrors the 'wallets' table. Balance is stored in cents, one
// wallet per user.
type WalletModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Balance   int64     `gorm:"not null;default:0;check:balance >= 0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (WalletModel) TableName() string {
	return "wallets"
}

// TransactionModel mirrors the 'transactions' table, the append-only ledger.
// ExternalRef carries the payment gateway reference and is unique when set, so
// a deposit can be credited at most once no matter how many times the confirm
// or webhook paths retry.
type TransactionModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	WalletID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Type          string    `gorm:"type:varchar(30);not null"`
	Amount        int64     `gorm:"not null"`
	BalanceBefore int64     `gorm:"not null"`
	BalanceAfter  int64     `gorm:"not null"`
	Description   string    `gorm:"type:text"`
	ExternalRef   *string   `gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}
