// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds a user's prepaid balance. Balance is an integer amount in the
// minor currency unit (cents); floating-point money is never used. The balance
// is mutated only inside atomic operations that also append a Transaction row,
// so at any observation point balance == sum of all transaction amounts.
type Wallet struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Balance   int64     `json:"balance"` // cents
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionDeposit        TransactionType = "DEPOSIT"
	TransactionWithdrawal     TransactionType = "WITHDRAWAL"
	TransactionRefund         TransactionType = "REFUND"
	TransactionSessionPayment TransactionType = "SESSION_PAYMENT"
	TransactionOrderPayment   TransactionType = "ORDER_PAYMENT"
)

// IsValid checks if the TransactionType is a valid value.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionDeposit, TransactionWithdrawal, TransactionRefund,
		TransactionSessionPayment, TransactionOrderPayment:
		return true
	default:
		return false
	}
}

// IsCredit reports whether entries of this type increase the balance.
func (t TransactionType) IsCredit() bool {
	switch t {
	case TransactionDeposit, TransactionRefund:
		return true
	default:
		return false
	}
}

// Transaction is an immutable ledger entry. Amount is signed: positive for
// credits, negative for debits. BalanceBefore/BalanceAfter are snapshots taken
// at operation time, giving an audit trail that can be replayed independently
// of the wallet row. Rows are never updated or deleted after creation.
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	WalletID      uuid.UUID       `json:"wallet_id"`
	Type          TransactionType `json:"type"`
	Amount        int64           `json:"amount"` // cents, signed
	BalanceBefore int64           `json:"balance_before"`
	BalanceAfter  int64           `json:"balance_after"`
	Description   string          `json:"description"`
	ExternalRef   string          `json:"external_ref,omitempty"` // payment gateway reference, idempotency key
	CreatedAt     time.Time       `json:"created_at"`
}
