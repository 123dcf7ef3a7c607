package service

import (
	"context"

	"github.com/google/uuid"
)

// PaymentIntent is the gateway-side record of a pending deposit. UserID is the
// wallet owner the intent was created for, carried in gateway metadata. It is
// uuid.Nil when the intent was created outside this platform.
type PaymentIntent struct {
	ID           string    `json:"id"`
	ClientSecret string    `json:"client_secret"`
	Amount       int64     `json:"amount"` // cents
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	UserID       uuid.UUID `json:"-"`
}

// WebhookEvent is a verified event delivered by the payment gateway.
type WebhookEvent struct {
	Type            string // e.g. "payment_intent.succeeded"
	PaymentIntentID string
	Amount          int64 // cents
	UserID          uuid.UUID
}

// PaymentGateway abstracts the external card-payment provider. Gateway calls
// happen outside database transactions, the ledger credit that follows is made
// idempotent on the payment intent ID.
type PaymentGateway interface {
	// CreateIntent registers a deposit of the given amount for the user and
	// returns the intent the client confirms with the provider's SDK.
	CreateIntent(ctx context.Context, userID uuid.UUID, amount int64) (*PaymentIntent, error)

	// ConfirmDeposit retrieves the intent and verifies it succeeded, returning
	// the settled amount and the owner it was created for.
	ConfirmDeposit(ctx context.Context, paymentIntentID string) (*PaymentIntent, error)

	// ParseWebhookEvent verifies the webhook signature and decodes the event.
	ParseWebhookEvent(payload []byte, signature string) (*WebhookEvent, error)
}
