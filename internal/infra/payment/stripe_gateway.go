// Package payment implements the card-payment gateway on top of Stripe.
package payment

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"

	"playden/config"
	"playden/internal/domain/service"
)

const metadataUserID = "user_id"

// stripeGateway is a concrete implementation of the PaymentGateway interface.
type stripeGateway struct {
	api           *client.API
	webhookSecret string
	currency      string
}

// NewStripeGateway is the constructor for stripeGateway.
func NewStripeGateway(cfg *config.Config) (service.PaymentGateway, error) {
	if cfg.Stripe == nil || cfg.Stripe.SecretKey == "" {
		return nil, errors.New("stripe secret key must be provided")
	}

	api := &client.API{}
	api.Init(cfg.Stripe.SecretKey, nil)

	currency := cfg.Stripe.Currency
	if currency == "" {
		currency = "twd"
	}

	return &stripeGateway{
		api:           api,
		webhookSecret: cfg.Stripe.WebhookSecret,
		currency:      currency,
	}, nil
}

// CreateIntent registers a deposit with Stripe. The user ID travels in the
// intent metadata so webhook events can be routed back to the wallet.
func (g *stripeGateway) CreateIntent(ctx context.Context, userID uuid.UUID, amount int64) (*service.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(g.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata(metadataUserID, userID.String())

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create payment intent")
	}

	return toPaymentIntent(intent), nil
}

// ConfirmDeposit retrieves the intent and verifies it settled.
func (g *stripeGateway) ConfirmDeposit(ctx context.Context, paymentIntentID string) (*service.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.Get(paymentIntentID, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to retrieve payment intent")
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, errors.Errorf("payment intent %s has status %s", paymentIntentID, intent.Status)
	}

	return toPaymentIntent(intent), nil
}

// ParseWebhookEvent verifies the webhook signature and decodes the event.
func (g *stripeGateway) ParseWebhookEvent(payload []byte, signature string) (*service.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify webhook signature")
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, errors.Wrap(err, "failed to decode webhook payload")
	}

	webhookEvent := &service.WebhookEvent{
		Type:            string(event.Type),
		PaymentIntentID: intent.ID,
		Amount:          intent.Amount,
	}

	if raw, ok := intent.Metadata[metadataUserID]; ok {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.Wrap(err, "invalid user ID in intent metadata")
		}
		webhookEvent.UserID = userID
	}

	return webhookEvent, nil
}

func toPaymentIntent(intent *stripe.PaymentIntent) *service.PaymentIntent {
	out := &service.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
		Status:       string(intent.Status),
	}

	// Intents created outside this platform carry no owner metadata and stay
	// uuid.Nil, the credit paths refuse those.
	if raw, ok := intent.Metadata[metadataUserID]; ok {
		if userID, err := uuid.Parse(raw); err == nil {
			out.UserID = userID
		}
	}

	return out
}
