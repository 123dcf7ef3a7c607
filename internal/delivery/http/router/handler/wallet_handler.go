package handler

import (
	"io"
	"log/slog"
	"net/http"

	"playden/internal/delivery/http/response"
	"playden/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WalletHandler holds dependencies for wallet and deposit handlers.
type WalletHandler struct {
	uc     usecase.WalletUsecase
	logger *slog.Logger
}

// NewWalletHandler is the constructor for WalletHandler, injected by Fx.
func NewWalletHandler(uc usecase.WalletUsecase, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		uc:     uc,
		logger: logger,
	}
}

type createDepositRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"` // cents
}

type confirmDepositRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

// GetWallet retrieves the user's wallet with recent transactions.
func (h *WalletHandler) GetWallet(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	output, err := h.uc.GetWallet(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"wallet":       output.Wallet,
		"transactions": output.Transactions,
	}, "Wallet retrieved successfully")
}

// GetTransactions retrieves a page of the user's ledger history.
func (h *WalletHandler) GetTransactions(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	limit, offset := pagination(c)

	page, err := h.uc.GetTransactions(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"transactions": page.Transactions,
		"total":        page.Total,
	}, "Transactions retrieved successfully")
}

// CreateDeposit registers a deposit with the payment gateway.
func (h *WalletHandler) CreateDeposit(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req createDepositRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid deposit input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	intent, err := h.uc.CreateDepositIntent(c.Request().Context(), userID, req.Amount)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, intent, "Deposit intent created")
}

// ConfirmDeposit verifies the payment succeeded and credits the wallet.
func (h *WalletHandler) ConfirmDeposit(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req confirmDepositRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid confirm input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tx, err := h.uc.ConfirmDeposit(c.Request().Context(), userID, req.PaymentIntentID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tx, "Deposit confirmed")
}

// StripeWebhook handles payment gateway webhook deliveries. The raw body is
// needed for signature verification, so the request is not bound to a struct.
func (h *WalletHandler) StripeWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Failed to read webhook body")
	}

	signature := c.Request().Header.Get("Stripe-Signature")

	if err := h.uc.HandleWebhookEvent(c.Request().Context(), payload, signature); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Webhook processed")
}
