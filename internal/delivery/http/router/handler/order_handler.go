package handler

import (
	"log/slog"
	"net/http"

	"playden/internal/delivery/http/response"
	"playden/internal/domain/entity"
	"playden/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

type orderItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	RoomID *uuid.UUID         `json:"room_id"`
	Items  []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes  string             `json:"notes" validate:"omitempty,max=500"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PREPARING READY DELIVERED CANCELLED"`
}

// CreateOrder places an order paid from the wallet.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.OrderItemInput{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		})
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		UserID: userID,
		RoomID: req.RoomID,
		Items:  items,
		Notes:  req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created successfully")
}

// GetOrder retrieves an order. Customers may only read their own.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orderID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), userID, orderID, isAdmin(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// GetMyOrders retrieves a page of the user's orders.
func (h *OrderHandler) GetMyOrders(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	limit, offset := pagination(c)

	page, err := h.uc.GetUserOrders(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"orders": page.Orders,
		"total":  page.Total,
	}, "Orders retrieved successfully")
}

// ListOrders retrieves a page of all orders for the kitchen queue. Admin only.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	var status *entity.OrderStatus
	if raw := c.QueryParam("status"); raw != "" {
		parsed := entity.OrderStatus(raw)
		if !parsed.IsValid() {
			return response.BadRequest(c, "INVALID_INPUT", "Unknown order status")
		}
		status = &parsed
	}

	limit, offset := pagination(c)

	page, err := h.uc.ListOrders(c.Request().Context(), status, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"orders": page.Orders,
		"total":  page.Total,
	}, "Orders retrieved successfully")
}

// UpdateStatus moves an order along its fulfilment flow. Admin only.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.uc.UpdateOrderStatus(c.Request().Context(), orderID, entity.OrderStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated")
}
