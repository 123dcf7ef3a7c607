package handler

import (
	"log/slog"
	"net/http"

	"playden/internal/delivery/http/response"
	"playden/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MenuHandler holds dependencies for menu handlers.
type MenuHandler struct {
	uc     usecase.MenuUsecase
	logger *slog.Logger
}

// NewMenuHandler is the constructor for MenuHandler, injected by Fx.
func NewMenuHandler(uc usecase.MenuUsecase, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		uc:     uc,
		logger: logger,
	}
}

type createMenuItemRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Description     string `json:"description" validate:"omitempty,max=1000"`
	Price           int64  `json:"price" validate:"required,gt=0"` // cents
	Category        string `json:"category" validate:"required,max=50"`
	ImageURL        string `json:"image_url" validate:"omitempty,url"`
	PreparationTime int    `json:"preparation_time" validate:"omitempty,gte=0"` // minutes
}

type updateMenuItemRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=100"`
	Description     *string `json:"description" validate:"omitempty,max=1000"`
	Price           *int64  `json:"price" validate:"omitempty,gt=0"`
	Category        *string `json:"category" validate:"omitempty,max=50"`
	ImageURL        *string `json:"image_url" validate:"omitempty,url"`
	IsAvailable     *bool   `json:"is_available"`
	PreparationTime *int    `json:"preparation_time" validate:"omitempty,gte=0"`
}

// ListItems retrieves menu items. Customers see available items only, admins
// see the full catalog.
func (h *MenuHandler) ListItems(c echo.Context) error {
	category := c.QueryParam("category")
	availableOnly := !isAdmin(c)

	items, err := h.uc.ListItems(c.Request().Context(), category, availableOnly)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, items, "Menu retrieved successfully")
}

// ListCategories retrieves the distinct menu categories.
func (h *MenuHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "Categories retrieved successfully")
}

// GetItem retrieves a menu item by its ID.
func (h *MenuHandler) GetItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid menu item ID")
	}

	item, err := h.uc.GetItem(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Menu item retrieved successfully")
}

// CreateItem creates a menu item. Admin only.
func (h *MenuHandler) CreateItem(c echo.Context) error {
	var req createMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu item input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.uc.CreateItem(c.Request().Context(), usecase.CreateMenuItemInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		PreparationTime: req.PreparationTime,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, item, "Menu item created successfully")
}

// UpdateItem modifies a menu item. Admin only.
func (h *MenuHandler) UpdateItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid menu item ID")
	}

	var req updateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu item input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.uc.UpdateItem(c.Request().Context(), id, usecase.UpdateMenuItemInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		IsAvailable:     req.IsAvailable,
		PreparationTime: req.PreparationTime,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Menu item updated successfully")
}

// DeleteItem removes a menu item. Admin only.
func (h *MenuHandler) DeleteItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid menu item ID")
	}

	if err := h.uc.DeleteItem(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Menu item deleted successfully")
}
