package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"playden/internal/delivery/http/response"
	"playden/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const defaultActivityLimit = 20

// AdminHandler holds dependencies for admin dashboard handlers.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: logger,
	}
}

type setUserActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// GetStats computes the dashboard counters.
func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.uc.GetPlatformStats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "Stats retrieved successfully")
}

// GetActivity retrieves the newest platform activity entries.
func (h *AdminHandler) GetActivity(c echo.Context) error {
	limit := defaultActivityLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = min(parsed, maxPageLimit)
		}
	}

	entries, err := h.uc.GetRecentActivity(c.Request().Context(), limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, entries, "Activity retrieved successfully")
}

// ListUsers retrieves a page of registered users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit, offset := pagination(c)

	page, err := h.uc.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"users": page.Users,
		"total": page.Total,
	}, "Users retrieved successfully")
}

// SetUserActive activates or deactivates a user account.
func (h *AdminHandler) SetUserActive(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid user ID")
	}

	var req setUserActiveRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.SetUserActive(c.Request().Context(), userID, *req.IsActive)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User updated successfully")
}

// ListSessions retrieves a page of sessions across all users.
func (h *AdminHandler) ListSessions(c echo.Context) error {
	limit, offset := pagination(c)

	page, err := h.uc.ListSessions(c.Request().Context(), limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"sessions": page.Sessions,
		"total":    page.Total,
	}, "Sessions retrieved successfully")
}

// ListActiveSessions retrieves all currently active sessions.
func (h *AdminHandler) ListActiveSessions(c echo.Context) error {
	sessions, err := h.uc.ListActiveSessions(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sessions, "Active sessions retrieved successfully")
}
