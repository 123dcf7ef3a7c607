package handler

import (
	"log/slog"
	"net/http"

	"playden/internal/delivery/http/response"
	"playden/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionHandler holds dependencies for play-session handlers.
type SessionHandler struct {
	uc     usecase.SessionUsecase
	logger *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(uc usecase.SessionUsecase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		uc:     uc,
		logger: logger,
	}
}

type startSessionRequest struct {
	RoomID  *uuid.UUID `json:"room_id" validate:"required_without=QRToken"`
	QRToken string     `json:"qr_token" validate:"required_without=RoomID"`
}

// StartSession opens a session in an available room.
func (h *SessionHandler) StartSession(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req startSessionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid session input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.uc.StartSession(c.Request().Context(), usecase.StartSessionInput{
		UserID:  userID,
		RoomID:  req.RoomID,
		QRToken: req.QRToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, session, "Session started")
}

// EndSession bills elapsed time and completes the session.
func (h *SessionHandler) EndSession(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	sessionID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid session ID")
	}

	output, err := h.uc.EndSession(c.Request().Context(), userID, sessionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"session":     output.Session,
		"transaction": output.Transaction,
	}, "Session ended")
}

// GetActiveSession retrieves the user's active session with its running meter.
func (h *SessionHandler) GetActiveSession(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	output, err := h.uc.GetActiveSession(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"session":          output.Session,
		"current_duration": output.CurrentDuration,
		"current_cost":     output.CurrentCost,
	}, "Active session retrieved")
}

// GetSession retrieves a session by ID. Customers may only read their own.
func (h *SessionHandler) GetSession(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	sessionID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid session ID")
	}

	session, err := h.uc.GetSession(c.Request().Context(), userID, sessionID, isAdmin(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, session, "Session retrieved")
}

// GetHistory retrieves a page of the user's past sessions.
func (h *SessionHandler) GetHistory(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	limit, offset := pagination(c)

	page, err := h.uc.GetSessionHistory(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"sessions": page.Sessions,
		"total":    page.Total,
	}, "Session history retrieved")
}
