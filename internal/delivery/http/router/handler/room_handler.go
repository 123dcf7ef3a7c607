package handler

import (
	"log/slog"
	"net/http"

	"playden/internal/delivery/http/response"
	"playden/internal/domain/entity"
	"playden/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RoomHandler holds dependencies for room handlers.
type RoomHandler struct {
	uc     usecase.RoomUsecase
	logger *slog.Logger
}

// NewRoomHandler is the constructor for RoomHandler, injected by Fx.
func NewRoomHandler(uc usecase.RoomUsecase, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{
		uc:     uc,
		logger: logger,
	}
}

type createRoomRequest struct {
	RoomNumber     string   `json:"room_number" validate:"required,max=20"`
	Name           string   `json:"name" validate:"required,max=100"`
	ConsoleType    string   `json:"console_type" validate:"required,max=50"`
	Capacity       int      `json:"capacity" validate:"required,gt=0"`
	PricePerMinute int64    `json:"price_per_minute" validate:"required,gt=0"` // cents
	Description    string   `json:"description" validate:"omitempty,max=1000"`
	Amenities      []string `json:"amenities" validate:"omitempty,dive,max=50"`
}

type updateRoomRequest struct {
	Name           *string  `json:"name" validate:"omitempty,max=100"`
	ConsoleType    *string  `json:"console_type" validate:"omitempty,max=50"`
	Capacity       *int     `json:"capacity" validate:"omitempty,gt=0"`
	PricePerMinute *int64   `json:"price_per_minute" validate:"omitempty,gt=0"`
	Description    *string  `json:"description" validate:"omitempty,max=1000"`
	Amenities      []string `json:"amenities" validate:"omitempty,dive,max=50"`
	Status         *string  `json:"status" validate:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE"`
}

type verifyQRRequest struct {
	Token string `json:"token" validate:"required"`
}

// ListRooms retrieves rooms, optionally filtered by the status query parameter.
func (h *RoomHandler) ListRooms(c echo.Context) error {
	var status *entity.RoomStatus
	if raw := c.QueryParam("status"); raw != "" {
		parsed := entity.RoomStatus(raw)
		if !parsed.IsValid() {
			return response.BadRequest(c, "INVALID_INPUT", "Unknown room status")
		}
		status = &parsed
	}

	rooms, err := h.uc.ListRooms(c.Request().Context(), status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rooms, "Rooms retrieved successfully")
}

// GetRoom retrieves a room by its ID.
func (h *RoomHandler) GetRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid room ID")
	}

	room, err := h.uc.GetRoom(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, room, "Room retrieved successfully")
}

// CreateRoom creates a room. Admin only.
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid room input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	room, err := h.uc.CreateRoom(c.Request().Context(), usecase.CreateRoomInput{
		RoomNumber:     req.RoomNumber,
		Name:           req.Name,
		ConsoleType:    req.ConsoleType,
		Capacity:       req.Capacity,
		PricePerMinute: req.PricePerMinute,
		Description:    req.Description,
		Amenities:      req.Amenities,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, room, "Room created successfully")
}

// UpdateRoom modifies a room. Admin only.
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid room ID")
	}

	var req updateRoomRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid room input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := usecase.UpdateRoomInput{
		Name:           req.Name,
		ConsoleType:    req.ConsoleType,
		Capacity:       req.Capacity,
		PricePerMinute: req.PricePerMinute,
		Description:    req.Description,
		Amenities:      req.Amenities,
	}
	if req.Status != nil {
		status := entity.RoomStatus(*req.Status)
		input.Status = &status
	}

	room, err := h.uc.UpdateRoom(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, room, "Room updated successfully")
}

// DeleteRoom removes a room. Admin only.
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid room ID")
	}

	if err := h.uc.DeleteRoom(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Room deleted successfully")
}

// VerifyQR validates a scanned token and returns the room it opens.
func (h *RoomHandler) VerifyQR(c echo.Context) error {
	var req verifyQRRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid token input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	room, err := h.uc.VerifyQRToken(c.Request().Context(), req.Token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, room, "Token verified")
}

// GetQRImage renders the room's QR code as a PNG. Admin only, the image is
// printed and placed in the room.
func (h *RoomHandler) GetQRImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid room ID")
	}

	png, err := h.uc.GetRoomQRImage(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
