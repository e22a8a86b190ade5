package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/model"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/repository"
)

// OwnerHandler bundles repositories for owners to manage their room
// listings and the reservations made on them.
type OwnerHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
}

func NewOwnerHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo) *OwnerHandler {
	if rooms == nil || reservations == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{Rooms: rooms, Reservations: reservations}
}

type roomBody struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Address     string   `json:"address"`
	Capacity    *uint32  `json:"capacity"`
	HourlyRate  *float64 `json:"hourly_rate"`
	IsActive    *bool    `json:"is_active"`
}

// CreateRoom handles POST /v1/owner/rooms.
func (h *OwnerHandler) CreateRoom(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body roomBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Address) == "" ||
		body.Capacity == nil || *body.Capacity == 0 || body.HourlyRate == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name, address, capacity and hourly_rate are required",
		})
	}
	if *body.HourlyRate < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hourly_rate must not be negative"})
	}

	rm := model.Room{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(body.Name),
		Description: body.Description,
		Address:     strings.TrimSpace(body.Address),
		Capacity:    *body.Capacity,
		HourlyRate:  *body.HourlyRate,
		IsActive:    true,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Create(ctx, &rm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create room"})
	}
	return c.JSON(http.StatusCreated, toRoomView(rm))
}

// ListMyRooms handles GET /v1/owner/rooms.
func (h *OwnerHandler) ListMyRooms(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.ListByOwner(ctx, ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	views := make([]roomView, 0, len(rooms))
	for _, rm := range rooms {
		views = append(views, toRoomView(rm))
	}
	return c.JSON(http.StatusOK, views)
}

// UpdateRoom handles PUT /v1/owner/rooms/:id.  Only provided fields
// change; the hourly rate of existing reservations is never
// recomputed when the rate changes.
func (h *OwnerHandler) UpdateRoom(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body roomBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cur, err := h.Rooms.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if strings.TrimSpace(body.Name) != "" {
		cur.Name = strings.TrimSpace(body.Name)
	}
	if body.Description != nil {
		cur.Description = body.Description
	}
	if strings.TrimSpace(body.Address) != "" {
		cur.Address = strings.TrimSpace(body.Address)
	}
	if body.Capacity != nil && *body.Capacity > 0 {
		cur.Capacity = *body.Capacity
	}
	if body.HourlyRate != nil {
		if *body.HourlyRate < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "hourly_rate must not be negative"})
		}
		cur.HourlyRate = *body.HourlyRate
	}
	if body.IsActive != nil {
		cur.IsActive = *body.IsActive
	}

	if err := h.Rooms.Update(ctx, &cur); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update room"})
	}
	return c.JSON(http.StatusOK, toRoomView(cur))
}

// DeleteRoom handles DELETE /v1/owner/rooms/:id.  Rooms with pending
// or confirmed reservations cannot be deleted.
func (h *OwnerHandler) DeleteRoom(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Rooms.GetByIDAndOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has active reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete room"})
	}
	return c.NoContent(http.StatusNoContent)
}
