package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/model"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/queue"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/repository"
	queuepublisher "github.com/kelfaoui/Party-Hoster-APP-sub000/internal/service/queue_publisher"
)

// ListRoomReservations handles GET /v1/owner/rooms/:id/reservations.
// Ownership of the room is verified by the repository.
func (h *OwnerHandler) ListRoomReservations(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListByRoomForOwner(ctx, roomID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	views := make([]reservationView, 0, len(list))
	for _, res := range list {
		views = append(views, toReservationView(res))
	}
	return c.JSON(http.StatusOK, views)
}

// ConfirmReservation handles POST /v1/owner/reservations/:id/confirm.
func (h *OwnerHandler) ConfirmReservation(c echo.Context) error {
	return h.setStatus(c, model.ReservationConfirmed)
}

// CancelReservation handles POST /v1/owner/reservations/:id/cancel.
// The cancelled reservation stops blocking the room but stays stored.
func (h *OwnerHandler) CancelReservation(c echo.Context) error {
	return h.setStatus(c, model.ReservationCancelled)
}

func (h *OwnerHandler) setStatus(c echo.Context, status string) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.UpdateStatusForOwner(ctx, id, ownerID, status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation already in a terminal state"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	_ = queuepublisher.PublishReservationStatus(ctx, queue.ReservationStatusEvent{
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		Status:        res.Status,
		ChangedAt:     time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, toReservationView(res))
}
