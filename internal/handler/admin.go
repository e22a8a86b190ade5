package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/repository"
)

// AdminHandler exposes the moderation surface: user and room removal,
// comment moderation and a global reservation table.  All routes are
// gated on the ADMIN role by middleware.
type AdminHandler struct {
	Users        *repository.UserRepo
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
	Feedback     *repository.FeedbackRepo
}

func NewAdminHandler(users *repository.UserRepo, rooms *repository.RoomRepo, reservations *repository.ReservationRepo, feedback *repository.FeedbackRepo) *AdminHandler {
	if users == nil || rooms == nil || reservations == nil || feedback == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Users: users, Rooms: rooms, Reservations: reservations, Feedback: feedback}
}

// ListUsers handles GET /v1/admin/users.  Password hashes are not
// serialized.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type userRow struct {
		ID       uint64 `json:"id"`
		Email    string `json:"email"`
		Role     string `json:"role"`
		IsActive bool   `json:"is_active"`
	}
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{ID: u.ID, Email: u.Email, Role: u.Role, IsActive: u.IsActive})
	}
	return c.JSON(http.StatusOK, rows)
}

// DeactivateUser handles DELETE /v1/admin/users/:id.  Accounts are
// deactivated, not removed, so reservation history stays intact.
func (h *AdminHandler) DeactivateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Deactivate(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteRoom handles DELETE /v1/admin/rooms/:id, bypassing the
// ownership check owners are subject to.
func (h *AdminHandler) DeleteRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has active reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteComment handles DELETE /v1/admin/comments/:id.
func (h *AdminHandler) DeleteComment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid comment id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Feedback.DeleteComment(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListReservations handles GET /v1/admin/reservations.
func (h *AdminHandler) ListReservations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	views := make([]reservationView, 0, len(list))
	for _, res := range list {
		views = append(views, toReservationView(res))
	}
	return c.JSON(http.StatusOK, views)
}
