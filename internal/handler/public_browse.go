package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/booking"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/model"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/repository"
)

// PublicHandler exposes unauthenticated browse endpoints: room
// listings, room details with ratings, comments and an availability
// probe.  Guests use these to inspect a room before registering.
type PublicHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
	Feedback     *repository.FeedbackRepo
}

func NewPublicHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo, feedback *repository.FeedbackRepo) *PublicHandler {
	if rooms == nil || reservations == nil || feedback == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Rooms: rooms, Reservations: reservations, Feedback: feedback}
}

// roomView is the public projection of a room; the owner id is kept
// so clients can group rooms by host.
type roomView struct {
	ID          uint64  `json:"id"`
	OwnerID     uint64  `json:"owner_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Address     string  `json:"address"`
	Capacity    uint32  `json:"capacity"`
	HourlyRate  float64 `json:"hourly_rate"`
	AvgRating   float64 `json:"avg_rating,omitempty"`
	RatingCount int     `json:"rating_count,omitempty"`
}

func toRoomView(rm model.Room) roomView {
	return roomView{
		ID:          rm.ID,
		OwnerID:     rm.OwnerID,
		Name:        rm.Name,
		Description: rm.Description,
		Address:     rm.Address,
		Capacity:    rm.Capacity,
		HourlyRate:  rm.HourlyRate,
	}
}

// ListRooms handles GET /v1/rooms.
func (h *PublicHandler) ListRooms(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	views := make([]roomView, 0, len(rooms))
	for _, rm := range rooms {
		views = append(views, toRoomView(rm))
	}
	return c.JSON(http.StatusOK, views)
}

// GetRoom handles GET /v1/rooms/:id and includes the average rating.
func (h *PublicHandler) GetRoom(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	view := toRoomView(rm)
	if avg, count, err := h.Rooms.AverageRating(ctx, id); err == nil {
		view.AvgRating = avg
		view.RatingCount = count
	}
	return c.JSON(http.StatusOK, view)
}

// ListComments handles GET /v1/rooms/:id/comments.
func (h *PublicHandler) ListComments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	comments, err := h.Feedback.ListComments(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, comments)
}

// CheckAvailability handles GET /v1/rooms/:id/availability?start=&end=.
// It runs the same normalization and overlap test as a booking, but
// without writing anything, so clients can probe before committing.
func (h *PublicHandler) CheckAvailability(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	start, err := parseTime(c.QueryParam("start"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start"})
	}
	end, err := parseTime(c.QueryParam("end"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	iv := booking.NewInterval(start, end)
	existing, err := h.Reservations.Overlapping(ctx, id, iv)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"available": booking.IsAvailable(iv, existing),
		"start":     iv.Start.Format(time.RFC3339),
		"end":       iv.End.Format(time.RFC3339),
	})
}
