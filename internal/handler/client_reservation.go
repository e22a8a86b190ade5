package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/booking"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/model"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/queue"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/repository"
	queuepublisher "github.com/kelfaoui/Party-Hoster-APP-sub000/internal/service/queue_publisher"
)

// ClientHandler implements the client-facing reservation flow: create
// a booking through the interval/pricing engine, list and cancel own
// reservations, and leave ratings and comments.  JWT authentication
// and role validation happen in middleware before any method runs.
type ClientHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
	Feedback     *repository.FeedbackRepo
	Engine       *booking.Engine
	Locks        *booking.RoomLocks
}

func NewClientHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo, feedback *repository.FeedbackRepo) *ClientHandler {
	if rooms == nil || reservations == nil || feedback == nil {
		panic("nil repository passed to NewClientHandler")
	}
	return &ClientHandler{
		Rooms:        rooms,
		Reservations: reservations,
		Feedback:     feedback,
		Engine:       booking.NewEngine(rooms, reservations),
		Locks:        booking.NewRoomLocks(),
	}
}

// reservationView serializes a reservation for API responses.
type reservationView struct {
	ID         uint64  `json:"id"`
	RoomID     uint64  `json:"room_id"`
	ClientID   uint64  `json:"client_id"`
	StartAt    string  `json:"start_at"`
	EndAt      string  `json:"end_at"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
}

func toReservationView(res model.Reservation) reservationView {
	return reservationView{
		ID:         res.ID,
		RoomID:     res.RoomID,
		ClientID:   res.ClientID,
		StartAt:    res.StartAt.UTC().Format(time.RFC3339),
		EndAt:      res.EndAt.UTC().Format(time.RFC3339),
		Status:     res.Status,
		TotalPrice: res.TotalPrice,
	}
}

// CreateReservation handles POST /v1/rooms/:id/reservations.  The
// request body carries raw start/end date-times; the engine
// normalizes the interval, checks availability against the room's
// non-cancelled reservations and computes the price.  The
// availability check and the INSERT run under the room's lock so two
// concurrent requests for the same room cannot both pass the check.
func (h *ClientHandler) CreateReservation(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var body struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	start, err := parseTime(body.Start)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start"})
	}
	end, err := parseTime(body.End)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	// Serialize check-then-persist per room.
	unlock := h.Locks.Lock(roomID)
	defer unlock()

	quote, err := h.Engine.BookRoom(ctx, roomID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrRoomNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		case errors.Is(err, booking.ErrSlotUnavailable):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "room unavailable for these times"})
		case errors.Is(err, booking.ErrInvalidInput):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking input"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	res := model.Reservation{
		RoomID:     roomID,
		ClientID:   clientID,
		StartAt:    quote.Interval.Start,
		EndAt:      quote.Interval.End,
		Status:     model.ReservationPending,
		TotalPrice: quote.Price,
	}
	tx, err := h.Reservations.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.Reservations.CreateTx(ctx, tx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// Publish after commit; a broker failure never fails the booking.
	_ = queuepublisher.PublishReservationCreated(ctx, queue.ReservationCreatedEvent{
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		ClientID:      res.ClientID,
		StartAt:       res.StartAt.UTC().Format(time.RFC3339),
		EndAt:         res.EndAt.UTC().Format(time.RFC3339),
		TotalPrice:    res.TotalPrice,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, toReservationView(res))
}

// ListMyReservations handles GET /v1/reservations.
func (h *ClientHandler) ListMyReservations(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListByClient(ctx, clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	views := make([]reservationView, 0, len(list))
	for _, res := range list {
		views = append(views, toReservationView(res))
	}
	return c.JSON(http.StatusOK, views)
}

// CancelMyReservation handles DELETE /v1/reservations/:id.  Only the
// reservation's client may cancel, and only while it is PENDING.
func (h *ClientHandler) CancelMyReservation(c echo.Context) error {
	clientID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.CancelForClient(ctx, id, clientID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not pending"})
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

// RateRoom handles PUT /v1/rooms/:id/rating with body {"stars": n}.
func (h *ClientHandler) RateRoom(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var body struct {
		Stars uint8 `json:"stars"`
	}
	if err := c.Bind(&body); err != nil || body.Stars < 1 || body.Stars > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stars must be between 1 and 5"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	rt := model.Rating{RoomID: roomID, UserID: userID, Stars: body.Stars}
	if err := h.Feedback.UpsertRating(ctx, rt); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save rating"})
	}
	return c.NoContent(http.StatusNoContent)
}

// CommentRoom handles POST /v1/rooms/:id/comments.
func (h *ClientHandler) CommentRoom(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	roomID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var body struct {
		Body string `json:"body"`
	}
	if err := c.Bind(&body); err != nil || strings.TrimSpace(body.Body) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "body is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	cm := model.Comment{RoomID: roomID, UserID: userID, Body: strings.TrimSpace(body.Body)}
	if err := h.Feedback.CreateComment(ctx, &cm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save comment"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": cm.ID})
}
