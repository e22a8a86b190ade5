package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/model"
)

// RoomDirectory resolves a room id to its hourly rate.  An
// implementation must return an error wrapping ErrRoomNotFound when
// the room does not exist; any other error is passed through to the
// caller unchanged (lookup timeouts, connectivity).
type RoomDirectory interface {
	HourlyRate(ctx context.Context, roomID uint64) (float64, error)
}

// ReservationSource supplies the existing reservations of a room that
// could conflict with the given interval.  Implementations are free
// to pre-filter by status and window (the SQL-backed source does);
// the engine re-checks both, so returning extra rows is harmless.
type ReservationSource interface {
	Overlapping(ctx context.Context, roomID uint64, iv Interval) ([]model.Reservation, error)
}

// Quote is the successful outcome of a booking request: the price for
// the normalized interval, which the caller persists together with a
// PENDING reservation row.
type Quote struct {
	Price    float64
	Interval Interval
}

// Engine wires the pure interval/pricing functions to the external
// room directory and reservation store.  It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	rooms        RoomDirectory
	reservations ReservationSource
}

// NewEngine constructs an Engine.  Both collaborators must be non-nil.
func NewEngine(rooms RoomDirectory, reservations ReservationSource) *Engine {
	if rooms == nil || reservations == nil {
		panic("nil collaborator passed to NewEngine")
	}
	return &Engine{rooms: rooms, reservations: reservations}
}

// BookRoom runs the full booking computation for a candidate
// interval:
//
//  1. normalize the interval (overnight rollover),
//  2. resolve the room's hourly rate (ErrRoomNotFound when absent),
//  3. fetch the room's non-cancelled reservations,
//  4. reject with ErrSlotUnavailable when any of them overlaps,
//  5. price the interval at the room's rate.
//
// The returned Quote carries the normalized interval so the caller
// persists exactly what was checked.  BookRoom itself writes nothing;
// callers wanting the no-overlap invariant to hold under concurrency
// must serialize the check-and-persist sequence per room (see
// RoomLocks).
func (e *Engine) BookRoom(ctx context.Context, roomID uint64, start, end time.Time) (Quote, error) {
	iv := NewInterval(start, end)

	rate, err := e.rooms.HourlyRate(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return Quote{}, fmt.Errorf("book room %d: %w", roomID, ErrRoomNotFound)
		}
		return Quote{}, fmt.Errorf("room lookup: %w", err)
	}

	existing, err := e.reservations.Overlapping(ctx, roomID, iv)
	if err != nil {
		return Quote{}, fmt.Errorf("reservation lookup: %w", err)
	}
	if !IsAvailable(iv, existing) {
		return Quote{}, fmt.Errorf("book room %d: %w", roomID, ErrSlotUnavailable)
	}

	price, err := ComputePrice(rate, iv)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Price: price, Interval: iv}, nil
}
