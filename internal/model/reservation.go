package model

import "time"

// Reservation statuses.  A reservation is created PENDING, then an
// owner (or admin) confirms or cancels it.  Cancelled reservations no
// longer block the room for other bookings but stay in storage.
const (
	ReservationPending   = "PENDING"   // awaiting owner confirmation
	ReservationConfirmed = "CONFIRMED" // accepted by the owner
	ReservationCancelled = "CANCELLED" // released; excluded from overlap checks
)

// Reservation records a client's booking of a room for a time
// interval.  TotalPrice is computed once at creation from the room's
// hourly rate and the booked duration; it is never recomputed when
// the rate later changes.
//
// Fields:
//  ID         – primary key identifier.
//  RoomID     – room being reserved.
//  ClientID   – user who made the reservation.
//  StartAt    – start of the occupancy window (UTC).
//  EndAt      – end of the occupancy window (UTC, after StartAt once
//               normalized).
//  Status     – one of the Reservation* constants above.
//  TotalPrice – total price for the whole interval.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Reservation struct {
	ID         uint64    // reservations.id
	RoomID     uint64    // reservations.room_id
	ClientID   uint64    // reservations.client_id
	StartAt    time.Time // reservations.start_at
	EndAt      time.Time // reservations.end_at
	Status     string    // reservations.status
	TotalPrice float64   // reservations.total_price
	CreatedAt  time.Time // reservations.created_at
	UpdatedAt  time.Time // reservations.updated_at
}

// IsCancelled reports whether the reservation has been cancelled and
// therefore no longer occupies its room for availability purposes.
func (r Reservation) IsCancelled() bool { return r.Status == ReservationCancelled }
