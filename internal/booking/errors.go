// Package booking implements the interval and pricing engine behind
// room reservations.  The engine is a pure request/response
// computation: it normalizes a candidate interval, decides whether it
// may be booked against the room's existing reservations, and prices
// it from the room's hourly rate.  Persistence and the reservation
// status lifecycle live in the repository layer; the engine performs
// no I/O beyond the lookups its caller supplies.
package booking

import "errors"

// ErrRoomNotFound is returned when the supplied room id does not
// resolve through the room directory.  Handlers translate this into
// an HTTP 404 response.
var ErrRoomNotFound = errors.New("room not found")

// ErrSlotUnavailable is returned when the normalized candidate
// interval overlaps an existing non-cancelled reservation.  Handlers
// translate this into an HTTP 400 response; the client may retry
// with different times.
var ErrSlotUnavailable = errors.New("room unavailable for these times")

// ErrInvalidInput is returned for semantically invalid input, such as
// a negative hourly rate.  Handlers translate this into an HTTP 400
// response.
var ErrInvalidInput = errors.New("invalid input")
