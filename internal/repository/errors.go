// Package repository implements data access over MySQL with raw
// parameterized queries.  This file defines sentinel errors shared
// across the repositories so handlers can map failure scenarios to
// HTTP responses with errors.Is instead of string matching.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as confirming a reservation on
// another owner's room.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as cancelling a reservation that is
// already cancelled.  Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrRoomNotFound is returned when a room id does not resolve to a
// row.  Handlers translate this into HTTP 404.
var ErrRoomNotFound = errors.New("room not found")

// ErrReservationNotFound is returned when a reservation id does not
// resolve to a row visible to the caller.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrEmailExists is returned on registration when the email is
// already taken.  Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")
