// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published when a client successfully
// books a room.  It carries enough information for downstream
// consumers to notify the owner or feed analytics without querying
// the primary database.
type ReservationCreatedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	RoomID        uint64  `json:"room_id"`
	ClientID      uint64  `json:"client_id"`
	StartAt       string  `json:"start_at"`
	EndAt         string  `json:"end_at"`
	TotalPrice    float64 `json:"total_price"`
	CreatedAt     string  `json:"created_at"`
}

// ReservationStatusEvent is published when a reservation transitions
// to CONFIRMED or CANCELLED.
type ReservationStatusEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	RoomID        uint64 `json:"room_id"`
	Status        string `json:"status"`
	ChangedAt     string `json:"changed_at"`
}
