package model

import "time"

// Room represents a bookable space listed on the marketplace by an
// owner.  Clients reserve a room for an interval of time and pay the
// room's hourly rate for the duration of the reservation.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user who listed the room.
//  Name        – display name of the room.
//  Description – optional free-form description.
//  Address     – street address shown to clients.
//  Capacity    – maximum number of guests.
//  HourlyRate  – price per hour in the marketplace currency.  Never
//                negative under normal operation.
//  IsActive    – inactive rooms are hidden from public browsing.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Room struct {
	ID          uint64    // rooms.id
	OwnerID     uint64    // rooms.owner_id
	Name        string    // rooms.name
	Description *string   // rooms.description (nullable)
	Address     string    // rooms.address
	Capacity    uint32    // rooms.capacity
	HourlyRate  float64   // rooms.hourly_rate
	IsActive    bool      // rooms.is_active
	CreatedAt   time.Time // rooms.created_at
	UpdatedAt   time.Time // rooms.updated_at
}
