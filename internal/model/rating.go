package model

import "time"

// Rating is a 1–5 star score a user leaves on a room.  Each user may
// rate a room at most once; a second submission replaces the first.
type Rating struct {
	ID        uint64    // ratings.id
	RoomID    uint64    // ratings.room_id
	UserID    uint64    // ratings.user_id
	Stars     uint8     // ratings.stars (1..5)
	CreatedAt time.Time // ratings.created_at
}

// Comment is a free-form message a user leaves on a room's page.
type Comment struct {
	ID        uint64    // comments.id
	RoomID    uint64    // comments.room_id
	UserID    uint64    // comments.user_id
	Body      string    // comments.body
	CreatedAt time.Time // comments.created_at
}
