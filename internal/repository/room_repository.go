package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/booking"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/model"
)

// RoomRepo provides CRUD operations over the 'rooms' table.  Rooms
// are listed by owners and browsed publicly; the hourly_rate column
// feeds the booking engine's price computation.
type RoomRepo struct{ DB *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{DB: db} }

const roomColumns = "id, owner_id, name, description, address, capacity, hourly_rate, is_active, created_at, updated_at"

func scanRoom(row interface{ Scan(...any) error }) (model.Room, error) {
	var rm model.Room
	var desc sql.NullString
	err := row.Scan(&rm.ID, &rm.OwnerID, &rm.Name, &desc, &rm.Address,
		&rm.Capacity, &rm.HourlyRate, &rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return model.Room{}, err
	}
	if desc.Valid {
		d := desc.String
		rm.Description = &d
	}
	return rm, nil
}

// Create inserts a room and populates the generated ID on the model.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	var desc sql.NullString
	if rm.Description != nil && strings.TrimSpace(*rm.Description) != "" {
		desc = sql.NullString{String: strings.TrimSpace(*rm.Description), Valid: true}
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO rooms (owner_id, name, description, address, capacity, hourly_rate) VALUES (?,?,?,?,?,?)",
		rm.OwnerID, rm.Name, desc, rm.Address, rm.Capacity, rm.HourlyRate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	return nil
}

// GetByID fetches a room regardless of ownership.  Returns
// ErrRoomNotFound when no row exists.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	rm, err := scanRoom(r.DB.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Room{}, ErrRoomNotFound
	}
	return rm, err
}

// GetByIDAndOwner fetches a room and enforces ownership in the query
// itself.  Returns ErrRoomNotFound when the room does not exist or
// belongs to someone else.
func (r *RoomRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (model.Room, error) {
	rm, err := scanRoom(r.DB.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id=? AND owner_id=? LIMIT 1", id, ownerID))
	if err == sql.ErrNoRows {
		return model.Room{}, ErrRoomNotFound
	}
	return rm, err
}

// ListActive returns all active rooms for public browsing, newest
// first.
func (r *RoomRepo) ListActive(ctx context.Context) ([]model.Room, error) {
	return r.list(ctx, "SELECT "+roomColumns+" FROM rooms WHERE is_active=1 ORDER BY created_at DESC")
}

// ListByOwner returns every room (active or not) listed by the owner.
func (r *RoomRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Room, error) {
	return r.list(ctx, "SELECT "+roomColumns+" FROM rooms WHERE owner_id=? ORDER BY created_at DESC", ownerID)
}

func (r *RoomRepo) list(ctx context.Context, query string, args ...any) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Room, 0)
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// Update persists the mutable listing fields of a room.  Ownership
// must have been verified by the caller (GetByIDAndOwner).
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	var desc sql.NullString
	if rm.Description != nil && strings.TrimSpace(*rm.Description) != "" {
		desc = sql.NullString{String: strings.TrimSpace(*rm.Description), Valid: true}
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE rooms SET name=?, description=?, address=?, capacity=?, hourly_rate=?, is_active=?, updated_at=NOW() WHERE id=?",
		rm.Name, desc, rm.Address, rm.Capacity, rm.HourlyRate, rm.IsActive, rm.ID)
	return err
}

// Delete removes a room.  Returns ErrConflict when reservations other
// than cancelled ones still reference it, mirroring the foreign-key
// protection in the schema.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE room_id=? AND status <> ?",
		id, model.ReservationCancelled).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM rooms WHERE id=?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// HourlyRate implements booking.RoomDirectory on top of GetByID,
// translating the repository's not-found sentinel into the engine's.
func (r *RoomRepo) HourlyRate(ctx context.Context, roomID uint64) (float64, error) {
	rm, err := r.GetByID(ctx, roomID)
	if errors.Is(err, ErrRoomNotFound) {
		return 0, booking.ErrRoomNotFound
	}
	if err != nil {
		return 0, err
	}
	return rm.HourlyRate, nil
}

// AverageRating returns the mean star rating of a room and the number
// of ratings.  Rooms without ratings yield (0, 0).
func (r *RoomRepo) AverageRating(ctx context.Context, roomID uint64) (float64, int, error) {
	var avg sql.NullFloat64
	var count int
	err := r.DB.QueryRowContext(ctx,
		"SELECT AVG(stars), COUNT(*) FROM ratings WHERE room_id=?", roomID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}
	if !avg.Valid {
		return 0, 0, nil
	}
	return avg.Float64, count, nil
}
