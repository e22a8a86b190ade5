package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/booking"
	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/model"
)

// ReservationRepo provides persistence for reservations.  All
// timestamps are stored in UTC DATETIME columns.  The repository also
// implements booking.ReservationSource so the engine can query the
// occupancy of a room directly.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

const reservationColumns = "id, room_id, client_id, start_at, end_at, status, total_price, created_at, updated_at"

func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(&res.ID, &res.RoomID, &res.ClientID, &res.StartAt, &res.EndAt,
		&res.Status, &res.TotalPrice, &res.CreatedAt, &res.UpdatedAt)
	return res, err
}

// Overlapping returns the room's non-cancelled reservations whose
// stored interval overlaps the candidate under the strict predicate
// (start < candidate.end AND end > candidate.start).  This is the
// engine's ReservationSource: the pre-filter keeps the row set small
// and the engine re-applies the same predicate in memory.
func (r *ReservationRepo) Overlapping(ctx context.Context, roomID uint64, iv booking.Interval) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + `
			   FROM reservations
			   WHERE room_id = ? AND status <> ? AND start_at < ? AND end_at > ?`
	rows, err := r.DB.QueryContext(ctx, q, roomID, model.ReservationCancelled,
		iv.End.UTC(), iv.Start.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// CreateTx inserts a new reservation inside an existing transaction
// and populates the generated ID and timestamps on the model.  The
// caller commits or rolls back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (room_id, client_id, start_at, end_at, status, total_price)
			   VALUES (?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.RoomID, res.ClientID,
		res.StartAt.UTC(), res.EndAt.UTC(), res.Status, res.TotalPrice)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the row so defaults (created_at, updated_at) are populated.
	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	got, err := scanReservation(tx.QueryRowContext(ctx, sel, res.ID))
	if err != nil {
		return err
	}
	*res = got
	return nil
}

// GetByID fetches a reservation by id.  Returns
// ErrReservationNotFound when no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	res, err := scanReservation(r.DB.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Reservation{}, ErrReservationNotFound
	}
	return res, err
}

// ListByClient returns the client's reservations, newest first.
func (r *ReservationRepo) ListByClient(ctx context.Context, clientID uint64) ([]model.Reservation, error) {
	return r.list(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE client_id=? ORDER BY created_at DESC", clientID)
}

// ListByRoomForOwner returns all reservations on a room after
// verifying that the room belongs to the owner.  Returns
// ErrRoomNotFound when the room does not exist and ErrForbidden when
// it belongs to someone else.
func (r *ReservationRepo) ListByRoomForOwner(ctx context.Context, roomID, ownerID uint64) ([]model.Reservation, error) {
	var actualOwner uint64
	err := r.DB.QueryRowContext(ctx, "SELECT owner_id FROM rooms WHERE id=?", roomID).Scan(&actualOwner)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	if actualOwner != ownerID {
		return nil, ErrForbidden
	}
	return r.list(ctx,
		"SELECT "+reservationColumns+" FROM reservations WHERE room_id=? ORDER BY start_at", roomID)
}

// ListAll returns every reservation, newest first.  Admin only.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	return r.list(ctx, "SELECT "+reservationColumns+" FROM reservations ORDER BY created_at DESC")
}

func (r *ReservationRepo) list(ctx context.Context, query string, args ...any) ([]model.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// UpdateStatusForOwner transitions a reservation to the given status
// on behalf of the owner of its room.  It verifies room ownership
// (ErrForbidden) and rejects transitions out of a terminal state:
// a CANCELLED reservation stays cancelled (ErrConflict), and
// re-applying the current status is also a conflict.
func (r *ReservationRepo) UpdateStatusForOwner(ctx context.Context, reservationID, ownerID uint64, status string) (model.Reservation, error) {
	const q = `SELECT r.status, rm.owner_id
			   FROM reservations r
			   JOIN rooms rm ON rm.id = r.room_id
			   WHERE r.id = ?`
	var current string
	var actualOwner uint64
	err := r.DB.QueryRowContext(ctx, q, reservationID).Scan(&current, &actualOwner)
	if err == sql.ErrNoRows {
		return model.Reservation{}, ErrReservationNotFound
	}
	if err != nil {
		return model.Reservation{}, err
	}
	if actualOwner != ownerID {
		return model.Reservation{}, ErrForbidden
	}
	if current == model.ReservationCancelled || current == status {
		return model.Reservation{}, ErrConflict
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE reservations SET status=?, updated_at=NOW() WHERE id=?", status, reservationID); err != nil {
		return model.Reservation{}, err
	}
	return r.GetByID(ctx, reservationID)
}

// CancelForClient cancels the client's own reservation.  Only
// PENDING reservations may be cancelled by the client; anything else
// is ErrConflict.  Cancellation is a soft delete: the row remains and
// simply stops counting against the room's availability.
func (r *ReservationRepo) CancelForClient(ctx context.Context, reservationID, clientID uint64) (model.Reservation, error) {
	res, err := r.GetByID(ctx, reservationID)
	if err != nil {
		return model.Reservation{}, err
	}
	if res.ClientID != clientID {
		return model.Reservation{}, ErrForbidden
	}
	if res.Status != model.ReservationPending {
		return model.Reservation{}, ErrConflict
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE reservations SET status=?, updated_at=NOW() WHERE id=?",
		model.ReservationCancelled, reservationID); err != nil {
		return model.Reservation{}, err
	}
	res.Status = model.ReservationCancelled
	res.UpdatedAt = time.Now().UTC()
	return res, nil
}
