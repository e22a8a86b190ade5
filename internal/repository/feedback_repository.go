package repository

import (
	"context"
	"database/sql"

	"github.com/kelfaoui/Party-Hoster-APP-sub000/internal/model"
)

// FeedbackRepo persists ratings and comments left by users on rooms.
type FeedbackRepo struct{ DB *sql.DB }

func NewFeedbackRepo(db *sql.DB) *FeedbackRepo { return &FeedbackRepo{DB: db} }

// UpsertRating stores the user's star rating for a room, replacing a
// previous rating by the same user (unique key on room_id+user_id).
func (r *FeedbackRepo) UpsertRating(ctx context.Context, rt model.Rating) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO ratings (room_id, user_id, stars) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE stars = VALUES(stars)`,
		rt.RoomID, rt.UserID, rt.Stars)
	return err
}

// CreateComment inserts a comment and populates its generated ID.
func (r *FeedbackRepo) CreateComment(ctx context.Context, cm *model.Comment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (room_id, user_id, body) VALUES (?,?,?)",
		cm.RoomID, cm.UserID, cm.Body)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cm.ID = uint64(id)
	return nil
}

// ListComments returns a room's comments, newest first.
func (r *FeedbackRepo) ListComments(ctx context.Context, roomID uint64) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, room_id, user_id, body, created_at FROM comments WHERE room_id=? ORDER BY created_at DESC",
		roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Comment, 0)
	for rows.Next() {
		var cm model.Comment
		if err := rows.Scan(&cm.ID, &cm.RoomID, &cm.UserID, &cm.Body, &cm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, cm)
	}
	return out, rows.Err()
}

// DeleteComment removes a comment.  Admin moderation path; returns
// sql.ErrNoRows when the comment does not exist.
func (r *FeedbackRepo) DeleteComment(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM comments WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
