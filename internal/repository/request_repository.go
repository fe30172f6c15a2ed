package repository

import (
	"context"
	"database/sql"

	"github.com/bizmatch/miniapp-backend/internal/model"
)

// RequestRepo persists customer service requests.
type RequestRepo struct{ DB *sql.DB }

func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{DB: db} }

// List returns every request, newest first.
func (r *RequestRepo) List(ctx context.Context) ([]model.Request, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, title, description, category, budget, location, contact_info, is_matched, created_at FROM requests ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Request, 0)
	for rows.Next() {
		var q model.Request
		if err := rows.Scan(&q.ID, &q.UserID, &q.Title, &q.Description, &q.Category,
			&q.Budget, &q.Location, &q.ContactInfo, &q.IsMatched, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Create inserts a request owned by userID and returns its id.
func (r *RequestRepo) Create(ctx context.Context, userID uint64, q model.Request) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO requests (user_id, title, description, category, budget, location, contact_info)
		 VALUES (?,?,?,?,?,?,?)`,
		userID, q.Title, q.Description, q.Category, q.Budget, q.Location, q.ContactInfo)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// MarkMatched flags a request as matched. ErrRequestNotFound is returned
// when no row carries the given id. Matching an already-matched request is
// a no-op: MySQL reports zero affected rows for a value-preserving update,
// so a follow-up existence probe distinguishes that case from a missing row.
func (r *RequestRepo) MarkMatched(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE requests SET is_matched=TRUE WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var exists bool
	if err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM requests WHERE id=?)", id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrRequestNotFound
	}
	return nil
}
