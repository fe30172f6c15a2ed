package repository

import (
	"context"
	"database/sql"

	"github.com/bizmatch/miniapp-backend/internal/model"
	"github.com/bizmatch/miniapp-backend/internal/telegram"
)

const userColumns = `id, telegram_id, first_name, COALESCE(last_name,''), COALESCE(username,''), COALESCE(photo_url,''), is_premium, COALESCE(activity_description,''), created_at, updated_at`

// UserRepo persists application users keyed by their unique telegram_id.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Upsert creates the row for a Telegram account on first login and refreshes
// the profile columns on every later one, in a single atomic statement so
// that concurrent logins for the same account cannot race a read-then-write.
// The internal id and activity_description are never touched by the update
// branch. The stored row is returned as it exists after the write.
func (r *UserRepo) Upsert(ctx context.Context, tg *telegram.User) (model.User, error) {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (telegram_id, first_name, last_name, username, photo_url, is_premium)
		 VALUES (?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   first_name=VALUES(first_name), last_name=VALUES(last_name),
		   username=VALUES(username), photo_url=VALUES(photo_url),
		   is_premium=VALUES(is_premium), updated_at=NOW()`,
		tg.ID, tg.FirstName, tg.LastName, tg.Username, tg.PhotoURL, tg.IsPremium)
	if err != nil {
		return model.User{}, err
	}
	return r.GetByTelegramID(ctx, tg.ID)
}

// GetByTelegramID fetches a user by Telegram account id.
func (r *UserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (model.User, error) {
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE telegram_id=? LIMIT 1", telegramID)
}

// GetByID fetches a user by internal id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.get(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

func (r *UserRepo) get(ctx context.Context, query string, arg interface{}) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.TelegramID, &u.FirstName, &u.LastName, &u.Username,
		&u.PhotoURL, &u.IsPremium, &u.ActivityDescription, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// UpdateActivity overwrites the free-text activity description for a user.
func (r *UserRepo) UpdateActivity(ctx context.Context, id uint64, description string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET activity_description=?, updated_at=NOW() WHERE id=?",
		description, id)
	return err
}
